package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Tools are the toolbar callbacks. Nil entries are left out.
type Tools struct {
	Screenshot func()
	ExportPDF  func()
}

func NewToolbar(t Tools) fyne.CanvasObject {
	var items []widget.ToolbarItem
	if t.Screenshot != nil {
		items = append(items, widget.NewToolbarAction(theme.MediaPhotoIcon(), t.Screenshot))
	}
	if t.ExportPDF != nil {
		items = append(items, widget.NewToolbarAction(theme.DocumentSaveIcon(), t.ExportPDF))
	}
	return widget.NewToolbar(items...)
}
