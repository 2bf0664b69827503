package state

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LoadingLabel stands in for the shared total while a flush is in flight.
const LoadingLabel = "loading global stats…"

var printer = message.NewPrinter(language.German)

// FormatCount groups digits the German way: 1234567 -> "1.234.567".
func FormatCount(n int64) string {
	return printer.Sprintf("%d", n)
}

func touris(n int64) string {
	if n == 1 {
		return "touri"
	}
	return "touris"
}

// RemoveLabel is the clear button text.
func RemoveLabel(n int) string {
	return "remove " + FormatCount(int64(n)) + " " + touris(int64(n))
}

func GeneratedLabel(n int) string {
	return FormatCount(int64(n)) + " " + touris(int64(n)) + " generated"
}

func GlobalLabel(n int64) string {
	return FormatCount(n) + " " + touris(n) + " removed globally"
}

// ParseCount pulls the digits out of a label produced by GlobalLabel. It reports
// false when the text carries no digits, e.g. while the loading label is shown.
func ParseCount(text string) (int64, bool) {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
