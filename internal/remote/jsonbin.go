package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// JSONBin stores the total in a JSON document that is read and then overwritten.
// The two calls are not transactional: two sessions reading the same base lose one
// of their updates.
type JSONBin struct {
	URL       string
	MasterKey string
	Client    *http.Client
}

var _ Store = (*JSONBin)(nil)

func NewJSONBin(binURL, masterKey string, client *http.Client) *JSONBin {
	return &JSONBin{URL: binURL, MasterKey: masterKey, Client: client}
}

type binRecord struct {
	TouristCount *int64 `json:"touristCount"`
}

type binBody struct {
	Record       *binRecord `json:"record"`
	TouristCount *int64     `json:"touristCount"`
}

// count accepts both the wrapped {record:{...}} and the bare document shape.
func (b binBody) count() (int64, bool) {
	if b.Record != nil && b.Record.TouristCount != nil {
		return *b.Record.TouristCount, true
	}
	if b.TouristCount != nil {
		return *b.TouristCount, true
	}
	return 0, false
}

func (j *JSONBin) Name() string { return "jsonbin" }

func (j *JSONBin) header() http.Header {
	h := http.Header{}
	if j.MasterKey != "" {
		h.Set("X-Master-Key", j.MasterKey)
	}
	return h
}

func (j *JSONBin) Read(ctx context.Context) (int64, error) {
	var body binBody
	r := request{op: "jsonbin read", method: http.MethodGet, url: j.URL, header: j.header()}
	if err := do(ctx, j.Client, r, &body, false); err != nil {
		return 0, err
	}
	n, ok := body.count()
	if !ok {
		return 0, &ParseError{Op: r.op, Err: errors.New("missing touristCount")}
	}
	return n, nil
}

// Write replaces the stored total. If the service echoes the record back with a
// different count the write is reported as a mismatch.
func (j *JSONBin) Write(ctx context.Context, total int64) error {
	var body binBody
	r := request{
		op:     "jsonbin write",
		method: http.MethodPut,
		url:    j.URL,
		header: j.header(),
		body:   binRecord{TouristCount: &total},
	}
	if err := do(ctx, j.Client, r, &body, true); err != nil {
		return err
	}
	if n, ok := body.count(); ok && n != total {
		return &BackendError{Op: r.op, Status: http.StatusOK, Reason: fmt.Sprintf("mismatch: wrote %d, stored %d", total, n)}
	}
	return nil
}
