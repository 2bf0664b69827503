package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"Overtourissimus/internal/state"
)

const maxBody = 1 << 20

type request struct {
	op     string
	method string
	url    string
	header http.Header
	body   any
}

// do sends the request and decodes a JSON response into out. out may be nil, and an
// empty body is accepted when allowEmpty is set.
func do(ctx context.Context, client *http.Client, r request, out any, allowEmpty bool) error {
	var body io.Reader
	if r.body != nil {
		data, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("%s: encode body: %w", r.op, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url, body)
	if err != nil {
		return &NetworkError{Op: r.op, Err: err}
	}
	for k, vs := range r.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Session-Id", state.SessionID())
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return &NetworkError{Op: r.op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return &NetworkError{Op: r.op, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &BackendError{Op: r.op, Status: resp.StatusCode}
	}
	if out == nil || (allowEmpty && len(bytes.TrimSpace(data)) == 0) {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ParseError{Op: r.op, Err: err}
	}
	return nil
}
