package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Overtourissimus/internal/counterd"
)

func newCounterd(t *testing.T, total int64) (*counterd.Server, *httptest.Server) {
	t.Helper()
	s, err := counterd.New(counterd.Config{Namespace: "ns", Key: "touris", Bin: "bin", MasterKey: "k"})
	require.NoError(t, err)
	require.NoError(t, s.Set(total))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func TestCountAPIReadAndAdd(t *testing.T) {
	s, ts := newCounterd(t, 100)
	c := NewCountAPI(ts.URL+"/", "ns", "touris", ts.Client())
	ctx := context.Background()

	got, err := c.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got)

	got, err = c.Add(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(101), got)

	got, err = c.Add(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(105), got)
	assert.Equal(t, int64(105), s.Total())
}

func TestJSONBinReadModifyWrite(t *testing.T) {
	s, ts := newCounterd(t, 100)
	b := ReadModifyWrite(NewJSONBin(ts.URL+"/b/bin", "k", ts.Client()))

	got, err := b.Add(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(105), got)
	assert.Equal(t, int64(105), s.Total())
	assert.Equal(t, "jsonbin", b.Name())
}

func TestJSONBinAcceptsBareDocument(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"touristCount": 12}`))
	}))
	defer ts.Close()

	got, err := NewJSONBin(ts.URL, "", ts.Client()).Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), got)
}

func TestJSONBinSendsMasterKey(t *testing.T) {
	_, ts := newCounterd(t, 3)

	_, err := NewJSONBin(ts.URL+"/b/bin", "wrong", ts.Client()).Read(context.Background())
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusUnauthorized, be.Status)
}

func TestJSONBinWriteMismatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"record":{"touristCount": 1}}`))
	}))
	defer ts.Close()

	err := NewJSONBin(ts.URL, "", ts.Client()).Write(context.Background(), 2)
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Contains(t, be.Reason, "mismatch")
	assert.Equal(t, "backend", Kind(err))
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		kind    string
	}{
		{
			name:    "status",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
			kind:    "backend",
		},
		{
			name:    "body",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`<html>`)) },
			kind:    "parse",
		},
		{
			name:    "shape",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"other": 1}`)) },
			kind:    "parse",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(tt.handler)
			defer ts.Close()

			_, err := NewJSONBin(ts.URL, "", ts.Client()).Read(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.kind, Kind(err))
		})
	}
}

func TestNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := NewCountAPI(url, "ns", "touris", nil).Add(context.Background(), 3)
	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
	assert.Equal(t, "network", Kind(err))
	assert.Equal(t, "other", Kind(errors.New("x")))
}

type countingBackend struct {
	calls atomic.Int32
	total int64
	err   error
}

func (b *countingBackend) Name() string { return "counting" }

func (b *countingBackend) Read(context.Context) (int64, error) {
	b.calls.Add(1)
	return b.total, b.err
}

func (b *countingBackend) Add(_ context.Context, delta int64) (int64, error) {
	b.calls.Add(1)
	if b.err != nil {
		return 0, b.err
	}
	b.total += delta
	return b.total, nil
}

func TestFlushSkipsEmptyDelta(t *testing.T) {
	b := &countingBackend{total: 10}
	s := NewSync(b, time.Second)

	for _, delta := range []int64{0, -3} {
		res, err := s.Flush(context.Background(), delta)
		require.NoError(t, err)
		assert.Zero(t, res.Applied)
	}
	s.FlushDetached(0, time.Second)
	assert.Zero(t, b.calls.Load())
}

func TestFlushReportsTotal(t *testing.T) {
	b := &countingBackend{total: 100}
	s := NewSync(b, time.Second)

	res, err := s.Flush(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, Result{Total: 105, Applied: 5}, res)
}

func TestFlushDetachedIsBounded(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	s := NewSync(NewCountAPI(ts.URL, "ns", "touris", ts.Client()), 0)
	start := time.Now()
	s.FlushDetached(3, 50*time.Millisecond)
	assert.Less(t, time.Since(start), 2*time.Second)
}
