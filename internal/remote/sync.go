package remote

import (
	"context"
	"log"
	"time"
)

// Result is the outcome of a flush. Applied is zero when there was nothing to send.
type Result struct {
	Total   int64
	Applied int64
}

// Sync pushes pending local counts into a Backend.
type Sync struct {
	backend Backend
	timeout time.Duration
}

// NewSync wraps backend. A non-positive timeout leaves requests bounded only by
// the caller's context.
func NewSync(backend Backend, timeout time.Duration) *Sync {
	return &Sync{backend: backend, timeout: timeout}
}

func (s *Sync) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

// Load reads the shared total.
func (s *Sync) Load(ctx context.Context) (int64, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	total, err := s.backend.Read(ctx)
	if err != nil {
		log.Printf("[SYNC] load via %s failed (%s): %v", s.backend.Name(), Kind(err), err)
		return 0, err
	}
	log.Printf("[SYNC] loaded total %d via %s", total, s.backend.Name())
	return total, nil
}

// Flush adds delta to the shared total. A delta of zero or less makes no request.
func (s *Sync) Flush(ctx context.Context, delta int64) (Result, error) {
	if delta <= 0 {
		return Result{}, nil
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	total, err := s.backend.Add(ctx, delta)
	if err != nil {
		log.Printf("[SYNC] flush %d via %s failed (%s): %v", delta, s.backend.Name(), Kind(err), err)
		return Result{}, err
	}
	log.Printf("[SYNC] flushed %d via %s, total now %d", delta, s.backend.Name(), total)
	return Result{Total: total, Applied: delta}, nil
}

// FlushDetached is the shutdown flush: fire and forget, bounded by budget. Nobody
// consumes the outcome; failures are only logged.
func (s *Sync) FlushDetached(delta int64, budget time.Duration) {
	if delta <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), budget)
	defer cancel()
	total, err := s.backend.Add(ctx, delta)
	if err != nil {
		log.Printf("[SYNC] shutdown flush of %d dropped (%s): %v", delta, Kind(err), err)
		return
	}
	log.Printf("[SYNC] shutdown flush of %d done, total now %d", delta, total)
}
