// Package remote reconciles the local figure count with the shared total kept by a
// remote counter service.
package remote

import "context"

// Backend reads and increments the shared total.
type Backend interface {
	Name() string
	Read(ctx context.Context) (int64, error)
	// Add applies delta and returns the total after the increment.
	Add(ctx context.Context, delta int64) (int64, error)
}

// Store is a counter that can only be read and overwritten.
type Store interface {
	Name() string
	Read(ctx context.Context) (int64, error)
	Write(ctx context.Context, total int64) error
}

// ReadModifyWrite turns a Store into a Backend by reading the total and writing
// total+delta back. Concurrent writers can lose updates.
func ReadModifyWrite(s Store) Backend {
	return readModifyWrite{store: s}
}

type readModifyWrite struct {
	store Store
}

func (r readModifyWrite) Name() string { return r.store.Name() }

func (r readModifyWrite) Read(ctx context.Context) (int64, error) {
	return r.store.Read(ctx)
}

func (r readModifyWrite) Add(ctx context.Context, delta int64) (int64, error) {
	cur, err := r.store.Read(ctx)
	if err != nil {
		return 0, err
	}
	next := cur + delta
	if err := r.store.Write(ctx, next); err != nil {
		return 0, err
	}
	return next, nil
}
