// Package board ties the figure generator, local counts, drawing surface and remote
// sync together, and owns the clear, resize and shutdown policies.
package board

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"Overtourissimus/internal/figure"
	"Overtourissimus/internal/remote"
	"Overtourissimus/internal/state"
)

// ErrRenderingUnavailable means no drawing surface could be acquired. Nothing can be
// drawn for the rest of the session.
var ErrRenderingUnavailable = errors.New("rendering surface unavailable")

// User-facing messages.
const (
	MsgCanvasUnsupported = "Error: Canvas is not supported."
	MsgLoadFailed        = "Could not load global statistics."
	MsgSaveFailed        = "Could not save global statistics."
)

// Surface is the drawing target plus the whole-surface operations the board needs.
type Surface interface {
	figure.Surface
	Clear()
	Resize(w, h float64)
}

// Display shows the counters and messages.
type Display interface {
	SetLocalText(string)
	SetGeneratedText(string)
	SetSharedText(string)
	SharedText() string
	ShowMessage(string)
	HideMessage()
}

// Options tune the controller. Zero values pick the defaults.
type Options struct {
	Rand      figure.Rand
	Generated state.GeneratedPolicy
	// Optimistic shows the predicted total during a flush instead of the loading label.
	Optimistic     bool
	TeardownBudget time.Duration
	// Dispatch runs f on the UI goroutine. Nil runs f directly.
	Dispatch func(f func())
}

// FlushResult reports how a clear or resize reconciled with the shared total.
type FlushResult struct {
	Removed int
	Total   int64
	Err     error
	// Skipped is set when there was nothing to flush and no request was made.
	Skipped bool
}

// Controller is the per-window board state. Its methods are called from the UI
// goroutine; network completions come back through Options.Dispatch.
type Controller struct {
	surface Surface
	display Display
	sync    *remote.Sync
	counts  *state.Counts
	rng     figure.Rand
	opts    Options

	mu        sync.Mutex
	confirmed string // last total the backend reported
	inflight  int
}

func New(surface Surface, display Display, sync *remote.Sync, opts Options) (*Controller, error) {
	if surface == nil {
		return nil, ErrRenderingUnavailable
	}
	if display == nil || sync == nil {
		return nil, errors.New("board: display and sync are required")
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.TeardownBudget <= 0 {
		opts.TeardownBudget = 2 * time.Second
	}

	c := &Controller{
		surface: surface,
		display: display,
		sync:    sync,
		counts:  state.NewCounts(opts.Generated),
		rng:     opts.Rand,
		opts:    opts,
	}
	c.counts.OnChange = func(local, generated int) {
		c.display.SetLocalText(state.RemoveLabel(local))
		c.display.SetGeneratedText(state.GeneratedLabel(generated))
	}
	c.display.SetLocalText(state.RemoveLabel(0))
	c.display.SetGeneratedText(state.GeneratedLabel(0))
	return c, nil
}

func (c *Controller) Counts() *state.Counts { return c.counts }

// DrawAt places one figure at p.
func (c *Controller) DrawAt(p figure.Point) {
	spec := figure.Generate(p, c.rng)
	figure.Draw(spec, c.surface)
	c.counts.Increment()
}

// Load reads the shared total for the initial display. On failure the display
// falls back to zero and a message is shown.
func (c *Controller) Load(ctx context.Context) error {
	total, err := c.sync.Load(ctx)
	c.dispatch(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.display.SetSharedText(state.GlobalLabel(0))
			c.display.ShowMessage(MsgLoadFailed)
			return
		}
		c.confirmed = state.GlobalLabel(total)
		c.display.SetSharedText(c.confirmed)
	})
	return err
}

// Clear wipes the surface and the local count immediately, then adds the removed
// count to the shared total in the background. The drawing is never restored, even
// if the flush fails; only the shared-total text is rolled back.
func (c *Controller) Clear(ctx context.Context) <-chan FlushResult {
	removed := c.counts.Local()
	if removed <= 0 {
		return done(FlushResult{Skipped: true})
	}
	c.surface.Clear()
	c.counts.Reset()
	log.Printf("[BOARD] clear: removing %d", removed)
	return c.flush(ctx, removed)
}

// Resize adopts the new surface size. The pending local count is flushed first,
// then the surface and view counts are reset.
func (c *Controller) Resize(ctx context.Context, w, h float64) <-chan FlushResult {
	c.surface.Resize(w, h)
	pending := c.counts.ResetView()
	c.surface.Clear()
	if pending <= 0 {
		return done(FlushResult{Skipped: true})
	}
	log.Printf("[BOARD] resize to %.0fx%.0f: flushing %d pending", w, h, pending)
	return c.flush(ctx, pending)
}

// Teardown makes one bounded attempt to flush the pending count before the window
// goes away. The outcome is not reported.
func (c *Controller) Teardown() {
	pending := c.counts.Reset()
	if pending <= 0 {
		return
	}
	log.Printf("[BOARD] teardown: flushing %d pending", pending)
	c.sync.FlushDetached(int64(pending), c.opts.TeardownBudget)
}

func (c *Controller) flush(ctx context.Context, removed int) <-chan FlushResult {
	out := make(chan FlushResult, 1)

	c.mu.Lock()
	shown := c.display.SharedText()
	base := shown
	if c.inflight > 0 {
		// the label holds another flush's placeholder or prediction
		base = c.confirmed
	}
	rollback := base
	if rollback == "" {
		rollback = shown
	}
	startConfirmed := c.confirmed
	c.inflight++
	c.display.SetSharedText(c.pendingText(base, removed))
	c.mu.Unlock()

	go func() {
		res, err := c.sync.Flush(ctx, int64(removed))
		c.dispatch(func() {
			defer close(out)
			c.mu.Lock()
			defer c.mu.Unlock()
			c.inflight--
			if err != nil {
				if c.confirmed != startConfirmed {
					rollback = c.confirmed
				}
				c.display.SetSharedText(rollback)
				c.display.ShowMessage(MsgSaveFailed)
				out <- FlushResult{Removed: removed, Err: err}
				return
			}
			c.confirmed = state.GlobalLabel(res.Total)
			c.display.SetSharedText(c.confirmed)
			out <- FlushResult{Removed: removed, Total: res.Total}
		})
	}()
	return out
}

func (c *Controller) pendingText(previous string, removed int) string {
	if !c.opts.Optimistic {
		return state.LoadingLabel
	}
	n, ok := state.ParseCount(previous)
	if !ok {
		return state.LoadingLabel
	}
	return state.GlobalLabel(n + int64(removed))
}

func (c *Controller) dispatch(f func()) {
	if c.opts.Dispatch != nil {
		c.opts.Dispatch(f)
		return
	}
	f()
}

func done(r FlushResult) <-chan FlushResult {
	out := make(chan FlushResult, 1)
	out <- r
	close(out)
	return out
}
