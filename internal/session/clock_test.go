package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeClockFiresInOrder(t *testing.T) {
	c := NewFakeClock(time.Unix(0, 0))
	var order []int
	c.AfterFunc(30*time.Millisecond, func() { order = append(order, 3) })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, 1) })
	c.AfterFunc(10*time.Millisecond, func() { order = append(order, 2) })

	c.Advance(20 * time.Millisecond)
	assert.Equal(t, []int{1, 2}, order)

	c.Advance(20 * time.Millisecond)
	assert.Equal(t, []int{1, 2, 3}, order)
	assert.Equal(t, time.Unix(0, 0).Add(40*time.Millisecond), c.Now())
}

func TestFakeClockStop(t *testing.T) {
	c := NewFakeClock(time.Unix(0, 0))
	fired := false
	tm := c.AfterFunc(time.Millisecond, func() { fired = true })

	assert.True(t, tm.Stop())
	assert.False(t, tm.Stop())
	c.Advance(time.Second)

	assert.False(t, fired)
	assert.Zero(t, c.Pending())
}

func TestFakeClockRunsCallbacksScheduledDuringAdvance(t *testing.T) {
	c := NewFakeClock(time.Unix(0, 0))
	n := 0
	var loop func()
	loop = func() {
		n++
		c.AfterFunc(10*time.Millisecond, loop)
	}
	c.AfterFunc(10*time.Millisecond, loop)

	c.Advance(55 * time.Millisecond)
	assert.Equal(t, 5, n)
}

func TestRealClockDispatches(t *testing.T) {
	done := make(chan struct{})
	dispatched := make(chan struct{}, 1)
	c := RealClock{Dispatch: func(f func()) {
		dispatched <- struct{}{}
		f()
	}}
	c.AfterFunc(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback never ran")
	}
	assert.Len(t, dispatched, 1)
}
