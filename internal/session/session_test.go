package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Overtourissimus/internal/figure"
)

type recorder struct {
	clock  *FakeClock
	points []figure.Point
	times  []time.Time
}

func (r *recorder) draw(p figure.Point) {
	r.points = append(r.points, p)
	r.times = append(r.times, r.clock.Now())
}

func newTestSession() (*Session, *recorder, *FakeClock) {
	clock := NewFakeClock(time.Unix(0, 0))
	rec := &recorder{clock: clock}
	return New(DefaultConfig(), clock, rec.draw), rec, clock
}

func TestTapDrawsExactlyOnce(t *testing.T) {
	s, rec, clock := newTestSession()

	require.True(t, s.Press(MouseAt(10, 20)))
	clock.Advance(50 * time.Millisecond)
	s.Release()
	clock.Advance(time.Second)

	assert.Len(t, rec.points, 1)
	assert.Equal(t, figure.Point{X: 10, Y: 20}, rec.points[0])
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Zero(t, clock.Pending())
}

func TestPressOutsideCanvasIsIgnored(t *testing.T) {
	s, rec, clock := newTestSession()

	ev := MouseAt(5, 5)
	ev.Target = TargetControl
	assert.False(t, s.Press(ev))
	clock.Advance(time.Second)

	assert.Empty(t, rec.points)
	assert.False(t, s.Tracking())
}

func TestHoldRepeatsAtInterval(t *testing.T) {
	s, rec, clock := newTestSession()

	s.Press(MouseAt(0, 0))
	assert.Equal(t, PhaseHolding, s.Phase())

	clock.Advance(149 * time.Millisecond)
	assert.Len(t, rec.points, 1, "nothing repeats before the hold delay")

	clock.Advance(351 * time.Millisecond)
	s.Move(MouseAt(40, 40))
	// tap + first loop draw at 150ms + one every 18ms up to 500ms
	assert.Len(t, rec.points, 21)
	assert.Equal(t, PhaseLooping, s.Phase())

	for i := 2; i < len(rec.times); i++ {
		assert.Equal(t, 18*time.Millisecond, rec.times[i].Sub(rec.times[i-1]))
	}

	clock.Advance(18 * time.Millisecond)
	assert.Equal(t, figure.Point{X: 40, Y: 40}, rec.points[len(rec.points)-1])
}

func TestReleaseStopsInFlightTimers(t *testing.T) {
	s, rec, clock := newTestSession()

	s.Press(MouseAt(1, 1))
	clock.Advance(500 * time.Millisecond)
	drawn := len(rec.points)
	require.Greater(t, drawn, 1)

	s.Release()
	clock.Advance(100 * time.Millisecond)

	assert.Equal(t, drawn, len(rec.points))
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.False(t, s.Tracking())
}

type leakyTimer struct{}

func (leakyTimer) Stop() bool { return false }

// leakyClock hands out timers that cannot be stopped, like a callback already
// queued on the UI loop when the release arrives.
type leakyClock struct {
	pending []func()
}

func (c *leakyClock) AfterFunc(_ time.Duration, f func()) Timer {
	c.pending = append(c.pending, f)
	return leakyTimer{}
}

func TestStaleCallbackNeverDraws(t *testing.T) {
	clock := &leakyClock{}
	draws := 0
	s := New(DefaultConfig(), clock, func(figure.Point) { draws++ })

	s.Press(MouseAt(0, 0))
	s.Release()
	for _, f := range clock.pending {
		f()
	}

	assert.Equal(t, 1, draws)
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestMoveRestartsLoopWhenNothingScheduled(t *testing.T) {
	clock := &leakyClock{}
	draws := 0
	s := New(DefaultConfig(), clock, func(figure.Point) { draws++ })

	s.Press(MouseAt(0, 0))
	// hold timer fires: draw and schedule the next repeat
	clock.pending[0]()
	require.Equal(t, 2, draws)
	require.Equal(t, PhaseLooping, s.Phase())

	// a move while a repeat is scheduled only updates the position
	s.Move(MouseAt(3, 3))
	assert.Equal(t, 2, draws)

	s.mu.Lock()
	s.cancelTimer()
	s.phase = PhaseActive
	s.mu.Unlock()

	s.Move(MouseAt(4, 4))
	assert.Equal(t, 3, draws)
	assert.Equal(t, PhaseLooping, s.Phase())
}

func TestMoveWhileIdleIsIgnored(t *testing.T) {
	s, rec, _ := newTestSession()

	s.Move(MouseAt(9, 9))

	assert.Empty(t, rec.points)
	assert.Equal(t, figure.Point{}, s.Last())
}

func TestRepressDoesNotDoubleTrack(t *testing.T) {
	s, rec, clock := newTestSession()
	var transitions []bool
	s.OnTrack = func(on bool) { transitions = append(transitions, on) }

	s.Press(MouseAt(0, 0))
	s.Press(MouseAt(5, 5))
	assert.Equal(t, 1, clock.Pending(), "second press replaces the hold timer")
	s.Release()
	s.Release()

	assert.Equal(t, []bool{true, false}, transitions)
	assert.Len(t, rec.points, 2)
}

func TestTouchUsesFirstTouchPoint(t *testing.T) {
	s, rec, _ := newTestSession()

	ev := Event{
		Source:  SourceTouch,
		Touches: []figure.Point{{X: 7, Y: 8}, {X: 100, Y: 100}},
		Target:  TargetCanvas,
	}
	s.Press(ev)
	s.Cancel()

	require.Len(t, rec.points, 1)
	assert.Equal(t, figure.Point{X: 7, Y: 8}, rec.points[0])
}

func TestLeaveEndsGesture(t *testing.T) {
	s, rec, clock := newTestSession()

	s.Press(TouchAt(2, 2))
	clock.Advance(200 * time.Millisecond)
	s.Leave()
	n := len(rec.points)
	clock.Advance(time.Second)

	assert.Equal(t, n, len(rec.points))
	assert.False(t, s.Active())
}

func TestNewFillsMissingTiming(t *testing.T) {
	s := New(Config{}, NewFakeClock(time.Unix(0, 0)), nil)
	assert.Equal(t, DefaultConfig(), s.cfg)
}
