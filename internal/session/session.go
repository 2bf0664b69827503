// Package session turns raw pointer and touch input into a rate-limited stream of
// figure placements.
package session

import (
	"log"
	"sync"
	"time"

	"Overtourissimus/internal/figure"
)

// Phase is the state of a drawing gesture.
type Phase uint8

const (
	// PhaseIdle: no pointer is down.
	PhaseIdle Phase = iota
	// PhaseHolding: pointer down, waiting out the hold delay before repeating.
	PhaseHolding
	// PhaseActive: pointer down, no timer scheduled. The next move restarts the loop.
	PhaseActive
	// PhaseLooping: pointer down, the next repeat draw is scheduled.
	PhaseLooping
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseHolding:
		return "holding"
	case PhaseActive:
		return "active"
	case PhaseLooping:
		return "looping"
	default:
		return "unknown"
	}
}

// Config holds the gesture timing.
type Config struct {
	HoldDelay      time.Duration
	RepeatInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		HoldDelay:      150 * time.Millisecond,
		RepeatInterval: 18 * time.Millisecond,
	}
}

// Session tracks one pointer. Draw is called for every placement, strictly in order:
// each repeat is scheduled only after the previous draw returned.
type Session struct {
	mu       sync.Mutex
	cfg      Config
	clock    Clock
	draw     func(figure.Point)
	phase    Phase
	last     figure.Point
	timer    Timer
	token    uint64
	tracking bool
	draws    int

	// OnTrack is told when viewport-wide move/release tracking should start and stop.
	// It is called at most once per transition.
	OnTrack func(bool)
}

func New(cfg Config, clock Clock, draw func(figure.Point)) *Session {
	if cfg.HoldDelay <= 0 || cfg.RepeatInterval <= 0 {
		def := DefaultConfig()
		if cfg.HoldDelay <= 0 {
			cfg.HoldDelay = def.HoldDelay
		}
		if cfg.RepeatInterval <= 0 {
			cfg.RepeatInterval = def.RepeatInterval
		}
	}
	return &Session{cfg: cfg, clock: clock, draw: draw}
}

// Press starts a gesture. Presses that did not land on the canvas are ignored and
// report false. A single press always draws exactly one figure; repeating starts
// once the pointer has been held for the hold delay.
func (s *Session) Press(ev Event) bool {
	if ev.Target != TargetCanvas {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelTimer()
	s.last = ev.Position()
	s.phase = PhaseActive
	s.emit()
	s.schedule(PhaseHolding, s.cfg.HoldDelay)
	s.setTracking(true)
	return true
}

// Move records the pointer position. If the gesture is active but nothing is
// scheduled, the repeat loop restarts right away.
func (s *Session) Move(ev Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseIdle {
		return
	}
	s.last = ev.Position()
	if s.phase == PhaseActive {
		s.tick()
	}
}

// Release ends the gesture. Nothing is drawn afterwards, even by timers already due.
func (s *Session) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop()
}

// Cancel ends the gesture for touch-cancel.
func (s *Session) Cancel() {
	s.Release()
}

// Leave ends the gesture when the pointer leaves the window.
func (s *Session) Leave() {
	s.Release()
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *Session) Active() bool {
	return s.Phase() != PhaseIdle
}

// Tracking reports whether viewport-wide tracking is on.
func (s *Session) Tracking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracking
}

// Last returns the last known pointer position.
func (s *Session) Last() figure.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Session) stop() {
	if s.phase == PhaseIdle {
		return
	}
	s.cancelTimer()
	s.phase = PhaseIdle
	s.setTracking(false)
}

func (s *Session) tick() {
	s.emit()
	s.schedule(PhaseLooping, s.cfg.RepeatInterval)
}

func (s *Session) emit() {
	s.draws++
	if s.draw != nil {
		s.draw(s.last)
	}
}

// schedule arms the next timer. The token makes every earlier timer stale.
func (s *Session) schedule(phase Phase, d time.Duration) {
	s.token++
	token := s.token
	s.phase = phase
	s.timer = s.clock.AfterFunc(d, func() { s.fire(token) })
}

func (s *Session) fire(token uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.token {
		return
	}
	s.timer = nil
	if s.phase == PhaseIdle {
		return
	}
	s.phase = PhaseActive
	s.tick()
}

func (s *Session) cancelTimer() {
	s.token++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) setTracking(on bool) {
	if s.tracking == on {
		return
	}
	s.tracking = on
	log.Printf("[SESSION] tracking=%t after %d draws", on, s.draws)
	if s.OnTrack != nil {
		s.OnTrack(on)
	}
}
