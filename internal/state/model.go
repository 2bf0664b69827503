package state

import "sync"

// GeneratedPolicy decides when the generated count resets.
type GeneratedPolicy uint8

const (
	// GeneratedPerView resets the generated count together with the local count
	// whenever the view is reset (resize or reload).
	GeneratedPerView GeneratedPolicy = iota
	// GeneratedLifetime keeps counting for the whole process lifetime.
	GeneratedLifetime
)

func (p GeneratedPolicy) String() string {
	if p == GeneratedLifetime {
		return "lifetime"
	}
	return "view"
}

// ParseGeneratedPolicy accepts "view" or "lifetime".
func ParseGeneratedPolicy(s string) (GeneratedPolicy, bool) {
	switch s {
	case "view", "":
		return GeneratedPerView, true
	case "lifetime":
		return GeneratedLifetime, true
	}
	return GeneratedPerView, false
}

// Counts is the session-scoped local counter. Local counts figures since the last
// clear, Generated counts figures since the last view reset (or ever, depending on
// the policy). Neither is persisted.
type Counts struct {
	mu        sync.RWMutex
	local     int
	generated int
	policy    GeneratedPolicy

	// OnChange receives the new values after every mutation.
	OnChange func(local, generated int)
}

func NewCounts(policy GeneratedPolicy) *Counts {
	return &Counts{policy: policy}
}

func (c *Counts) Increment() {
	c.mu.Lock()
	c.local++
	c.generated++
	local, generated := c.local, c.generated
	c.mu.Unlock()
	c.notify(local, generated)
}

// Reset zeroes the local count and returns the value it had. Used by clear.
func (c *Counts) Reset() int {
	c.mu.Lock()
	removed := c.local
	c.local = 0
	local, generated := c.local, c.generated
	c.mu.Unlock()
	c.notify(local, generated)
	return removed
}

// ResetView zeroes the local count and, under GeneratedPerView, the generated count.
// It returns the local count it discarded.
func (c *Counts) ResetView() int {
	c.mu.Lock()
	removed := c.local
	c.local = 0
	if c.policy == GeneratedPerView {
		c.generated = 0
	}
	local, generated := c.local, c.generated
	c.mu.Unlock()
	c.notify(local, generated)
	return removed
}

func (c *Counts) Local() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.local
}

func (c *Counts) Generated() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generated
}

func (c *Counts) notify(local, generated int) {
	if c.OnChange != nil {
		c.OnChange(local, generated)
	}
}
