// Package gametest provides deterministic stand-ins for the game's
// randomness and clock.
package gametest

import (
	"sync"
	"time"
)

// Rand replays scripted values. Floats and ints are consumed from separate
// queues; once a queue is exhausted the fallback value is returned.
type Rand struct {
	mu            sync.Mutex
	floats        []float64
	ints          []int
	FallbackFloat float64
	FallbackInt   int
}

// NewRand returns a Rand that yields floats in order.
func NewRand(floats ...float64) *Rand {
	return &Rand{floats: floats}
}

// WithInts queues integer results for IntN.
func (r *Rand) WithInts(ints ...int) *Rand {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ints = append(r.ints, ints...)
	return r
}

// Float64 returns the next scripted float.
func (r *Rand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.floats) == 0 {
		return r.FallbackFloat
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// IntN returns the next scripted int reduced into [0, n).
func (r *Rand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.FallbackInt
	if len(r.ints) > 0 {
		v = r.ints[0]
		r.ints = r.ints[1:]
	}
	if n <= 0 {
		return 0
	}
	return ((v % n) + n) % n
}

// Clock is a manually advanced clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock starts a clock at t.
func NewClock(t time.Time) *Clock {
	return &Clock{now: t}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Epoch is a fixed instant tests can start from.
var Epoch = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
