package game

import (
	"math/rand/v2"
	"time"
)

// Rand is the source of randomness for every generator in the game.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG-backed Rand. A zero seed draws one from the runtime.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// IntRange returns a value in [lo, hi). It returns lo when the range is empty.
func IntRange(r Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo)
}

// Pick returns a uniformly chosen element of items.
func Pick[T any](r Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}
