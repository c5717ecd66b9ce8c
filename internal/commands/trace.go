package commands

import (
	"time"

	"redline/internal/game"
)

// Hop is one router on a traced route.
type Hop struct {
	N       int
	IP      string
	Latency time.Duration
}

// TraceRoute returns 5 to 14 hops, each 10 to 159 ms away. The last hop
// is the target itself.
func TraceRoute(r game.Rand, target string) []Hop {
	count := game.IntRange(r, 5, 15)
	hops := make([]Hop, 0, count)
	for i := 1; i <= count; i++ {
		ip := RandomIP(r)
		if i == count {
			ip = target
		}
		hops = append(hops, Hop{
			N:       i,
			IP:      ip,
			Latency: time.Duration(game.IntRange(r, 10, 160)) * time.Millisecond,
		})
	}
	return hops
}
