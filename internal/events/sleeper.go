package events

import (
	"context"
	"sync"
	"time"
)

// Sleeper performs the narrative delays during resolution.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealSleeper waits on the wall clock and gives up when ctx is done.
type RealSleeper struct{}

func (RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InstantSleeper returns immediately and adds up the time it was asked to wait.
type InstantSleeper struct {
	mu    sync.Mutex
	total time.Duration
}

func (s *InstantSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.total += d
	s.mu.Unlock()
	return nil
}

// Total is the sum of all requested delays.
func (s *InstantSleeper) Total() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}
