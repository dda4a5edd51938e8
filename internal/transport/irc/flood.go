package irc

import (
	"sync/atomic"
	"time"
)

// floodLimiter caps inbound lines per window. A zero limit disables it.
type floodLimiter struct {
	limit   int64
	counter atomic.Int64
	reset   *time.Ticker
}

func newFloodLimiter(limit int, window time.Duration) *floodLimiter {
	if limit <= 0 {
		return &floodLimiter{}
	}
	return &floodLimiter{
		limit: int64(limit),
		reset: time.NewTicker(window),
	}
}

func (f *floodLimiter) allow() bool {
	if f == nil || f.limit <= 0 {
		return true
	}
	return f.counter.Add(1) <= f.limit
}

func (f *floodLimiter) startReset(stop <-chan struct{}) {
	if f == nil || f.reset == nil {
		return
	}
	go func() {
		for {
			select {
			case <-f.reset.C:
				f.counter.Store(0)
			case <-stop:
				f.reset.Stop()
				return
			}
		}
	}()
}
