// Package latency simulates network round trips for the mock gateway.
package latency

import (
	"context"
	"sync"
	"time"
)

// Simulator supplies the current time and waits out simulated delays.
type Simulator interface {
	Now() time.Time
	Sleep(ctx context.Context, d time.Duration) error
}

type realSimulator struct{}

// Real returns a Simulator backed by the wall clock.
func Real() Simulator { return realSimulator{} }

func (realSimulator) Now() time.Time { return time.Now().UTC() }

// Sleep blocks for d or until ctx is done, whichever comes first.
func (realSimulator) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Fake is a Simulator for tests: time is frozen at At and Sleep returns
// immediately after recording the requested delay.
type Fake struct {
	mu     sync.Mutex
	At     time.Time
	delays []time.Duration
}

func NewFake(at time.Time) *Fake { return &Fake{At: at} }

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.At
}

func (f *Fake) Sleep(ctx context.Context, d time.Duration) error {
	f.mu.Lock()
	f.delays = append(f.delays, d)
	f.mu.Unlock()
	return ctx.Err()
}

// Delays returns every delay requested so far.
func (f *Fake) Delays() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]time.Duration, len(f.delays))
	copy(out, f.delays)
	return out
}

// Advance moves the frozen clock forward.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.At = f.At.Add(d)
	f.mu.Unlock()
}
