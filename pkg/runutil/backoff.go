package runutil

import (
	"math/rand"
	"time"
)

// Backoff calculates the wait time before the given attempt of doing a task.
// Attempt 0 is the first try and must always return 0s, so the task starts
// without delay. Combine with [Wait] for a cancelable backoff sleep.
type Backoff interface {
	Duration(attempt int) time.Duration
}

// StaticBackoff returns the same sleep duration for any but the 0th attempt.
type StaticBackoff struct {
	Sleep time.Duration
}

func (b StaticBackoff) Duration(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	return b.Sleep
}

// ExponentialBackoff doubles the wait time with every attempt, up to Max.
// JitterProportion defines which share of the wait time gets randomized,
// eg 0.5 means the result is between 50% and 100% of the doubled time.
// Jitter also applies once Max is reached, so stragglers do not align.
type ExponentialBackoff struct {
	Initial          time.Duration
	Max              time.Duration
	JitterProportion float64
}

func (b ExponentialBackoff) Duration(attempt int) time.Duration {
	if attempt <= 0 {
		return 0
	}

	// The factor gets capped relative to Initial before any multiplication
	// with the nano second resolution of time.Duration happens, since the
	// plain doubling overflows int64 after a few dozen attempts.
	factor := float64(uint64(1) << min(attempt-1, 62))
	factor = min(factor, float64(b.Max)/float64(b.Initial))

	spread := factor * b.JitterProportion
	total := (factor - spread) + spread*rand.Float64()

	return time.Duration(float64(b.Initial) * total)
}
