package queueutil

import (
	"sync"
	"sync/atomic"
)

// Stats tracks queue activity with atomic counters. Submitted counts items
// that entered the queue, while Active and Done track individual handler
// runs, so retried items count once per attempt.
type Stats struct {
	submitted atomic.Int64
	active    atomic.Int64
	done      atomic.Int64
	failed    atomic.Int64
}

// StatsSnapshot is a point-in-time copy of the queue counters.
type StatsSnapshot struct {
	Submitted int64 `json:"submitted"`
	Active    int64 `json:"active"`
	Done      int64 `json:"done"`
	Failed    int64 `json:"failed"`
}

func (s *Stats) submit() {
	s.submitted.Add(1)
}

func (s *Stats) begin() {
	s.active.Add(1)
}

func (s *Stats) finish(err error) {
	s.active.Add(-1)
	s.done.Add(1)

	if err != nil {
		s.failed.Add(1)
	}
}

// Snapshot returns a consistent-enough copy of the counters for diagnostics.
// The individual values are read independently, so they can be off by a few
// in-flight items relative to each other.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Submitted: s.submitted.Load(),
		Active:    s.active.Load(),
		Done:      s.done.Load(),
		Failed:    s.failed.Load(),
	}
}

var statsRegistry = struct {
	mu sync.Mutex
	m  map[string]*Stats
}{
	m: map[string]*Stats{},
}

func registerStats(name string, s *Stats) {
	if name == "" {
		return
	}

	statsRegistry.mu.Lock()
	defer statsRegistry.mu.Unlock()

	statsRegistry.m[name] = s
}

// Snapshots returns the counters of all named queues in the process. Queues
// without a name do not show up here.
func Snapshots() map[string]StatsSnapshot {
	statsRegistry.mu.Lock()
	defer statsRegistry.mu.Unlock()

	result := map[string]StatsSnapshot{}
	for name, stats := range statsRegistry.m {
		result[name] = stats.Snapshot()
	}

	return result
}
