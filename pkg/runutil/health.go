package runutil

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/ratebound/ratebound-go-sdk/pkg/logutil"
)

const (
	promNamespace       = "ratebound_go_sdk"
	promHealthSubsystem = "health"
)

const (
	HealthStateInit    = "init"
	HealthStateOK      = "ok"
	HealthStateFiring  = "firing"
	HealthStateBackoff = "backoff"
)

var healthStates = []string{
	HealthStateInit,
	HealthStateOK,
	HealthStateFiring,
	HealthStateBackoff,
}

var (
	instHealthCheckpointsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Subsystem: promHealthSubsystem,
		Name:      "checkpoints_total",
	}, []string{"name", "state"})

	instHealthState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: promNamespace,
		Subsystem: promHealthSubsystem,
		Name:      "state",
	}, []string{"name", "state"})
)

var healthRegistry = &healthRegistryImpl{
	monitors: map[string]*healthMonitor{},
}

// HealthMonitor tracks the health state of a worker via Prometheus metrics.
type HealthMonitor interface {
	Checkpoint(err error)
	Backoff()
}

// HealthCheckpoint records a health checkpoint for the current subsystem.
// It is a no-op if the context has no subsystem set.
func HealthCheckpoint(ctx context.Context, err error) {
	name := logutil.GetSubsystem(ctx)
	if name == "" {
		return
	}

	healthRegistry.get(name).Checkpoint(err)
}

// GetHealthMonitor returns the health monitor for the current subsystem.
// Useful for long-running workers that need to pass a monitor to helpers.
func GetHealthMonitor(ctx context.Context) HealthMonitor {
	name := logutil.GetSubsystem(ctx)
	if name == "" {
		return (*healthMonitor)(nil)
	}

	return healthRegistry.get(name)
}

type healthRegistryImpl struct {
	monitors map[string]*healthMonitor
	mu       sync.Mutex
}

func (r *healthRegistryImpl) get(name string) *healthMonitor {
	r.mu.Lock()
	defer r.mu.Unlock()

	monitor, ok := r.monitors[name]
	if !ok {
		monitor = newHealthMonitor(name)
		r.monitors[name] = monitor
	}

	return monitor
}

func newHealthMonitor(name string) *healthMonitor {
	m := &healthMonitor{
		name:  name,
		state: HealthStateInit,
	}

	for _, state := range healthStates {
		// Register zero values immediately to avoid null values in Prometheus.
		instHealthCheckpointsTotal.
			WithLabelValues(name, state).
			Add(0)
		instHealthState.
			WithLabelValues(name, state).
			Set(0)
	}

	instHealthState.
		WithLabelValues(name, HealthStateInit).
		Set(1)

	return m
}

type healthMonitor struct {
	name  string
	state string
	mu    sync.Mutex
}

// Checkpoint records the outcome of a single work cycle. A nil error resolves
// the monitor into the OK state, everything else puts it into Firing.
func (m *healthMonitor) Checkpoint(err error) {
	if m == nil {
		return
	}

	if err == nil {
		m.resolve()
	} else {
		m.fire()
	}
}

// Backoff marks a firing monitor as waiting for its next retry. It only
// transitions out of Firing, so a healthy or fresh monitor keeps its state.
func (m *healthMonitor) Backoff() {
	if m == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != HealthStateFiring {
		return
	}

	m.setState(HealthStateBackoff)
}

func (m *healthMonitor) resolve() {
	m.mu.Lock()
	defer m.mu.Unlock()

	instHealthCheckpointsTotal.
		WithLabelValues(m.name, HealthStateOK).
		Add(1)
	m.setState(HealthStateOK)
}

func (m *healthMonitor) fire() {
	m.mu.Lock()
	defer m.mu.Unlock()

	instHealthCheckpointsTotal.
		WithLabelValues(m.name, HealthStateFiring).
		Add(1)
	m.setState(HealthStateFiring)
}

// setState requires the mutex to be held.
func (m *healthMonitor) setState(state string) {
	m.state = state

	for _, s := range healthStates {
		value := 0.0
		if s == state {
			value = 1.0
		}

		instHealthState.
			WithLabelValues(m.name, s).
			Set(value)
	}
}
