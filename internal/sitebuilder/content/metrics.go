package content

import (
	"sync/atomic"
	"time"
)

// Metrics tracks provider calls made by an Orchestrator.
type Metrics struct {
	calls     atomic.Int64
	failures  atomic.Int64
	fallbacks atomic.Int64
	latencyNs atomic.Int64
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	ProviderCalls    int64   `json:"provider_calls"`
	ProviderFailures int64   `json:"provider_failures"`
	Fallbacks        int64   `json:"fallbacks"`
	AvgLatencyMs     float64 `json:"avg_latency_ms"`
	FailureRate      float64 `json:"failure_rate_pct"`
}

func (m *Metrics) recordCall(d time.Duration, err error) {
	m.calls.Add(1)
	m.latencyNs.Add(d.Nanoseconds())
	if err != nil {
		m.failures.Add(1)
	}
}

func (m *Metrics) recordFallback() {
	m.fallbacks.Add(1)
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		ProviderCalls:    m.calls.Load(),
		ProviderFailures: m.failures.Load(),
		Fallbacks:        m.fallbacks.Load(),
	}
	if s.ProviderCalls > 0 {
		s.AvgLatencyMs = float64(m.latencyNs.Load()) / float64(s.ProviderCalls) / 1e6
		s.FailureRate = float64(s.ProviderFailures) / float64(s.ProviderCalls) * 100
	}
	return s
}
