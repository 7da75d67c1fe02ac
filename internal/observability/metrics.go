package observability

import (
	"fmt"
	"sync"
	"time"
)

// Metrics keeps in-memory per-route counters: request count, cumulative
// latency, and error count by code. Counters reset when the process restarts.
type Metrics struct {
	mu       sync.Mutex
	requests map[string]*routeStats
	errors   map[string]int64
}

type routeStats struct {
	count   int64
	latency time.Duration
}

// NewMetrics initializes empty counter storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requests: make(map[string]*routeStats),
		errors:   make(map[string]int64),
	}
}

// RecordRequest counts a completed request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := fmt.Sprintf("%s %s %d", method, path, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	stats, ok := m.requests[key]
	if !ok {
		stats = &routeStats{}
		m.requests[key] = stats
	}
	stats.count++
	stats.latency += duration
}

// RecordError counts a failed request by error code.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[fmt.Sprintf("%s %s %s", method, path, code)]++
}

// RequestCount returns the number of requests recorded for a route and status.
func (m *Metrics) RequestCount(path, method string, status int) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats, ok := m.requests[fmt.Sprintf("%s %s %d", method, path, status)]
	if !ok {
		return 0
	}
	return stats.count
}

// ErrorCount returns the number of errors recorded for a route and code.
func (m *Metrics) ErrorCount(path, method, code string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errors[fmt.Sprintf("%s %s %s", method, path, code)]
}
