package monitoring

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds application metrics
type Metrics struct {
	RequestCount int64
	ErrorCount   int64
	CacheHits    int64
	CacheMisses  int64
	Evaluations  int64
	Imports      int64
	StartTime    time.Time

	responseTimes      []time.Duration
	responseTimesMutex sync.RWMutex

	requestCountByStatus map[int]int64
	statusMutex          sync.RWMutex
}

// maxResponseSamples bounds the percentile window.
const maxResponseSamples = 1000

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime:            time.Now(),
		responseTimes:        make([]time.Duration, 0, maxResponseSamples),
		requestCountByStatus: make(map[int]int64),
	}
}

func (m *Metrics) IncrementRequest()    { atomic.AddInt64(&m.RequestCount, 1) }
func (m *Metrics) IncrementError()      { atomic.AddInt64(&m.ErrorCount, 1) }
func (m *Metrics) IncrementCacheHit()   { atomic.AddInt64(&m.CacheHits, 1) }
func (m *Metrics) IncrementCacheMiss()  { atomic.AddInt64(&m.CacheMisses, 1) }
func (m *Metrics) IncrementEvaluation() { atomic.AddInt64(&m.Evaluations, 1) }
func (m *Metrics) IncrementImport()     { atomic.AddInt64(&m.Imports, 1) }

// RecordResponseTime records a request duration for percentile stats.
func (m *Metrics) RecordResponseTime(d time.Duration) {
	m.responseTimesMutex.Lock()
	defer m.responseTimesMutex.Unlock()

	if len(m.responseTimes) >= maxResponseSamples {
		// drop the oldest half instead of reallocating per request
		m.responseTimes = append(m.responseTimes[:0], m.responseTimes[maxResponseSamples/2:]...)
	}
	m.responseTimes = append(m.responseTimes, d)
}

// RecordRequestByStatus tracks response status codes.
func (m *Metrics) RecordRequestByStatus(status int) {
	m.statusMutex.Lock()
	defer m.statusMutex.Unlock()
	m.requestCountByStatus[status]++
}

// GetStats returns a snapshot of all metrics.
func (m *Metrics) GetStats() map[string]interface{} {
	stats := map[string]interface{}{
		"request_count":  atomic.LoadInt64(&m.RequestCount),
		"error_count":    atomic.LoadInt64(&m.ErrorCount),
		"cache_hits":     atomic.LoadInt64(&m.CacheHits),
		"cache_misses":   atomic.LoadInt64(&m.CacheMisses),
		"evaluations":    atomic.LoadInt64(&m.Evaluations),
		"imports":        atomic.LoadInt64(&m.Imports),
		"uptime_seconds": time.Since(m.StartTime).Seconds(),
	}

	m.responseTimesMutex.RLock()
	if len(m.responseTimes) > 0 {
		sorted := append([]time.Duration(nil), m.responseTimes...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
		stats["response_time_p50_ms"] = sorted[len(sorted)/2].Milliseconds()
		stats["response_time_p95_ms"] = sorted[len(sorted)*95/100].Milliseconds()
	}
	m.responseTimesMutex.RUnlock()

	m.statusMutex.RLock()
	byStatus := make(map[int]int64, len(m.requestCountByStatus))
	for code, count := range m.requestCountByStatus {
		byStatus[code] = count
	}
	m.statusMutex.RUnlock()
	stats["requests_by_status"] = byStatus

	return stats
}
