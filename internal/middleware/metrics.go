package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// Metrics stores intake counters
type Metrics struct {
	RequestsTotal        uint64
	RequestsInProgress   uint64
	SubmissionsTotal     uint64
	SubmissionsProcessed uint64
	SubmissionsDuplicate uint64
	SubmissionsFailed    uint64
	SubmissionsDegraded  uint64
	StartTime            time.Time
}

var globalMetrics = &Metrics{
	StartTime: time.Now(),
}

// CountSubmission increments the intake counter.
func CountSubmission() {
	atomic.AddUint64(&globalMetrics.SubmissionsTotal, 1)
}

// CountOutcome increments the counter matching a workflow outcome kind.
func CountOutcome(kind string, degraded bool) {
	switch kind {
	case "processed":
		atomic.AddUint64(&globalMetrics.SubmissionsProcessed, 1)
	case "duplicate":
		atomic.AddUint64(&globalMetrics.SubmissionsDuplicate, 1)
	case "failed":
		atomic.AddUint64(&globalMetrics.SubmissionsFailed, 1)
	}
	if degraded {
		atomic.AddUint64(&globalMetrics.SubmissionsDegraded, 1)
	}
}

// MetricsMiddleware counts HTTP requests
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddUint64(&globalMetrics.RequestsTotal, 1)
		atomic.AddUint64(&globalMetrics.RequestsInProgress, 1)
		defer atomic.AddUint64(&globalMetrics.RequestsInProgress, ^uint64(0))
		next.ServeHTTP(w, r)
	})
}

// MetricsHandler exposes the counters as JSON
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	snapshot := map[string]any{
		"uptime_seconds":        time.Since(globalMetrics.StartTime).Seconds(),
		"requests_total":        atomic.LoadUint64(&globalMetrics.RequestsTotal),
		"requests_in_progress":  atomic.LoadUint64(&globalMetrics.RequestsInProgress),
		"submissions_total":     atomic.LoadUint64(&globalMetrics.SubmissionsTotal),
		"submissions_processed": atomic.LoadUint64(&globalMetrics.SubmissionsProcessed),
		"submissions_duplicate": atomic.LoadUint64(&globalMetrics.SubmissionsDuplicate),
		"submissions_failed":    atomic.LoadUint64(&globalMetrics.SubmissionsFailed),
		"submissions_degraded":  atomic.LoadUint64(&globalMetrics.SubmissionsDegraded),
		"goroutines":            runtime.NumGoroutine(),
		"heap_alloc_bytes":      m.HeapAlloc,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}
