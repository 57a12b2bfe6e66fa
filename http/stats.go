package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

type endpointStats struct {
	count       int
	errors      int
	totalTime   time.Duration
	lastPrinted time.Time
}

// statsLogger periodically logs request counts and average latency per
// route pattern.
type statsLogger struct {
	log           *slog.Logger
	stats         map[string]*endpointStats
	mu            sync.Mutex
	flushInterval time.Duration
	done          chan struct{}
	stopOnce      sync.Once
}

func newStatsLogger(log *slog.Logger, flushInterval time.Duration) *statsLogger {
	sl := &statsLogger{
		log:           log,
		stats:         make(map[string]*endpointStats),
		flushInterval: flushInterval,
		done:          make(chan struct{}),
	}
	go sl.periodicFlush()
	return sl
}

func (sl *statsLogger) periodicFlush() {
	ticker := time.NewTicker(sl.flushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			sl.flushStats(time.Now())
		case <-sl.done:
			return
		}
	}
}

func (sl *statsLogger) stop() {
	sl.stopOnce.Do(func() { close(sl.done) })
}

func (sl *statsLogger) flushStats(now time.Time) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	for endpoint, stats := range sl.stats {
		if stats.count > 0 && now.Sub(stats.lastPrinted) >= sl.flushInterval {
			avgTimeMs := float64(stats.totalTime.Microseconds()) / float64(stats.count) / 1000.0

			sl.log.Info("endpoint stats",
				"endpoint", endpoint,
				"count", stats.count,
				"errors", stats.errors,
				"avg_time_ms", fmt.Sprintf("%.2f", avgTimeMs),
				"period", sl.flushInterval,
			)
			stats.count = 0
			stats.errors = 0
			stats.totalTime = 0
			stats.lastPrinted = now
		}
	}
}

func (sl *statsLogger) record(endpoint string, status int, duration time.Duration) {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	if _, exists := sl.stats[endpoint]; !exists {
		sl.stats[endpoint] = &endpointStats{}
	}
	sl.stats[endpoint].count++
	sl.stats[endpoint].totalTime += duration
	if status >= http.StatusInternalServerError {
		sl.stats[endpoint].errors++
	}
}

func (sl *statsLogger) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		// the pattern keeps ids out of the key
		pattern := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			pattern = rctx.RoutePattern()
		}
		sl.record(fmt.Sprintf("%s %s", r.Method, pattern), sw.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
