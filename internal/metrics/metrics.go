package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strivetrack_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "strivetrack_request_duration_seconds",
			Help:    "Request duration seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	AchievementsUnlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strivetrack_achievements_unlocked_total",
			Help: "Achievements granted, split by how they were granted",
		},
		[]string{"source"}, // direct | combo
	)

	BestEffortFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "strivetrack_best_effort_failures_total",
			Help: "Auxiliary steps that failed without failing the request",
		},
		[]string{"operation"},
	)

	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "strivetrack_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

var registerOnce sync.Once

// Register adds every collector to the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCount,
			RequestDuration,
			AchievementsUnlocked,
			BestEffortFailures,
			RateLimited,
		)
	})
}
