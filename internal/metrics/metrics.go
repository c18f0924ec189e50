// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Feed Composition Metrics
	FeedCompositionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_compositions_total",
			Help: "Total number of home feeds composed",
		},
		[]string{"state"}, // "cold", "warm"
	)

	FeedComposeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_compose_duration_seconds",
			Help:    "Time spent composing a home feed in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"state"},
	)

	FeedDegradationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_degradations_total",
			Help: "Total number of warm feeds degraded to cold after a storage failure",
		},
		[]string{"stage"}, // "history", "resolve", "visible", "candidates", "channel"
	)

	ProfileFeatures = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "feed_profile_features",
			Help:    "Number of features in built taste profiles",
			Buckets: prometheus.LinearBuckets(0, 10, 10),
		},
	)

	ScorerCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "feed_scorer_candidates",
			Help:    "Candidate counts seen by the scorer",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"phase"}, // "pool", "matched"
	)

	FeaturedChannelMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_featured_channel_misses_total",
			Help: "Warm feeds composed without a featured channel",
		},
		[]string{"reason"}, // "no_signal", "deleted"
	)

	UpNextTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_up_next_total",
			Help: "Total number of up-next lists served",
		},
		[]string{"mode"}, // "personalized", "random"
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Cache Metrics
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_lookups_total",
			Help: "Total number of cache lookups by result",
		},
		[]string{"cache", "result"}, // result: "hit", "miss"
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vidfeed_info",
			Help: "Application version information",
		},
		[]string{"version", "go_version"},
	)
)

// errorTypeMaxLen bounds the error_type label cardinality.
const errorTypeMaxLen = 50

// RecordFeedComposition records a composed feed.
func RecordFeedComposition(state string, duration time.Duration) {
	FeedCompositionsTotal.WithLabelValues(state).Inc()
	FeedComposeDuration.WithLabelValues(state).Observe(duration.Seconds())
}

// RecordFeedDegradation records a warm feed falling back to cold.
func RecordFeedDegradation(stage string) {
	FeedDegradationsTotal.WithLabelValues(stage).Inc()
}

// RecordProfile records the size of a built taste profile.
func RecordProfile(features int) {
	ProfileFeatures.Observe(float64(features))
}

// RecordScorerRun records the pool size and number of matching candidates.
func RecordScorerRun(pool, matched int) {
	ScorerCandidates.WithLabelValues("pool").Observe(float64(pool))
	ScorerCandidates.WithLabelValues("matched").Observe(float64(matched))
}

// RecordFeaturedChannelMiss records a warm feed without a featured channel.
func RecordFeaturedChannelMiss(reason string) {
	FeaturedChannelMisses.WithLabelValues(reason).Inc()
}

// RecordUpNext records an up-next list being served.
func RecordUpNext(personalized bool) {
	mode := "random"
	if personalized {
		mode = "personalized"
	}
	UpNextTotal.WithLabelValues(mode).Inc()
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table, errorType(err)).Inc()
	}
}

// errorType returns a bounded label for err. Context errors get stable names.
func errorType(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	}
	msg := err.Error()
	if len(msg) > errorTypeMaxLen {
		msg = msg[:errorTypeMaxLen]
	}
	return msg
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit records a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}
