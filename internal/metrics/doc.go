// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are exposed at /metrics by the API router.

# Available Metrics

Feed Metrics:
  - feed_compositions_total: Feeds composed (counter)
    Labels: state (cold, warm)
  - feed_compose_duration_seconds: Composition latency (histogram)
    Labels: state
  - feed_degradations_total: Warm feeds served cold after a storage error (counter)
    Labels: stage (history, resolve, visible, candidates, channel)
  - feed_profile_features: Features per taste profile (histogram)
  - feed_scorer_candidates: Pool and matched candidate counts (histogram)
    Labels: phase (pool, matched)
  - feed_featured_channel_misses_total: Warm feeds without a featured channel (counter)
    Labels: reason (no_signal, deleted)
  - feed_up_next_total: Up-next lists served (counter)
    Labels: mode (personalized, random)

Database Metrics:
  - duckdb_query_duration_seconds: Query execution time (histogram)
    Labels: operation, table
  - duckdb_query_errors_total: Failed queries (counter)
    Labels: operation, table, error_type

API Metrics:
  - api_requests_total, api_request_duration_seconds, api_active_requests
  - api_rate_limit_hits_total

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
  - circuit_breaker_requests_total: Labels: name, result
  - circuit_breaker_consecutive_failures
  - circuit_breaker_state_transitions_total: Labels: name, from_state, to_state

# Usage

	start := time.Now()
	rows, err := db.QueryContext(ctx, query)
	metrics.RecordDBQuery("select", "videos", time.Since(start), err)
*/
package metrics
