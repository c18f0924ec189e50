// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/vidfeed/internal/logging"
	"github.com/tomtom215/vidfeed/internal/metrics"
	"github.com/tomtom215/vidfeed/internal/recommend"
)

// BreakerConfig tunes the circuit breaker around the store.
type BreakerConfig struct {
	Name         string
	MaxRequests  uint32        // Concurrent probes allowed while half-open
	Interval     time.Duration // Count reset period while closed
	Timeout      time.Duration // Open duration before probing
	MinRequests  uint32        // Requests needed before the ratio is considered
	FailureRatio float64
}

// DefaultBreakerConfig returns the production breaker settings.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:         "duckdb-store",
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      30 * time.Second,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// BreakerStore wraps a recommend.Store with the circuit breaker pattern.
//
// When DuckDB keeps failing, the breaker opens and every call returns
// ErrCircuitOpen immediately, so feed composition degrades to its cold
// path without waiting on the database. Not-found results and caller
// cancellation do not count as failures.
type BreakerStore struct {
	store recommend.Store
	cb    *gobreaker.CircuitBreaker[any]
	name  string
}

var _ recommend.Store = (*BreakerStore)(nil)

// NewBreakerStore wraps store with a circuit breaker
func NewBreakerStore(store recommend.Store, cfg BreakerConfig) *BreakerStore {
	name := cfg.Name

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0) // 0 = closed
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}

			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= cfg.FailureRatio

			if shouldTrip {
				logging.Warn().
					Str("breaker", name).
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}

			return shouldTrip
		},

		IsSuccessful: isBreakerSuccess,

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()

			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})

	return &BreakerStore{
		store: store,
		cb:    cb,
		name:  name,
	}
}

// isBreakerSuccess reports whether err leaves the breaker's failure count alone.
func isBreakerSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, recommend.ErrVideoNotFound) ||
		errors.Is(err, recommend.ErrChannelNotFound) ||
		errors.Is(err, context.Canceled)
}

// State returns the current breaker state name.
func (b *BreakerStore) State() string {
	return stateToString(b.cb.State())
}

// execute runs fn under the breaker and records the outcome.
func (b *BreakerStore) execute(fn func() (any, error)) (any, error) {
	result, err := b.cb.Execute(fn)

	switch {
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
		return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
	case !isBreakerSuccess(err):
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		counts := b.cb.Counts()
		metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(float64(counts.ConsecutiveFailures))
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(b.name).Set(0)
	return result, err
}

// castResult type-asserts the breaker result, passing errors through.
func castResult[T any](result any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// RecentWatchEvents implements recommend.Store.
func (b *BreakerStore) RecentWatchEvents(ctx context.Context, viewerID, limit int) ([]recommend.WatchEvent, error) {
	return castResult[[]recommend.WatchEvent](b.execute(func() (any, error) {
		return b.store.RecentWatchEvents(ctx, viewerID, limit)
	}))
}

// VisiblePublicVideos implements recommend.Store.
func (b *BreakerStore) VisiblePublicVideos(ctx context.Context, exclude map[int]struct{}) ([]recommend.Video, error) {
	return castResult[[]recommend.Video](b.execute(func() (any, error) {
		return b.store.VisiblePublicVideos(ctx, exclude)
	}))
}

// ResolveVideo implements recommend.Store.
func (b *BreakerStore) ResolveVideo(ctx context.Context, id int) (*recommend.Video, error) {
	return castResult[*recommend.Video](b.execute(func() (any, error) {
		return b.store.ResolveVideo(ctx, id)
	}))
}

// RecentPublicVideosForChannel implements recommend.Store.
func (b *BreakerStore) RecentPublicVideosForChannel(ctx context.Context, channelID, limit int) ([]recommend.Video, error) {
	return castResult[[]recommend.Video](b.execute(func() (any, error) {
		return b.store.RecentPublicVideosForChannel(ctx, channelID, limit)
	}))
}

// Channel implements recommend.Store.
func (b *BreakerStore) Channel(ctx context.Context, id int) (*recommend.Channel, error) {
	return castResult[*recommend.Channel](b.execute(func() (any, error) {
		return b.store.Channel(ctx, id)
	}))
}

// VisibleVideos implements recommend.Store.
func (b *BreakerStore) VisibleVideos(ctx context.Context, viewerID int) ([]recommend.Video, error) {
	return castResult[[]recommend.Video](b.execute(func() (any, error) {
		return b.store.VisibleVideos(ctx, viewerID)
	}))
}

// stateToFloat converts circuit breaker state to numeric value for metrics
func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

// stateToString converts circuit breaker state to string for logging
func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
