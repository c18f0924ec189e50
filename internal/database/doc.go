// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

// Package database provides the DuckDB-backed catalog and watch history
// consumed by the feed engine.
//
// # Overview
//
// DB implements recommend.Store over three tables:
//
//   - channels: id, name
//   - videos: id, title, category, raw comma-separated tags, channel_id,
//     is_public, view_count, uploaded_at
//   - watch_events: viewer_id, video_id, watched_at
//
// Watch events carry no foreign key. Deleting a video leaves its history in
// place and ResolveVideo reports recommend.ErrVideoNotFound for it.
//
// Tags are stored exactly as entered and normalized on read with
// recommend.ParseTags.
//
// # Fault Tolerance
//
// BreakerStore wraps any recommend.Store with a sony/gobreaker circuit
// breaker. Once the failure ratio trips the breaker, calls fail fast with
// ErrCircuitOpen and the composer serves cold feeds until a probe succeeds.
// Not-found results and caller cancellation never count as failures.
//
// # Metrics
//
// Every query records duckdb_query_duration_seconds and, on failure,
// duckdb_query_errors_total. Breaker state and transitions are exported
// as circuit_breaker_* series.
//
// # Usage
//
//	db, err := database.New(&cfg.Database)
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	store := database.NewBreakerStore(db, database.DefaultBreakerConfig())
//	composer, err := recommend.NewFeedComposer(store, feedCfg, logger)
//
// # Testing
//
// Tests run against ":memory:" databases, serialized through a semaphore.
package database
