// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// schemaQueries creates the catalog and history tables.
//
// There are no foreign keys: a watch event outlives its video when the
// video is deleted, and feed composition treats such events as unresolved.
// tags holds the raw comma-separated string as entered by the uploader.
var schemaQueries = []string{
	`CREATE TABLE IF NOT EXISTS channels (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS videos (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT '',
		tags TEXT NOT NULL DEFAULT '',
		channel_id INTEGER NOT NULL,
		is_public BOOLEAN NOT NULL DEFAULT TRUE,
		view_count BIGINT NOT NULL DEFAULT 0,
		uploaded_at TIMESTAMP NOT NULL
	)`,
	`CREATE SEQUENCE IF NOT EXISTS watch_events_id_seq START 1`,
	`CREATE TABLE IF NOT EXISTS watch_events (
		id BIGINT PRIMARY KEY DEFAULT nextval('watch_events_id_seq'),
		viewer_id INTEGER NOT NULL,
		video_id INTEGER NOT NULL,
		watched_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_watch_events_viewer ON watch_events(viewer_id, watched_at)`,
}

// createTables creates all required tables and indexes
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range schemaQueries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}
	return nil
}
