// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/vidfeed/internal/config"
)

// testDBSemaphore serializes DuckDB usage across tests. Concurrent CGO
// calls from many in-memory databases can hang under CI resource pressure.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates a new in-memory test database. The semaphore is held
// for the entire test and released on cleanup.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
		Threads:   2,
	}

	type result struct {
		db  *DB
		err error
	}
	resultCh := make(chan result, 1)
	go func() {
		db, err := New(cfg)
		resultCh <- result{db: db, err: err}
	}()

	select {
	case r := <-resultCh:
		if r.err != nil {
			t.Fatalf("Failed to create test database: %v", r.err)
		}
		t.Cleanup(func() {
			if err := r.db.Close(); err != nil {
				t.Errorf("Close() error = %v", err)
			}
		})
		return r.db
	case <-time.After(120 * time.Second):
		t.Fatal("Timeout creating test database")
		return nil
	}
}

func TestNew(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		if _, err := New(nil); err == nil {
			t.Error("New(nil) error = nil, want error")
		}
	})

	t.Run("in memory", func(t *testing.T) {
		db := setupTestDB(t)
		if err := db.Ping(context.Background()); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
		if db.Conn() == nil {
			t.Error("Conn() = nil")
		}
	})

	t.Run("creates parent directory", func(t *testing.T) {
		testDBSemaphore <- struct{}{}
		defer func() { <-testDBSemaphore }()

		path := filepath.Join(t.TempDir(), "nested", "dir", "feed.duckdb")
		db, err := New(&config.DatabaseConfig{Path: path, MaxMemory: "512MB", Threads: 1})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if err := db.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
}

func TestSchemaIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	if err := db.createTables(); err != nil {
		t.Fatalf("second createTables() error = %v", err)
	}

	for _, table := range []string{"channels", "videos", "watch_events"} {
		var n int
		err := db.conn.QueryRowContext(context.Background(),
			`SELECT COUNT(*) FROM information_schema.tables WHERE table_name = ?`, table).Scan(&n)
		if err != nil {
			t.Fatalf("query table %s: %v", table, err)
		}
		if n != 1 {
			t.Errorf("table %s count = %d, want 1", table, n)
		}
	}
}

func TestPingNilConnection(t *testing.T) {
	db := &DB{}
	if err := db.Ping(context.Background()); err == nil {
		t.Error("Ping() on nil connection error = nil, want error")
	}
	if err := db.Close(); err != nil {
		t.Errorf("Close() on nil connection error = %v", err)
	}
}

func TestEnsureContext(t *testing.T) {
	//nolint:staticcheck // nil context is handled explicitly
	ctx, cancel := ensureContext(nil)
	defer cancel()
	if _, ok := ctx.Deadline(); !ok {
		t.Error("ensureContext(nil) has no deadline")
	}

	parent, parentCancel := context.WithTimeout(context.Background(), time.Second)
	defer parentCancel()
	ctx, cancel = ensureContext(parent)
	defer cancel()
	if ctx != parent {
		t.Error("ensureContext() replaced a context that already had a deadline")
	}
}
