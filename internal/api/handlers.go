// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package api

import (
	"context"
	"time"

	"github.com/tomtom215/vidfeed/internal/config"
	"github.com/tomtom215/vidfeed/internal/recommend"
)

// FeedService composes feeds and up-next lists. *recommend.FeedComposer
// implements it.
type FeedService interface {
	Compose(ctx context.Context, viewer recommend.Viewer) recommend.Feed
	UpNext(ctx context.Context, viewer recommend.Viewer, videoID, limit int) ([]recommend.ScoredCandidate, error)
}

// Pinger reports storage reachability. *database.DB implements it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BreakerStater exposes the circuit breaker state for health output.
// *database.BreakerStore implements it.
type BreakerStater interface {
	State() string
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct and constructor (this file)
//   - handlers_helpers.go: response helpers
//   - handlers_feed.go: feed and up-next endpoints
//   - handlers_health.go: health and readiness endpoints
type Handler struct {
	feeds     FeedService
	db        Pinger
	breaker   BreakerStater
	config    *config.Config
	version   string
	startTime time.Time
}

// NewHandler creates a new API handler.
//
// db and breaker may be nil; health then reports the missing dependency as
// unavailable.
//
// Example:
//
//	handler := api.NewHandler(composer, db, breakerStore, cfg, version)
//	router := api.NewRouter(handler, cfg, viewerAuth)
//	srv := &http.Server{Handler: router.SetupChi()}
func NewHandler(feeds FeedService, db Pinger, breaker BreakerStater, cfg *config.Config, version string) *Handler {
	return &Handler{
		feeds:     feeds,
		db:        db,
		breaker:   breaker,
		config:    cfg,
		version:   version,
		startTime: time.Now(),
	}
}

// composeTimeout returns the per-request deadline for feed work.
func (h *Handler) composeTimeout() time.Duration {
	if h.config != nil && h.config.Feed.ComposeTimeout > 0 {
		return h.config.Feed.ComposeTimeout
	}
	return 5 * time.Second
}

// defaultUpNextLimit returns the limit used when the client sends none.
func (h *Handler) defaultUpNextLimit() int {
	if h.config != nil && h.config.Feed.UpNextSize > 0 {
		return h.config.Feed.UpNextSize
	}
	return 5
}
