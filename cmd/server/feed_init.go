// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vidfeed/internal/config"
	"github.com/tomtom215/vidfeed/internal/database"
	"github.com/tomtom215/vidfeed/internal/recommend"
)

// FeedComponents holds the storage and composition stack behind the API.
type FeedComponents struct {
	Breaker  *database.BreakerStore
	Composer *recommend.FeedComposer
}

// buildFeedConfig maps the feed section of the application config onto the
// composer's configuration.
func buildFeedConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		HistoryWindow: cfg.Feed.HistoryWindow,
		SectionSize:   cfg.Feed.SectionSize,
		ChannelVideos: cfg.Feed.ChannelVideos,
		UpNextSize:    cfg.Feed.UpNextSize,
		UpNextMax:     cfg.Feed.UpNextMax,
		Seed:          cfg.Feed.Seed,
	}
}

// initFeed seeds the demo catalog when requested and wires the composer
// behind a circuit breaker.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initFeed(ctx context.Context, cfg *config.Config, db *database.DB, logger zerolog.Logger) (*FeedComponents, error) {
	if cfg.Database.SeedDemoData {
		logger.Info().Msg("Demo catalog seeding enabled (SEED_DEMO_DATA=true)")
		if err := db.SeedDemoData(ctx); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
	}

	breaker := database.NewBreakerStore(db, database.DefaultBreakerConfig())

	feedCfg := buildFeedConfig(cfg)
	composer, err := recommend.NewFeedComposer(breaker, feedCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create feed composer: %w", err)
	}

	logger.Info().
		Int("history_window", feedCfg.HistoryWindow).
		Int("section_size", feedCfg.SectionSize).
		Int("channel_videos", feedCfg.ChannelVideos).
		Int("up_next_size", feedCfg.UpNextSize).
		Bool("seeded", feedCfg.Seed != 0).
		Msg("Feed composer initialized")

	return &FeedComponents{Breaker: breaker, Composer: composer}, nil
}
