// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Checkpointer flushes the storage write-ahead log. *database.DB implements it.
type Checkpointer interface {
	Checkpoint(ctx context.Context) error
}

// checkpointTimeout bounds a single checkpoint.
const checkpointTimeout = time.Minute

// CheckpointService checkpoints DuckDB on a fixed interval.
type CheckpointService struct {
	db       Checkpointer
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCheckpointService creates a checkpoint service. interval must be positive.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCheckpointService(db Checkpointer, interval time.Duration, logger zerolog.Logger) *CheckpointService {
	return &CheckpointService{
		db:       db,
		interval: interval,
		logger:   logger.With().Str("service", "duckdb-checkpoint").Logger(),
		name:     "duckdb-checkpoint",
	}
}

// Serve implements suture.Service. Checkpoint errors are logged and retried
// on the next tick.
func (s *CheckpointService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("checkpoint service starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Final flush so a clean shutdown leaves no WAL behind.
			s.checkpoint(context.WithoutCancel(ctx))
			return ctx.Err()

		case <-ticker.C:
			s.checkpoint(ctx)
		}
	}
}

func (s *CheckpointService) checkpoint(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, checkpointTimeout)
	defer cancel()

	start := time.Now()
	if err := s.db.Checkpoint(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("checkpoint failed")
		return
	}
	s.logger.Debug().Dur("duration", time.Since(start)).Msg("checkpoint complete")
}

// String returns the service name for logging.
func (s *CheckpointService) String() string {
	return s.name
}
