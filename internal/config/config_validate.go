// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package config

import (
	"fmt"
	"strings"
)

// minJWTSecretLength is the shortest accepted HMAC secret.
const minJWTSecretLength = 32

// Validate checks that configuration values are usable
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateFeed(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("HTTP_READ_TIMEOUT and HTTP_WRITE_TIMEOUT must be positive")
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be >= 0, got %d", c.Database.Threads)
	}
	if c.Database.CheckpointInterval < 0 {
		return fmt.Errorf("DUCKDB_CHECKPOINT_INTERVAL must be >= 0, got %v", c.Database.CheckpointInterval)
	}
	return nil
}

func (c *Config) validateFeed() error {
	f := c.Feed
	if f.HistoryWindow <= 0 {
		return fmt.Errorf("FEED_HISTORY_WINDOW must be positive, got %d", f.HistoryWindow)
	}
	if f.SectionSize <= 0 {
		return fmt.Errorf("FEED_SECTION_SIZE must be positive, got %d", f.SectionSize)
	}
	if f.ChannelVideos <= 0 {
		return fmt.Errorf("FEED_CHANNEL_VIDEOS must be positive, got %d", f.ChannelVideos)
	}
	if f.UpNextSize <= 0 {
		return fmt.Errorf("FEED_UP_NEXT_SIZE must be positive, got %d", f.UpNextSize)
	}
	if f.UpNextMax < f.UpNextSize {
		return fmt.Errorf("FEED_UP_NEXT_MAX must be >= FEED_UP_NEXT_SIZE (%d), got %d", f.UpNextSize, f.UpNextMax)
	}
	if f.ComposeTimeout <= 0 {
		return fmt.Errorf("FEED_COMPOSE_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	s := c.Security
	if s.JWTSecret != "" && len(s.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLength)
	}
	if !s.RateLimitDisabled {
		if s.RateLimitReqs <= 0 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", s.RateLimitReqs)
		}
		if s.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive")
		}
	}
	if c.Server.IsProduction() {
		for _, origin := range s.CORSOrigins {
			if origin == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain * in production")
			}
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}
