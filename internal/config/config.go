// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Feed     FeedConfig     `koanf:"feed"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port         int           `koanf:"port"`
	Host         string        `koanf:"host"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	Environment  string        `koanf:"environment"` // development, staging, production
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// DatabaseConfig holds DuckDB connection settings
type DatabaseConfig struct {
	Path         string `koanf:"path"` // ":memory:" for an in-process database
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"`        // 0 = use NumCPU
	SeedDemoData bool   `koanf:"seed_demo_data"` // Insert a small demo catalog on startup

	// CheckpointInterval is how often the WAL is flushed. 0 disables periodic checkpoints.
	CheckpointInterval time.Duration `koanf:"checkpoint_interval"`
}

// FeedConfig holds recommendation and feed composition settings.
type FeedConfig struct {
	// HistoryWindow is how many of the viewer's most recent watch events
	// feed the taste profile.
	HistoryWindow int `koanf:"history_window"`

	// SectionSize is the number of videos in each of latest, trending and for_you.
	SectionSize int `koanf:"section_size"`

	// ChannelVideos is the number of videos shown for the featured channel.
	ChannelVideos int `koanf:"channel_videos"`

	UpNextSize int `koanf:"up_next_size"`
	UpNextMax  int `koanf:"up_next_max"`

	// Seed fixes the jitter and sampling source. 0 seeds from the clock.
	Seed int64 `koanf:"seed"`

	// ComposeTimeout bounds a single feed request including all store calls.
	ComposeTimeout time.Duration `koanf:"compose_timeout"`
}

// SecurityConfig holds token verification and HTTP protection settings
type SecurityConfig struct {
	// JWTSecret verifies viewer tokens. Empty means every request is anonymous.
	JWTSecret         string        `koanf:"jwt_secret"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds logging configuration for zerolog.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, in that order of precedence.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
