// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package recommend

import (
	"fmt"
)

// Profile weighting constants.
const (
	CategoryWeight = 3.0
	TagWeight      = 1.0
	ChannelWeight  = 2.0

	// Decay is the per-position recency discount.
	Decay = 0.95

	// ContextBoost multiplies events whose video is among the ContextWindow most recent.
	ContextBoost  = 2.5
	ContextWindow = 2

	// MaxJitter bounds the uniform jitter added to positive candidate scores.
	MaxJitter = 0.5
)

// Config contains all configuration for feed composition.
type Config struct {
	// HistoryWindow is the number of most recent watch events read per viewer.
	HistoryWindow int `json:"history_window"`

	// SectionSize caps Latest, Trending and ForYou (cold and warm).
	SectionSize int `json:"section_size"`

	// ChannelVideos caps the featured channel's video list.
	ChannelVideos int `json:"channel_videos"`

	// UpNextSize is the default length of the up-next list.
	UpNextSize int `json:"up_next_size"`

	// UpNextMax bounds caller-supplied up-next limits.
	UpNextMax int `json:"up_next_max"`

	// Seed seeds the shared random source. Zero seeds from the clock.
	Seed int64 `json:"seed"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		HistoryWindow: 50,
		SectionSize:   4,
		ChannelVideos: 4,
		UpNextSize:    5,
		UpNextMax:     20,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.HistoryWindow < 1 {
		return fmt.Errorf("history_window must be positive, got %d", c.HistoryWindow)
	}
	if c.SectionSize < 1 {
		return fmt.Errorf("section_size must be positive, got %d", c.SectionSize)
	}
	if c.ChannelVideos < 1 {
		return fmt.Errorf("channel_videos must be positive, got %d", c.ChannelVideos)
	}
	if c.UpNextSize < 1 {
		return fmt.Errorf("up_next_size must be positive, got %d", c.UpNextSize)
	}
	if c.UpNextMax < c.UpNextSize {
		return fmt.Errorf("up_next_max must be >= up_next_size (%d), got %d", c.UpNextSize, c.UpNextMax)
	}
	return nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
