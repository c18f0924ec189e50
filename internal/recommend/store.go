// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package recommend

import "context"

// Note: this package does not import the database layer. Store is
// implemented by internal/database and by test fakes.

// Store is the read-only storage boundary consumed by the feed engine.
type Store interface {
	// RecentWatchEvents returns at most limit events for the viewer, most recent first.
	RecentWatchEvents(ctx context.Context, viewerID, limit int) ([]WatchEvent, error)

	// VisiblePublicVideos returns every public video whose id is not in exclude.
	VisiblePublicVideos(ctx context.Context, exclude map[int]struct{}) ([]Video, error)

	// ResolveVideo returns a video by id, or ErrVideoNotFound.
	ResolveVideo(ctx context.Context, id int) (*Video, error)

	// RecentPublicVideosForChannel returns the channel's public videos, newest first.
	RecentPublicVideosForChannel(ctx context.Context, channelID, limit int) ([]Video, error)

	// Channel returns a channel by id, or ErrChannelNotFound.
	Channel(ctx context.Context, id int) (*Channel, error)

	// VisibleVideos returns every video visible to viewerID (public, or uploaded by the viewer).
	VisibleVideos(ctx context.Context, viewerID int) ([]Video, error)
}
