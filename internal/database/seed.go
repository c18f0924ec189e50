// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/vidfeed/internal/logging"
	"github.com/tomtom215/vidfeed/internal/recommend"
)

// DemoViewerID is the viewer whose history SeedDemoData populates.
// A token for this id receives a warm feed on a freshly seeded database.
const DemoViewerID = 42

var demoChannels = []recommend.Channel{
	{ID: 1, Name: "Blue Note Sessions"},
	{ID: 2, Name: "Pixel Speedruns"},
	{ID: 3, Name: "Morning Briefing"},
	{ID: 4, Name: "Trail Kitchen"},
}

type demoVideo struct {
	id        int
	title     string
	category  string
	tags      string
	channelID int
	public    bool
	views     int64
	ageHours  int
}

var demoVideos = []demoVideo{
	{1, "Late Night Trio Live", "music", "jazz,live,piano", 1, true, 12400, 240},
	{2, "Modal Jazz Explained", "music", "jazz,theory", 1, true, 8800, 96},
	{3, "Studio Outtakes", "music", "jazz,studio", 1, false, 15, 12},
	{4, "Saxophone Warmups", "music", "jazz,practice", 1, true, 2300, 30},
	{5, "Any% World Record Attempt", "gaming", "speedrun,retro", 2, true, 54000, 72},
	{6, "Glitch Hunting Stream", "gaming", "speedrun,glitch,live", 2, true, 19000, 20},
	{7, "Routing 101", "gaming", "speedrun,tutorial", 2, true, 7600, 150},
	{8, "Headlines in Five", "news", "daily,politics", 3, true, 31000, 6},
	{9, "Weekly Market Wrap", "news", "economy,weekly", 3, true, 11200, 48},
	{10, "Campfire Bread", "cooking", "outdoors,baking", 4, true, 9900, 200},
	{11, "One Pot Chili", "cooking", "outdoors,dinner", 4, true, 14300, 10},
	{12, "Piano Jazz on the Trail", "music", "jazz,outdoors,piano", 4, true, 4100, 60},
}

// demoHistory lists DemoViewerID's watches, oldest first.
var demoHistory = []int{5, 1, 2, 12, 1, 4}

// SeedDemoData inserts a small catalog and watch history.
// Existing rows with the same ids are overwritten.
func (db *DB) SeedDemoData(ctx context.Context) error {
	now := time.Now().UTC().Truncate(time.Second)

	for _, c := range demoChannels {
		if err := db.InsertChannel(ctx, c); err != nil {
			return fmt.Errorf("seed channels: %w", err)
		}
	}

	for _, d := range demoVideos {
		v := recommend.Video{
			ID:         d.id,
			Title:      d.title,
			Category:   d.category,
			Tags:       recommend.ParseTags(d.tags),
			ChannelID:  d.channelID,
			IsPublic:   d.public,
			ViewCount:  d.views,
			UploadedAt: now.Add(-time.Duration(d.ageHours) * time.Hour),
		}
		if err := db.InsertVideo(ctx, &v); err != nil {
			return fmt.Errorf("seed videos: %w", err)
		}
	}

	if _, err := db.conn.ExecContext(ctx, `DELETE FROM watch_events WHERE viewer_id = ?`, DemoViewerID); err != nil {
		return fmt.Errorf("reset demo history: %w", err)
	}
	for i, videoID := range demoHistory {
		ev := recommend.WatchEvent{
			ViewerID:  DemoViewerID,
			VideoID:   videoID,
			Timestamp: now.Add(-time.Duration(len(demoHistory)-i) * time.Minute),
		}
		if err := db.RecordWatch(ctx, ev); err != nil {
			return fmt.Errorf("seed watch history: %w", err)
		}
	}

	logging.Info().
		Int("channels", len(demoChannels)).
		Int("videos", len(demoVideos)).
		Int("watch_events", len(demoHistory)).
		Int("viewer_id", DemoViewerID).
		Msg("Seeded demo data")
	return nil
}
