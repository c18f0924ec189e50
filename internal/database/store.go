// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/vidfeed/internal/metrics"
	"github.com/tomtom215/vidfeed/internal/recommend"
)

var _ recommend.Store = (*DB)(nil)

const videoColumns = `id, title, category, tags, channel_id, is_public, view_count, uploaded_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner) (recommend.Video, error) {
	var (
		v    recommend.Video
		tags string
	)
	if err := row.Scan(&v.ID, &v.Title, &v.Category, &tags, &v.ChannelID, &v.IsPublic, &v.ViewCount, &v.UploadedAt); err != nil {
		return recommend.Video{}, err
	}
	v.Tags = recommend.ParseTags(tags)
	return v, nil
}

// queryVideos runs a video query and collects the rows, skipping ids in exclude.
func (db *DB) queryVideos(ctx context.Context, exclude map[int]struct{}, query string, args ...any) ([]recommend.Video, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	videos := make([]recommend.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan video: %w", err)
		}
		if _, skip := exclude[v.ID]; skip {
			continue
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// RecentWatchEvents returns at most limit events for the viewer, most recent first.
func (db *DB) RecentWatchEvents(ctx context.Context, viewerID, limit int) (events []recommend.WatchEvent, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "watch_events", time.Since(start), err) }()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT viewer_id, video_id, watched_at
		FROM watch_events
		WHERE viewer_id = ?
		ORDER BY watched_at DESC, id DESC
		LIMIT ?`, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query watch events: %w", err)
	}
	defer closeWithLog(rows, "rows")

	events = make([]recommend.WatchEvent, 0, limit)
	for rows.Next() {
		var ev recommend.WatchEvent
		if err := rows.Scan(&ev.ViewerID, &ev.VideoID, &ev.Timestamp); err != nil {
			return nil, fmt.Errorf("scan watch event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watch events: %w", err)
	}
	return events, nil
}

// VisiblePublicVideos returns every public video whose id is not in exclude, ordered by id.
func (db *DB) VisiblePublicVideos(ctx context.Context, exclude map[int]struct{}) (videos []recommend.Video, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "videos", time.Since(start), err) }()

	videos, err = db.queryVideos(ctx, exclude,
		`SELECT `+videoColumns+` FROM videos WHERE is_public ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query public videos: %w", err)
	}
	return videos, nil
}

// ResolveVideo returns a video by id regardless of visibility, or recommend.ErrVideoNotFound.
func (db *DB) ResolveVideo(ctx context.Context, id int) (video *recommend.Video, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() {
		if errors.Is(err, recommend.ErrVideoNotFound) {
			metrics.RecordDBQuery("select", "videos", time.Since(start), nil)
			return
		}
		metrics.RecordDBQuery("select", "videos", time.Since(start), err)
	}()

	v, err := scanVideo(db.conn.QueryRowContext(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, recommend.ErrVideoNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query video %d: %w", id, err)
	}
	return &v, nil
}

// RecentPublicVideosForChannel returns the channel's public videos, newest first.
func (db *DB) RecentPublicVideosForChannel(ctx context.Context, channelID, limit int) (videos []recommend.Video, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "videos", time.Since(start), err) }()

	videos, err = db.queryVideos(ctx, nil, `
		SELECT `+videoColumns+`
		FROM videos
		WHERE channel_id = ? AND is_public
		ORDER BY uploaded_at DESC, id DESC
		LIMIT ?`, channelID, limit)
	if err != nil {
		return nil, fmt.Errorf("query channel %d videos: %w", channelID, err)
	}
	return videos, nil
}

// Channel returns a channel by id, or recommend.ErrChannelNotFound.
func (db *DB) Channel(ctx context.Context, id int) (channel *recommend.Channel, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() {
		if errors.Is(err, recommend.ErrChannelNotFound) {
			metrics.RecordDBQuery("select", "channels", time.Since(start), nil)
			return
		}
		metrics.RecordDBQuery("select", "channels", time.Since(start), err)
	}()

	var c recommend.Channel
	err = db.conn.QueryRowContext(ctx, `SELECT id, name FROM channels WHERE id = ?`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, recommend.ErrChannelNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query channel %d: %w", id, err)
	}
	return &c, nil
}

// VisibleVideos returns every video visible to viewerID, ordered by id.
// Anonymous viewers (id 0) see public videos only.
func (db *DB) VisibleVideos(ctx context.Context, viewerID int) (videos []recommend.Video, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "videos", time.Since(start), err) }()

	videos, err = db.queryVideos(ctx, nil, `
		SELECT `+videoColumns+`
		FROM videos
		WHERE is_public OR (? <> 0 AND channel_id = ?)
		ORDER BY id`, viewerID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("query visible videos: %w", err)
	}
	return videos, nil
}

// InsertChannel creates or renames a channel.
func (db *DB) InsertChannel(ctx context.Context, c recommend.Channel) (err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "channels", time.Since(start), err) }()

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO channels (id, name) VALUES (?, ?)
		ON CONFLICT (id) DO UPDATE SET name = excluded.name`, c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("insert channel %d: %w", c.ID, err)
	}
	return nil
}

// InsertVideo creates or replaces a video. Tags are stored comma-joined.
func (db *DB) InsertVideo(ctx context.Context, v *recommend.Video) (err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "videos", time.Since(start), err) }()

	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO videos (`+videoColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			category = excluded.category,
			tags = excluded.tags,
			channel_id = excluded.channel_id,
			is_public = excluded.is_public,
			view_count = excluded.view_count,
			uploaded_at = excluded.uploaded_at`,
		v.ID, v.Title, v.Category, strings.Join(v.Tags, ","), v.ChannelID, v.IsPublic, v.ViewCount, v.UploadedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert video %d: %w", v.ID, err)
	}
	return nil
}

// DeleteVideo removes a video. Watch events that reference it are kept.
func (db *DB) DeleteVideo(ctx context.Context, id int) (err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("delete", "videos", time.Since(start), err) }()

	if _, err = db.conn.ExecContext(ctx, `DELETE FROM videos WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete video %d: %w", id, err)
	}
	return nil
}

// RecordWatch appends a watch event. A zero timestamp means now.
func (db *DB) RecordWatch(ctx context.Context, ev recommend.WatchEvent) (err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { metrics.RecordDBQuery("insert", "watch_events", time.Since(start), err) }()

	ts := ev.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO watch_events (viewer_id, video_id, watched_at) VALUES (?, ?, ?)`,
		ev.ViewerID, ev.VideoID, ts.UTC())
	if err != nil {
		return fmt.Errorf("insert watch event: %w", err)
	}
	return nil
}
