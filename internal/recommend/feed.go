// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vidfeed/internal/logging"
	"github.com/tomtom215/vidfeed/internal/metrics"
)

// Degradation stages, used as metric labels and log fields.
const (
	stageHistory    = "history"
	stageResolve    = "resolve"
	stageVisible    = "visible"
	stageCandidates = "candidates"
	stageChannel    = "channel"
)

// FeedComposer assembles home feeds and up-next lists. It is safe for
// concurrent use; nothing but the random source is shared between calls.
type FeedComposer struct {
	store    Store
	config   *Config
	logger   zerolog.Logger
	rng      RandomSource
	scorer   *CandidateScorer
	channels *ChannelAggregator
}

// Option configures a FeedComposer.
type Option func(*FeedComposer)

// WithRandom replaces the shared random source, typically with a seeded one in tests.
func WithRandom(rng RandomSource) Option {
	return func(c *FeedComposer) {
		c.rng = rng
	}
}

// NewFeedComposer creates a composer reading from store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFeedComposer(store Store, cfg *Config, logger zerolog.Logger, opts ...Option) (*FeedComposer, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &FeedComposer{
		store:  store,
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = NewRandomSource(cfg.Seed)
	}
	c.scorer = NewCandidateScorer(c.rng)
	c.channels = NewChannelAggregator(store, cfg.ChannelVideos)
	return c, nil
}

// Config returns a copy of the composer configuration.
func (c *FeedComposer) Config() *Config {
	return c.config.Clone()
}

// Compose builds the home feed for viewer. It never fails: any storage
// error degrades the result to the cold feed.
func (c *FeedComposer) Compose(ctx context.Context, viewer Viewer) Feed {
	start := time.Now()

	if viewer.Anonymous() {
		return c.finish(c.coldFeed(ctx, viewer), start)
	}

	history, stage, err := c.loadHistory(ctx, viewer.ID)
	if err != nil {
		return c.degrade(ctx, viewer, stage, err, start)
	}
	if len(history) == 0 {
		return c.finish(c.coldFeed(ctx, viewer), start)
	}

	feed, stage, err := c.warmFeed(ctx, viewer, history)
	if err != nil {
		return c.degrade(ctx, viewer, stage, err, start)
	}
	return c.finish(feed, start)
}

// log returns the composer's logger carrying the request-scoped fields of
// ctx. viewer_id comes from ctx when the auth middleware set it.
func (c *FeedComposer) log(ctx context.Context, viewer Viewer) *zerolog.Logger {
	if _, ok := logging.ViewerIDFromContext(ctx); !ok && !viewer.Anonymous() {
		ctx = logging.ContextWithViewerID(ctx, viewer.ID)
	}
	return logging.Ctx(logging.ContextWithLogger(ctx, c.logger))
}

func (c *FeedComposer) finish(feed Feed, start time.Time) Feed {
	metrics.RecordFeedComposition(string(feed.State), time.Since(start))
	return feed
}

func (c *FeedComposer) degrade(ctx context.Context, viewer Viewer, stage string, err error, start time.Time) Feed {
	c.log(ctx, viewer).Warn().
		Err(err).
		Str("stage", stage).
		Msg("feed composition degraded to cold")
	metrics.RecordFeedDegradation(stage)
	return c.finish(c.coldFeed(ctx, viewer), start)
}

// coldFeed fills ForYou with a uniform sample of public videos. A storage
// error here leaves ForYou empty.
func (c *FeedComposer) coldFeed(ctx context.Context, viewer Viewer) Feed {
	feed := emptyFeed(FeedCold)

	pool, err := c.store.VisiblePublicVideos(ctx, nil)
	if err != nil {
		c.log(ctx, viewer).Warn().Err(err).Msg("cold feed has no candidates")
		return feed
	}

	for _, v := range sampleVideos(c.rng, publicOnly(pool), c.config.SectionSize) {
		feed.ForYou = append(feed.ForYou, ScoredCandidate{Video: v})
	}
	return feed
}

func (c *FeedComposer) warmFeed(ctx context.Context, viewer Viewer, history []HistoryEntry) (Feed, string, error) {
	feed := emptyFeed(FeedWarm)

	profile := BuildProfile(history)
	metrics.RecordProfile(profile.Len())

	visible, err := c.store.VisibleVideos(ctx, viewer.ID)
	if err != nil {
		return feed, stageVisible, fmt.Errorf("load visible videos: %w", err)
	}
	visible = visibleTo(visible, viewer.ID)
	feed.Latest = latest(visible, c.config.SectionSize)
	feed.Trending = trending(visible, c.config.SectionSize)

	if profile != nil {
		pool, err := c.store.VisiblePublicVideos(ctx, nil)
		if err != nil {
			return feed, stageCandidates, fmt.Errorf("load candidates: %w", err)
		}
		feed.ForYou = c.scorer.Score(profile, publicOnly(pool), c.config.SectionSize)
		metrics.RecordScorerRun(len(pool), len(feed.ForYou))
	}

	channel, videos, err := c.channels.Aggregate(ctx, profile)
	if err != nil {
		return feed, stageChannel, err
	}
	feed.FeaturedChannel = channel
	feed.ChannelVideos = videos
	if channel == nil {
		reason := "deleted"
		if _, ok := TopChannel(profile); !ok {
			reason = "no_signal"
		}
		metrics.RecordFeaturedChannelMiss(reason)
	}

	c.log(ctx, viewer).Debug().
		Int("history", len(history)).
		Int("features", profile.Len()).
		Int("for_you", len(feed.ForYou)).
		Bool("featured_channel", channel != nil).
		Msg("warm feed composed")

	return feed, "", nil
}

// loadHistory reads the viewer's recent events and resolves each distinct
// video once. Missing videos resolve to nil.
func (c *FeedComposer) loadHistory(ctx context.Context, viewerID int) ([]HistoryEntry, string, error) {
	events, err := c.store.RecentWatchEvents(ctx, viewerID, c.config.HistoryWindow)
	if err != nil {
		return nil, stageHistory, fmt.Errorf("load watch events: %w", err)
	}
	if len(events) > c.config.HistoryWindow {
		events = events[:c.config.HistoryWindow]
	}

	resolved := make(map[int]*Video, len(events))
	history := make([]HistoryEntry, len(events))
	for i, ev := range events {
		v, seen := resolved[ev.VideoID]
		if !seen {
			v, err = c.store.ResolveVideo(ctx, ev.VideoID)
			if errors.Is(err, ErrVideoNotFound) {
				v, err = nil, nil
			}
			if err != nil {
				return nil, stageResolve, fmt.Errorf("resolve video %d: %w", ev.VideoID, err)
			}
			resolved[ev.VideoID] = v
		}
		history[i] = HistoryEntry{Event: ev, Video: v}
	}
	return history, "", nil
}

// UpNext returns up to limit videos to follow videoID. Warm viewers get
// scored picks first; the rest is backfilled with random public videos.
// videoID itself is never included.
//
// ErrVideoNotFound is returned when videoID does not exist or is not visible
// to the viewer. Storage errors after that point shorten the list instead.
func (c *FeedComposer) UpNext(ctx context.Context, viewer Viewer, videoID, limit int) ([]ScoredCandidate, error) {
	if limit <= 0 {
		limit = c.config.UpNextSize
	}
	if limit > c.config.UpNextMax {
		limit = c.config.UpNextMax
	}

	current, err := c.store.ResolveVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("resolve video %d: %w", videoID, err)
	}
	viewerID := viewer.ID
	if viewer.Anonymous() {
		viewerID = 0
	}
	if !current.VisibleTo(viewerID) {
		return nil, ErrVideoNotFound
	}

	pool, err := c.store.VisiblePublicVideos(ctx, map[int]struct{}{videoID: {}})
	if err != nil {
		c.log(ctx, viewer).Warn().Err(err).Int("video_id", videoID).Msg("up-next has no candidates")
		return []ScoredCandidate{}, nil
	}
	pool = publicOnly(pool)
	pool = without(pool, map[int]struct{}{videoID: {}})

	picks := []ScoredCandidate{}
	if !viewer.Anonymous() {
		history, _, err := c.loadHistory(ctx, viewer.ID)
		if err != nil {
			c.log(ctx, viewer).Warn().Err(err).Msg("up-next falling back to random picks")
		} else {
			picks = c.scorer.Score(BuildProfile(history), pool, limit)
		}
	}
	metrics.RecordUpNext(len(picks) > 0)

	chosen := make(map[int]struct{}, len(picks))
	for _, p := range picks {
		chosen[p.Video.ID] = struct{}{}
	}
	for _, v := range sampleVideos(c.rng, without(pool, chosen), limit-len(picks)) {
		picks = append(picks, ScoredCandidate{Video: v})
	}
	return picks, nil
}

func visibleTo(videos []Video, viewerID int) []Video {
	out := make([]Video, 0, len(videos))
	for i := range videos {
		if videos[i].VisibleTo(viewerID) {
			out = append(out, videos[i])
		}
	}
	return out
}

func publicOnly(videos []Video) []Video {
	return visibleTo(videos, 0)
}

func without(videos []Video, ids map[int]struct{}) []Video {
	if len(ids) == 0 {
		return videos
	}
	out := make([]Video, 0, len(videos))
	for i := range videos {
		if _, skip := ids[videos[i].ID]; !skip {
			out = append(out, videos[i])
		}
	}
	return out
}

// latest returns the n most recently uploaded videos; ties go to the higher id.
func latest(videos []Video, n int) []Video {
	return topN(videos, n, func(a, b *Video) bool {
		if !a.UploadedAt.Equal(b.UploadedAt) {
			return a.UploadedAt.After(b.UploadedAt)
		}
		return a.ID > b.ID
	})
}

// trending returns the n most viewed videos; ties go to the newer upload, then the higher id.
func trending(videos []Video, n int) []Video {
	return topN(videos, n, func(a, b *Video) bool {
		if a.ViewCount != b.ViewCount {
			return a.ViewCount > b.ViewCount
		}
		if !a.UploadedAt.Equal(b.UploadedAt) {
			return a.UploadedAt.After(b.UploadedAt)
		}
		return a.ID > b.ID
	})
}

func topN(videos []Video, n int, less func(a, b *Video) bool) []Video {
	sorted := make([]Video, len(videos))
	copy(sorted, videos)
	sort.Slice(sorted, func(i, j int) bool { return less(&sorted[i], &sorted[j]) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
