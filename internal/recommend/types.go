// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package recommend

import (
	"errors"
	"strconv"
	"time"
)

var (
	// ErrVideoNotFound is returned by a Store when a video id does not resolve.
	ErrVideoNotFound = errors.New("video not found")

	// ErrChannelNotFound is returned by a Store when a channel no longer exists.
	ErrChannelNotFound = errors.New("channel not found")
)

// WatchEvent records a single view of a video by a viewer.
type WatchEvent struct {
	ViewerID  int       `json:"viewer_id"`
	VideoID   int       `json:"video_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Video is the read-only metadata the engine needs about a video.
type Video struct {
	// ID is the unique video identifier.
	ID int `json:"id"`

	// Title is carried through for rendering only.
	Title string `json:"title"`

	// Category is optional; empty means no category.
	Category string `json:"category,omitempty"`

	// Tags holds normalized tags (see ParseTags).
	Tags []string `json:"tags,omitempty"`

	// ChannelID is the uploader's user id. Every user is a channel.
	ChannelID int `json:"channel_id"`

	IsPublic   bool      `json:"is_public"`
	ViewCount  int64     `json:"view_count"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// VisibleTo reports whether viewerID may see the video.
// A zero viewerID is anonymous and only sees public videos.
func (v *Video) VisibleTo(viewerID int) bool {
	return v.IsPublic || (viewerID != 0 && v.ChannelID == viewerID)
}

// Channel is an uploader viewed as a channel.
type Channel struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Viewer identifies who a feed is composed for.
type Viewer struct {
	ID            int
	Authenticated bool
}

// Anonymous reports whether the viewer has no usable identity.
func (v Viewer) Anonymous() bool {
	return !v.Authenticated || v.ID == 0
}

// FeatureKind discriminates the FeatureKey namespaces.
type FeatureKind uint8

const (
	FeatureCategory FeatureKind = iota + 1
	FeatureTag
	FeatureChannel
)

// String returns the string representation of the feature kind.
func (k FeatureKind) String() string {
	switch k {
	case FeatureCategory:
		return "category"
	case FeatureTag:
		return "tag"
	case FeatureChannel:
		return "channel"
	default:
		return "unknown"
	}
}

// FeatureKey is a tagged TasteProfile key. Name is set for Category and Tag
// keys, ChannelID for Channel keys. Keys of different kinds never compare
// equal, so a category and a tag with the same text stay separate.
type FeatureKey struct {
	Kind      FeatureKind
	Name      string
	ChannelID int
}

// CategoryKey returns the key for a category feature.
func CategoryKey(name string) FeatureKey {
	return FeatureKey{Kind: FeatureCategory, Name: name}
}

// TagKey returns the key for a tag feature.
func TagKey(name string) FeatureKey {
	return FeatureKey{Kind: FeatureTag, Name: name}
}

// ChannelKey returns the key for a channel feature.
func ChannelKey(id int) FeatureKey {
	return FeatureKey{Kind: FeatureChannel, ChannelID: id}
}

func (k FeatureKey) String() string {
	if k.Kind == FeatureChannel {
		return k.Kind.String() + ":" + strconv.Itoa(k.ChannelID)
	}
	return k.Kind.String() + ":" + k.Name
}

// ScoredCandidate is a video paired with its ranking score.
// Score includes jitter once returned by CandidateScorer.
type ScoredCandidate struct {
	Video Video   `json:"video"`
	Score float64 `json:"score"`
}

// FeedState is the composition state of a feed.
type FeedState string

const (
	// FeedCold is served to anonymous viewers and viewers without history.
	FeedCold FeedState = "cold"

	// FeedWarm is served when at least one watch event exists.
	FeedWarm FeedState = "warm"
)

// FeaturedChannel is the channel selected by ChannelAggregator along with
// the profile weight that made it win.
type FeaturedChannel struct {
	Channel
	Weight float64 `json:"weight"`
}

// Feed is the composed home feed. Empty sections are non-nil so they encode
// as [] rather than null.
type Feed struct {
	State           FeedState         `json:"state"`
	Latest          []Video           `json:"latest"`
	Trending        []Video           `json:"trending"`
	ForYou          []ScoredCandidate `json:"for_you"`
	FeaturedChannel *FeaturedChannel  `json:"featured_channel"`
	ChannelVideos   []Video           `json:"channel_videos"`
}

func emptyFeed(state FeedState) Feed {
	return Feed{
		State:         state,
		Latest:        []Video{},
		Trending:      []Video{},
		ForYou:        []ScoredCandidate{},
		ChannelVideos: []Video{},
	}
}
