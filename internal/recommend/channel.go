// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package recommend

import (
	"context"
	"errors"
	"fmt"
)

// ChannelAggregator picks the channel a viewer leans toward most.
type ChannelAggregator struct {
	store Store
	limit int
}

// NewChannelAggregator creates an aggregator returning up to limit videos.
func NewChannelAggregator(store Store, limit int) *ChannelAggregator {
	return &ChannelAggregator{store: store, limit: limit}
}

// TopChannel returns the Channel feature with the highest weight.
// Ties go to the smallest channel id. ok is false when the profile is nil or
// has no channel features.
func TopChannel(profile *TasteProfile) (top FeaturedChannel, ok bool) {
	// channelWeights is ascending by id, so strict > keeps the smallest id on ties.
	for _, c := range profile.channelWeights() {
		if !ok || c.Weight > top.Weight {
			top, ok = c, true
		}
	}
	return top, ok
}

// Aggregate returns the featured channel and its most recent public videos.
//
// A nil channel with an empty list is returned when there is no channel
// signal or the winning channel no longer exists. Other storage errors are
// returned to the caller.
func (a *ChannelAggregator) Aggregate(ctx context.Context, profile *TasteProfile) (*FeaturedChannel, []Video, error) {
	top, ok := TopChannel(profile)
	if !ok {
		return nil, []Video{}, nil
	}

	ch, err := a.store.Channel(ctx, top.ID)
	if errors.Is(err, ErrChannelNotFound) {
		return nil, []Video{}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load channel %d: %w", top.ID, err)
	}

	videos, err := a.store.RecentPublicVideosForChannel(ctx, ch.ID, a.limit)
	if err != nil {
		return nil, nil, fmt.Errorf("load channel %d videos: %w", ch.ID, err)
	}
	if len(videos) > a.limit {
		videos = videos[:a.limit]
	}
	if videos == nil {
		videos = []Video{}
	}

	return &FeaturedChannel{Channel: *ch, Weight: top.Weight}, videos, nil
}
