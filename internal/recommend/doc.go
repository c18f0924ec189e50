// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

// Package recommend implements the personalized home feed for the video site.
//
// # Architecture
//
// The feed is assembled from four small components, leaves first:
//
//   - BuildProfile: folds a viewer's recent watch history into a TasteProfile
//   - CandidateScorer: ranks visible public videos against a TasteProfile
//   - ChannelAggregator: picks the single channel the viewer leans toward most
//   - FeedComposer: a cold/warm state machine that calls the above through a Store
//
// A TasteProfile is a sparse map from FeatureKey (Category, Tag or Channel)
// to a non-negative weight. Each watch event contributes
//
//	w = 0.95^idx * replayMult * contextBoost
//
// where idx is the position in the history (0 = most recent), replayMult is
// 1+ln(n) for a video watched n>1 times in the window, and contextBoost is 2.5
// for the video ids at positions 0 and 1. Category, tag and channel features
// receive 3.0*w, 1.0*w and 2.0*w respectively.
//
// # Feed States
//
// COLD applies to anonymous viewers and viewers with no watch history. Only
// the ForYou section is filled, with up to four random public videos.
//
// WARM applies otherwise and fills Latest, Trending, ForYou, the featured
// channel and its recent videos.
//
// Any Store error during composition degrades the feed to COLD. Compose never
// returns an error.
//
// # Usage
//
//	composer, err := recommend.NewFeedComposer(store, recommend.DefaultConfig(), logger)
//	if err != nil {
//		return err
//	}
//	feed := composer.Compose(ctx, recommend.Viewer{ID: 42, Authenticated: true})
//
// # Thread Safety
//
// Profiles and scored results are request scoped. The only shared state is the
// random source used for jitter and cold-start sampling, which is guarded by a
// mutex. Tests substitute a seeded source via WithRandom.
package recommend
