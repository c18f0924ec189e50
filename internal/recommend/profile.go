// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package recommend

import (
	"math"
	"sort"
)

// HistoryEntry pairs a watch event with its resolved video.
// Video is nil when the referenced video no longer exists.
type HistoryEntry struct {
	Event WatchEvent
	Video *Video
}

// TasteProfile is a sparse weighting over categories, tags and channels.
//
// A nil *TasteProfile means "no profile" and is distinct from a profile with
// signal. All methods are safe to call on nil.
type TasteProfile struct {
	weights map[FeatureKey]float64
}

// Weight returns the accumulated weight for key, or 0.
func (p *TasteProfile) Weight(key FeatureKey) float64 {
	if p == nil {
		return 0
	}
	return p.weights[key]
}

// Len returns the number of features with weight.
func (p *TasteProfile) Len() int {
	if p == nil {
		return 0
	}
	return len(p.weights)
}

// Features returns a copy of the feature weights.
func (p *TasteProfile) Features() map[FeatureKey]float64 {
	if p == nil {
		return nil
	}
	out := make(map[FeatureKey]float64, len(p.weights))
	for k, w := range p.weights {
		out[k] = w
	}
	return out
}

// add accumulates delta into key.
func (p *TasteProfile) add(key FeatureKey, delta float64) {
	p.weights[key] += delta
}

// BuildProfile folds history (most recent first) into a TasteProfile.
//
// Unresolved entries still count toward replay counts and the context set
// but contribute no features. Returns nil when history is empty or nothing
// in it resolves. BuildProfile is pure: equal input gives bitwise-equal weights.
func BuildProfile(history []HistoryEntry) *TasteProfile {
	if len(history) == 0 {
		return nil
	}

	replays := make(map[int]int, len(history))
	for i := range history {
		replays[history[i].Event.VideoID]++
	}

	recent := make(map[int]struct{}, ContextWindow)
	for i := 0; i < ContextWindow && i < len(history); i++ {
		recent[history[i].Event.VideoID] = struct{}{}
	}

	profile := &TasteProfile{weights: make(map[FeatureKey]float64)}
	for idx := range history {
		entry := &history[idx]
		if entry.Video == nil {
			continue
		}

		w := eventWeight(idx, replays[entry.Event.VideoID], hasID(recent, entry.Event.VideoID))
		accumulate(profile, entry.Video, w)
	}

	if profile.Len() == 0 {
		return nil
	}
	return profile
}

// eventWeight computes recency * replay multiplier * context boost.
func eventWeight(idx, replayCount int, inContext bool) float64 {
	recency := math.Pow(Decay, float64(idx))

	replayMult := 1.0
	if replayCount > 1 {
		replayMult = 1.0 + math.Log(float64(replayCount))
	}

	contextMult := 1.0
	if inContext {
		contextMult = ContextBoost
	}

	return recency * replayMult * contextMult
}

func accumulate(p *TasteProfile, v *Video, w float64) {
	if v.Category != "" {
		p.add(CategoryKey(v.Category), CategoryWeight*w)
	}
	for _, tag := range normalizeTags(v.Tags) {
		p.add(TagKey(tag), TagWeight*w)
	}
	p.add(ChannelKey(v.ChannelID), ChannelWeight*w)
}

func hasID(set map[int]struct{}, id int) bool {
	_, ok := set[id]
	return ok
}

// channelWeights returns channel ids with their weights, ascending by id.
func (p *TasteProfile) channelWeights() []FeaturedChannel {
	if p == nil {
		return nil
	}
	var out []FeaturedChannel
	for k, w := range p.weights {
		if k.Kind == FeatureChannel {
			out = append(out, FeaturedChannel{Channel: Channel{ID: k.ChannelID}, Weight: w})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
