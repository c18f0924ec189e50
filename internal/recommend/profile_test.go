// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package recommend

import (
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-12
}

// entry builds a resolved history entry.
func entry(v *Video) HistoryEntry {
	return HistoryEntry{Event: WatchEvent{ViewerID: 1, VideoID: v.ID}, Video: v}
}

// missing builds a history entry whose video no longer resolves.
func missing(videoID int) HistoryEntry {
	return HistoryEntry{Event: WatchEvent{ViewerID: 1, VideoID: videoID}}
}

func TestBuildProfile_Empty(t *testing.T) {
	tests := []struct {
		name    string
		history []HistoryEntry
	}{
		{name: "nil history", history: nil},
		{name: "empty history", history: []HistoryEntry{}},
		{name: "all unresolved", history: []HistoryEntry{missing(3), missing(4), missing(3)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildProfile(tt.history)
			if p != nil {
				t.Fatalf("BuildProfile() = %v, want nil", p.Features())
			}
			if p.Len() != 0 {
				t.Errorf("Len() = %d, want 0", p.Len())
			}
			if w := p.Weight(ChannelKey(1)); w != 0 {
				t.Errorf("Weight() on nil profile = %v, want 0", w)
			}
		})
	}
}

func TestBuildProfile_SingleEvent(t *testing.T) {
	v := &Video{ID: 10, Category: "music", ChannelID: 7}
	p := BuildProfile([]HistoryEntry{entry(v)})

	if got := p.Weight(CategoryKey("music")); got != 7.5 {
		t.Errorf("Category(music) = %v, want 7.5", got)
	}
	if got := p.Weight(ChannelKey(7)); got != 5.0 {
		t.Errorf("Channel(7) = %v, want 5.0", got)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d, want 2", p.Len())
	}
}

func TestBuildProfile_EndToEndFormula(t *testing.T) {
	a := &Video{ID: 1, Category: "sports", ChannelID: 1}
	b := &Video{ID: 2, Category: "sports", ChannelID: 1}

	p := BuildProfile([]HistoryEntry{entry(a), entry(b), entry(a)})

	// The context boost follows the video id, not the position, so the
	// older replay of a (idx 2) is boosted as well.
	want := 3.0 * ((math.Pow(0.95, 0) * (1 + math.Log(2)) * 2.5) +
		(math.Pow(0.95, 1) * 1.0 * 2.5) +
		(math.Pow(0.95, 2) * (1 + math.Log(2)) * 2.5))

	if got := p.Weight(CategoryKey("sports")); !approxEqual(got, want) {
		t.Errorf("Category(sports) = %v, want %v", got, want)
	}

	wantChannel := want * ChannelWeight / CategoryWeight
	if got := p.Weight(ChannelKey(1)); !approxEqual(got, wantChannel) {
		t.Errorf("Channel(1) = %v, want %v", got, wantChannel)
	}
}

func TestBuildProfile_ContextBoostFollowsVideoID(t *testing.T) {
	x := &Video{ID: 1, ChannelID: 5}
	y := &Video{ID: 2, ChannelID: 6}
	z := &Video{ID: 3, ChannelID: 7}

	// x is in the context set via idx 0, so its replay at idx 3 is boosted too.
	p := BuildProfile([]HistoryEntry{entry(x), entry(y), entry(z), entry(x)})

	replay := 1 + math.Log(2)
	want := ChannelWeight * (replay*ContextBoost + math.Pow(Decay, 3)*replay*ContextBoost)
	if got := p.Weight(ChannelKey(5)); !approxEqual(got, want) {
		t.Errorf("Channel(5) = %v, want %v", got, want)
	}

	// z sits outside the first two positions and gets no boost.
	if got, want := p.Weight(ChannelKey(7)), ChannelWeight*math.Pow(Decay, 2); !approxEqual(got, want) {
		t.Errorf("Channel(7) = %v, want %v", got, want)
	}
}

func TestBuildProfile_ReplayMonotonicity(t *testing.T) {
	x := &Video{ID: 1, ChannelID: 5}
	filler := &Video{ID: 2, ChannelID: 9}
	other := &Video{ID: 3, ChannelID: 11}

	tests := []struct {
		name  string
		once  []HistoryEntry
		twice []HistoryEntry
	}{
		{
			name:  "replay inside context window",
			once:  []HistoryEntry{entry(x), entry(filler)},
			twice: []HistoryEntry{entry(x), entry(x)},
		},
		{
			name:  "replay outside context window",
			once:  []HistoryEntry{entry(filler), entry(other), entry(x), entry(filler)},
			twice: []HistoryEntry{entry(filler), entry(other), entry(x), entry(x)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := BuildProfile(tt.once).Weight(ChannelKey(5))
			twice := BuildProfile(tt.twice).Weight(ChannelKey(5))
			if !(twice > once) {
				t.Errorf("Channel(5) watched twice = %v, want > once = %v", twice, once)
			}
		})
	}
}

func TestBuildProfile_UnresolvedStillCounts(t *testing.T) {
	b := &Video{ID: 2, Category: "news", ChannelID: 4}

	t.Run("unresolved event occupies the context window", func(t *testing.T) {
		// The deleted video takes positions 0 and 1, pushing b out of context.
		p := BuildProfile([]HistoryEntry{missing(99), missing(98), entry(b)})
		want := CategoryWeight * math.Pow(Decay, 2)
		if got := p.Weight(CategoryKey("news")); !approxEqual(got, want) {
			t.Errorf("Category(news) = %v, want %v", got, want)
		}
	})

	t.Run("unresolved replays do not leak into other videos", func(t *testing.T) {
		p := BuildProfile([]HistoryEntry{missing(99), entry(b), missing(99)})
		want := CategoryWeight * Decay * ContextBoost
		if got := p.Weight(CategoryKey("news")); !approxEqual(got, want) {
			t.Errorf("Category(news) = %v, want %v", got, want)
		}
		if p.Len() != 2 {
			t.Errorf("Len() = %d, want 2", p.Len())
		}
	})
}

func TestBuildProfile_Tags(t *testing.T) {
	v := &Video{ID: 1, ChannelID: 3, Tags: []string{"Rock", " rock ", "", "Live"}}
	p := BuildProfile([]HistoryEntry{entry(v)})

	w := ContextBoost
	tests := []struct {
		key  FeatureKey
		want float64
	}{
		{key: TagKey("rock"), want: TagWeight * w},
		{key: TagKey("live"), want: TagWeight * w},
		{key: TagKey("Rock"), want: 0},
		{key: TagKey(""), want: 0},
		{key: ChannelKey(3), want: ChannelWeight * w},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			if got := p.Weight(tt.key); got != tt.want {
				t.Errorf("Weight(%s) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestBuildProfile_NamespacesDoNotCollide(t *testing.T) {
	v := &Video{ID: 1, Category: "rock", Tags: []string{"rock"}, ChannelID: 3}
	p := BuildProfile([]HistoryEntry{entry(v)})

	if got := p.Weight(CategoryKey("rock")); got != CategoryWeight*ContextBoost {
		t.Errorf("Category(rock) = %v, want %v", got, CategoryWeight*ContextBoost)
	}
	if got := p.Weight(TagKey("rock")); got != TagWeight*ContextBoost {
		t.Errorf("Tag(rock) = %v, want %v", got, TagWeight*ContextBoost)
	}
}

func TestBuildProfile_Deterministic(t *testing.T) {
	videos := []*Video{
		{ID: 1, Category: "music", Tags: []string{"jazz", "live"}, ChannelID: 2},
		{ID: 2, Category: "gaming", Tags: []string{"speedrun"}, ChannelID: 3},
		{ID: 3, Tags: []string{"jazz"}, ChannelID: 2},
	}
	history := make([]HistoryEntry, 0, 50)
	for i := 0; i < 50; i++ {
		if i%7 == 3 {
			history = append(history, missing(100+i))
			continue
		}
		history = append(history, entry(videos[i%len(videos)]))
	}

	first := BuildProfile(history).Features()
	_ = BuildProfile([]HistoryEntry{entry(videos[1])})
	second := BuildProfile(history).Features()

	if len(first) != len(second) {
		t.Fatalf("feature count = %d then %d", len(first), len(second))
	}
	for k, w := range first {
		if math.Float64bits(second[k]) != math.Float64bits(w) {
			t.Errorf("Weight(%s) = %v then %v, want bitwise equal", k, w, second[k])
		}
	}
}

func TestEventWeight(t *testing.T) {
	tests := []struct {
		name      string
		idx       int
		replays   int
		inContext bool
		want      float64
	}{
		{name: "most recent single view", idx: 0, replays: 1, inContext: true, want: 2.5},
		{name: "old single view", idx: 3, replays: 1, inContext: false, want: math.Pow(0.95, 3)},
		{name: "replayed out of context", idx: 2, replays: 3, inContext: false, want: math.Pow(0.95, 2) * (1 + math.Log(3))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eventWeight(tt.idx, tt.replays, tt.inContext); math.Abs(got-tt.want) > 1e-15 {
				t.Errorf("eventWeight() = %v, want %v", got, tt.want)
			}
		})
	}
}
