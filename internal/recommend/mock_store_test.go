// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package recommend

import (
	"context"
	"sort"
	"sync"
)

// mockStore is an in-memory Store for testing.
type mockStore struct {
	mu       sync.Mutex
	videos   map[int]Video
	channels map[int]Channel
	// events per viewer, most recent first
	events   map[int][]WatchEvent

	eventsErr   error
	resolveErr  error
	publicErr   error
	visibleErr  error
	channelErr  error
	channelVErr error

	resolveCalls int
}

func newMockStore() *mockStore {
	return &mockStore{
		videos:   make(map[int]Video),
		channels: make(map[int]Channel),
		events:   make(map[int][]WatchEvent),
	}
}

func (m *mockStore) addVideo(v Video) {
	m.videos[v.ID] = v
	if _, ok := m.channels[v.ChannelID]; !ok {
		m.channels[v.ChannelID] = Channel{ID: v.ChannelID, Name: "channel"}
	}
}

// watch records a view as the newest event for viewerID.
func (m *mockStore) watch(viewerID, videoID int) {
	ev := WatchEvent{ViewerID: viewerID, VideoID: videoID}
	m.events[viewerID] = append([]WatchEvent{ev}, m.events[viewerID]...)
}

func (m *mockStore) sortedVideos(keep func(Video) bool) []Video {
	var out []Video
	for _, v := range m.videos {
		if keep(v) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *mockStore) RecentWatchEvents(_ context.Context, viewerID, limit int) ([]WatchEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.eventsErr != nil {
		return nil, m.eventsErr
	}
	events := m.events[viewerID]
	if len(events) > limit {
		events = events[:limit]
	}
	return append([]WatchEvent(nil), events...), nil
}

func (m *mockStore) VisiblePublicVideos(_ context.Context, exclude map[int]struct{}) ([]Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publicErr != nil {
		return nil, m.publicErr
	}
	return m.sortedVideos(func(v Video) bool {
		_, skip := exclude[v.ID]
		return v.IsPublic && !skip
	}), nil
}

func (m *mockStore) ResolveVideo(_ context.Context, id int) (*Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolveCalls++
	if m.resolveErr != nil {
		return nil, m.resolveErr
	}
	v, ok := m.videos[id]
	if !ok {
		return nil, ErrVideoNotFound
	}
	return &v, nil
}

func (m *mockStore) RecentPublicVideosForChannel(_ context.Context, channelID, limit int) ([]Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.channelVErr != nil {
		return nil, m.channelVErr
	}
	out := m.sortedVideos(func(v Video) bool { return v.IsPublic && v.ChannelID == channelID })
	sort.SliceStable(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockStore) Channel(_ context.Context, id int) (*Channel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.channelErr != nil {
		return nil, m.channelErr
	}
	c, ok := m.channels[id]
	if !ok {
		return nil, ErrChannelNotFound
	}
	return &c, nil
}

func (m *mockStore) VisibleVideos(_ context.Context, viewerID int) ([]Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.visibleErr != nil {
		return nil, m.visibleErr
	}
	return m.sortedVideos(func(v Video) bool { return v.VisibleTo(viewerID) }), nil
}

// fixedRandom returns constant jitter and always picks the first remaining index.
type fixedRandom struct {
	f float64
}

func (r fixedRandom) Float64() float64 { return r.f }
func (r fixedRandom) Intn(int) int { return 0 }
