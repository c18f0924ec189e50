// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vidfeed/internal/auth"
	"github.com/tomtom215/vidfeed/internal/config"
	"github.com/tomtom215/vidfeed/internal/database"
	"github.com/tomtom215/vidfeed/internal/models"
	"github.com/tomtom215/vidfeed/internal/recommend"
)

const testSecret = "api_test_secret_that_is_at_least_32_chars"

// fakeFeeds records the arguments it was called with.
type fakeFeeds struct {
	mu        sync.Mutex
	feed      recommend.Feed
	upNext    []recommend.ScoredCandidate
	upNextErr error

	viewer      recommend.Viewer
	videoID     int
	limit       int
	hadDeadline bool
}

func (f *fakeFeeds) Compose(ctx context.Context, viewer recommend.Viewer) recommend.Feed {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.viewer = viewer
	_, f.hadDeadline = ctx.Deadline()
	return f.feed
}

func (f *fakeFeeds) UpNext(ctx context.Context, viewer recommend.Viewer, videoID, limit int) ([]recommend.ScoredCandidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.viewer = viewer
	f.videoID = videoID
	f.limit = limit
	_, f.hadDeadline = ctx.Deadline()
	return f.upNext, f.upNextErr
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type fakeBreaker string

func (b fakeBreaker) State() string { return string(b) }

func testConfig() *config.Config {
	return &config.Config{
		Feed: config.FeedConfig{
			UpNextSize:     5,
			UpNextMax:      20,
			ComposeTimeout: 2 * time.Second,
		},
		Security: config.SecurityConfig{
			JWTSecret:       testSecret,
			RateLimitReqs:   1000,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
	}
}

func coldFeed() recommend.Feed {
	return recommend.Feed{
		State:         recommend.FeedCold,
		Latest:        []recommend.Video{{ID: 2, Title: "b", IsPublic: true}},
		Trending:      []recommend.Video{},
		ForYou:        []recommend.ScoredCandidate{},
		ChannelVideos: []recommend.Video{},
	}
}

// newTestServer builds the full router around feeds with JWT verification enabled.
func newTestServer(t *testing.T, feeds FeedService, db Pinger, breaker BreakerStater, cfg *config.Config) (http.Handler, *auth.JWTManager) {
	t.Helper()
	manager, err := auth.NewJWTManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	handler := NewHandler(feeds, db, breaker, cfg, "test")
	router := NewRouter(handler, cfg, auth.NewViewerAuthenticator(manager))
	return router.SetupChi(), manager
}

type envelope[T any] struct {
	Status string           `json:"status"`
	Data   T                `json:"data"`
	Error  *models.APIError `json:"error"`
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("Unmarshal(%s) error = %v", rec.Body.String(), err)
	}
	return env
}

func get(h http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestFeed(t *testing.T) {
	feeds := &fakeFeeds{feed: coldFeed()}
	h, manager := newTestServer(t, feeds, fakePinger{}, fakeBreaker("closed"), testConfig())

	token, err := manager.GenerateToken(42)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name         string
		token        string
		wantStatus   int
		wantViewer   recommend.Viewer
		wantViewerID int
	}{
		{name: "anonymous", wantStatus: http.StatusOK, wantViewer: recommend.Viewer{}},
		{name: "authenticated", token: token, wantStatus: http.StatusOK, wantViewer: recommend.Viewer{ID: 42, Authenticated: true}, wantViewerID: 42},
		{name: "bad token", token: "garbage", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feeds.viewer = recommend.Viewer{ID: -1}
			rec := get(h, "/api/v1/feed", tt.token)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				if env := decode[any](t, rec); env.Error == nil || env.Error.Code != models.ErrCodeAuthentication {
					t.Errorf("error = %+v, want AUTHENTICATION_ERROR", env.Error)
				}
				return
			}

			if feeds.viewer != tt.wantViewer {
				t.Errorf("viewer = %+v, want %+v", feeds.viewer, tt.wantViewer)
			}
			if !feeds.hadDeadline {
				t.Error("Compose context had no deadline")
			}

			env := decode[models.FeedResponse](t, rec)
			if env.Status != models.StatusSuccess {
				t.Errorf("status = %q, want success", env.Status)
			}
			if env.Data.State != recommend.FeedCold || len(env.Data.Latest) != 1 {
				t.Errorf("data = %+v, want cold feed with one latest", env.Data)
			}
			if env.Data.ViewerID != tt.wantViewerID {
				t.Errorf("viewer_id = %d, want %d", env.Data.ViewerID, tt.wantViewerID)
			}
			if cc := rec.Header().Get("Cache-Control"); cc != "private, no-store" {
				t.Errorf("Cache-Control = %q, want private, no-store", cc)
			}
		})
	}
}

func TestUpNext(t *testing.T) {
	picks := []recommend.ScoredCandidate{{Video: recommend.Video{ID: 9}, Score: 3.5}}

	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
		wantCode   string
		wantLimit  int
	}{
		{name: "default limit", path: "/api/v1/videos/7/up-next", wantStatus: http.StatusOK, wantLimit: 5},
		{name: "explicit limit", path: "/api/v1/videos/7/up-next?limit=20", wantStatus: http.StatusOK, wantLimit: 20},
		{name: "limit too large", path: "/api/v1/videos/7/up-next?limit=21", wantStatus: http.StatusBadRequest, wantCode: models.ErrCodeValidation},
		{name: "limit not a number", path: "/api/v1/videos/7/up-next?limit=x", wantStatus: http.StatusBadRequest, wantCode: models.ErrCodeValidation},
		{name: "bad video id", path: "/api/v1/videos/abc/up-next", wantStatus: http.StatusBadRequest, wantCode: models.ErrCodeValidation},
		{name: "not found", path: "/api/v1/videos/7/up-next", err: fmt.Errorf("resolve video 7: %w", recommend.ErrVideoNotFound), wantStatus: http.StatusNotFound, wantCode: models.ErrCodeNotFound},
		{name: "private video", path: "/api/v1/videos/7/up-next", err: recommend.ErrVideoNotFound, wantStatus: http.StatusNotFound, wantCode: models.ErrCodeNotFound},
		{name: "circuit open", path: "/api/v1/videos/7/up-next", err: fmt.Errorf("%w: boom", database.ErrCircuitOpen), wantStatus: http.StatusServiceUnavailable, wantCode: models.ErrCodeUnavailable},
		{name: "storage error", path: "/api/v1/videos/7/up-next", err: errors.New("io error"), wantStatus: http.StatusServiceUnavailable, wantCode: models.ErrCodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feeds := &fakeFeeds{upNext: picks, upNextErr: tt.err}
			h, _ := newTestServer(t, feeds, fakePinger{}, fakeBreaker("closed"), testConfig())

			rec := get(h, tt.path, "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantCode != "" {
				env := decode[any](t, rec)
				if env.Error == nil || env.Error.Code != tt.wantCode {
					t.Errorf("error = %+v, want code %s", env.Error, tt.wantCode)
				}
				return
			}

			if feeds.videoID != 7 || feeds.limit != tt.wantLimit {
				t.Errorf("UpNext(videoID=%d, limit=%d), want (7, %d)", feeds.videoID, feeds.limit, tt.wantLimit)
			}
			env := decode[models.UpNextResponse](t, rec)
			if env.Data.VideoID != 7 || len(env.Data.Videos) != 1 || env.Data.Videos[0].Video.ID != 9 {
				t.Errorf("data = %+v, want video 9 after 7", env.Data)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		breaker    BreakerStater
		wantStatus string
		wantDB     bool
	}{
		{name: "healthy", db: fakePinger{}, breaker: fakeBreaker("closed"), wantStatus: "healthy", wantDB: true},
		{name: "db down", db: fakePinger{err: errors.New("down")}, breaker: fakeBreaker("closed"), wantStatus: "degraded"},
		{name: "breaker open", db: fakePinger{}, breaker: fakeBreaker("open"), wantStatus: "degraded", wantDB: true},
		{name: "no db", db: nil, breaker: nil, wantStatus: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestServer(t, &fakeFeeds{}, tt.db, tt.breaker, testConfig())

			rec := get(h, "/api/v1/health", "")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			env := decode[models.HealthResponse](t, rec)
			if env.Data.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", env.Data.Status, tt.wantStatus)
			}
			if env.Data.DatabaseOK != tt.wantDB {
				t.Errorf("DatabaseOK = %v, want %v", env.Data.DatabaseOK, tt.wantDB)
			}
			if env.Data.Version != "test" {
				t.Errorf("Version = %q, want test", env.Data.Version)
			}
		})
	}
}

func TestHealthProbes(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		db         Pinger
		wantStatus int
	}{
		{name: "live without db", path: "/api/v1/health/live", db: fakePinger{err: errors.New("down")}, wantStatus: http.StatusOK},
		{name: "ready", path: "/api/v1/health/ready", db: fakePinger{}, wantStatus: http.StatusOK},
		{name: "not ready", path: "/api/v1/health/ready", db: fakePinger{err: errors.New("down")}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestServer(t, &fakeFeeds{}, tt.db, nil, testConfig())
			if rec := get(h, tt.path, ""); rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
