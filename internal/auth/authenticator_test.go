// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package auth

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/vidfeed/internal/metrics"
)

func TestAuthenticate_CachesVerifiedTokens(t *testing.T) {
	manager := newTestManager(t)
	token, err := manager.GenerateToken(7)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	a := NewViewerAuthenticator(manager)
	hits := metrics.CacheLookupsTotal.WithLabelValues("tokens", "hit")
	before := testutil.ToFloat64(hits)

	r := httptest.NewRequest("GET", "/api/v1/feed", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	if _, err := a.Authenticate(r); err != nil {
		t.Fatalf("first Authenticate() error = %v", err)
	}
	if a.tokens.Len() != 1 {
		t.Fatalf("cached tokens = %d, want 1", a.tokens.Len())
	}

	// A manager with another secret would reject the token, so success
	// here means the cached verification was used.
	other, err := NewJWTManager("another_secret_key_that_is_at_least_32_chars", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error = %v", err)
	}
	a.manager = other

	viewer, err := a.Authenticate(r)
	if err != nil {
		t.Fatalf("second Authenticate() error = %v", err)
	}
	if viewer.ID != 7 || !viewer.Authenticated {
		t.Errorf("viewer = %+v, want authenticated 7", viewer)
	}
	if got := testutil.ToFloat64(hits); got != before+1 {
		t.Errorf("token cache hits = %v, want %v", got, before+1)
	}
}

func TestAuthenticate_ExpiredCachedTokenRejected(t *testing.T) {
	expired := signClaims(t, &Claims{
		ViewerID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	a := NewViewerAuthenticator(newTestManager(t))
	a.tokens.Add(expired, verifiedToken{viewerID: 7, expiresAt: time.Now().Add(-time.Minute)})

	r := httptest.NewRequest("GET", "/api/v1/feed", nil)
	r.Header.Set("Authorization", "Bearer "+expired)

	viewer, err := a.Authenticate(r)
	if !errors.Is(err, ErrExpiredCredentials) {
		t.Errorf("Authenticate() error = %v, want %v", err, ErrExpiredCredentials)
	}
	if viewer.Authenticated {
		t.Errorf("viewer = %+v, want anonymous", viewer)
	}
	if a.tokens.Len() != 0 {
		t.Errorf("cached tokens = %d, want expired entry dropped", a.tokens.Len())
	}
}

func TestAuthenticate_RejectedTokensNotCached(t *testing.T) {
	a := NewViewerAuthenticator(newTestManager(t))

	r := httptest.NewRequest("GET", "/api/v1/feed", nil)
	r.Header.Set("Authorization", "Bearer not.a.token")

	if _, err := a.Authenticate(r); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Authenticate() error = %v, want %v", err, ErrInvalidCredentials)
	}
	if a.tokens.Len() != 0 {
		t.Errorf("cached tokens = %d, want 0", a.tokens.Len())
	}
}
