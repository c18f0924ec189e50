// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tomtom215/vidfeed/internal/cache"
	"github.com/tomtom215/vidfeed/internal/metrics"
	"github.com/tomtom215/vidfeed/internal/recommend"
)

const (
	tokenCacheSize = 4096
	tokenCacheTTL  = time.Minute
)

var (
	// ErrInvalidCredentials is returned for a malformed, badly signed or
	// non-Bearer Authorization header.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrExpiredCredentials is returned when the token has expired.
	ErrExpiredCredentials = errors.New("credentials expired")
)

// ViewerAuthenticator resolves the optional bearer token of a request into
// a recommend.Viewer. A request without credentials is anonymous, not an error.
//
// Verified tokens are remembered for up to a minute so repeat requests skip
// the HMAC check. A remembered token is never honored past its exp claim.
type ViewerAuthenticator struct {
	manager *JWTManager
	tokens  *cache.LRU[string, verifiedToken]
}

// verifiedToken is what a successful validation leaves in the cache.
type verifiedToken struct {
	viewerID  int
	expiresAt time.Time
}

// NewViewerAuthenticator creates an authenticator. A nil manager treats every
// request as anonymous, which is how the server runs without JWT_SECRET.
func NewViewerAuthenticator(manager *JWTManager) *ViewerAuthenticator {
	return &ViewerAuthenticator{
		manager: manager,
		tokens:  cache.NewLRU[string, verifiedToken](tokenCacheSize, tokenCacheTTL),
	}
}

// Authenticate returns the viewer for r.
func (a *ViewerAuthenticator) Authenticate(r *http.Request) (recommend.Viewer, error) {
	header := r.Header.Get("Authorization")
	if header == "" || a.manager == nil {
		recordAttempt(outcomeAnonymous)
		return recommend.Viewer{}, nil
	}

	tokenStr, ok := bearerToken(header)
	if !ok {
		recordAttempt(outcomeInvalid)
		return recommend.Viewer{}, ErrInvalidCredentials
	}

	if viewer, ok := a.cachedViewer(tokenStr); ok {
		recordAttempt(outcomeAuthenticated)
		return viewer, nil
	}

	claims, err := a.manager.ValidateToken(tokenStr)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			recordAttempt(outcomeExpired)
			return recommend.Viewer{}, ErrExpiredCredentials
		}
		recordAttempt(outcomeInvalid)
		return recommend.Viewer{}, ErrInvalidCredentials
	}
	if claims.ViewerID <= 0 {
		recordAttempt(outcomeInvalid)
		return recommend.Viewer{}, ErrInvalidCredentials
	}

	if claims.ExpiresAt != nil {
		a.tokens.Add(tokenStr, verifiedToken{viewerID: claims.ViewerID, expiresAt: claims.ExpiresAt.Time})
	}

	recordAttempt(outcomeAuthenticated)
	return recommend.Viewer{ID: claims.ViewerID, Authenticated: true}, nil
}

// cachedViewer returns the viewer of a previously verified token. An entry
// whose exp has passed is dropped so the caller revalidates and reports it.
func (a *ViewerAuthenticator) cachedViewer(token string) (recommend.Viewer, bool) {
	entry, ok := a.tokens.Get(token)
	if ok && !time.Now().Before(entry.expiresAt) {
		a.tokens.Remove(token)
		ok = false
	}
	metrics.RecordCacheLookup("tokens", ok)
	if !ok {
		return recommend.Viewer{}, false
	}
	return recommend.Viewer{ID: entry.viewerID, Authenticated: true}, true
}

// bearerToken extracts the token from an "Authorization: Bearer <token>" value.
func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
