// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vidfeed/internal/logging"
	"github.com/tomtom215/vidfeed/internal/models"
	"github.com/tomtom215/vidfeed/internal/recommend"
)

type contextKey string

const viewerContextKey contextKey = "viewer"

// ContextWithViewer returns a context carrying viewer.
func ContextWithViewer(ctx context.Context, viewer recommend.Viewer) context.Context {
	return context.WithValue(ctx, viewerContextKey, viewer)
}

// ViewerFromContext returns the viewer stored by Middleware, or the
// anonymous viewer when none is present.
func ViewerFromContext(ctx context.Context) recommend.Viewer {
	if v, ok := ctx.Value(viewerContextKey).(recommend.Viewer); ok {
		return v
	}
	return recommend.Viewer{}
}

// Middleware authenticates every request and stores the resulting viewer in
// the request context. Requests that present bad credentials are rejected
// with 401; requests without credentials pass through as anonymous.
func Middleware(a *ViewerAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			viewer, err := a.Authenticate(r)
			if err != nil {
				logging.Ctx(r.Context()).Debug().Err(err).Msg("Rejected viewer credentials")
				writeUnauthorized(w, err)
				return
			}

			ctx := ContextWithViewer(r.Context(), viewer)
			if !viewer.Anonymous() {
				ctx = logging.ContextWithViewerID(ctx, viewer.ID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	message := "invalid bearer token"
	if errors.Is(err, ErrExpiredCredentials) {
		message = "bearer token expired"
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="vidfeed"`)
	w.WriteHeader(http.StatusUnauthorized)

	resp := models.Failure(models.NewAPIError(models.ErrCodeAuthentication, message))
	if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
		logging.Error().Err(encErr).Msg("Failed to encode auth error response")
	}
}
