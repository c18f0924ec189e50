// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/vidfeed/internal/auth"
	"github.com/tomtom215/vidfeed/internal/database"
	"github.com/tomtom215/vidfeed/internal/logging"
	"github.com/tomtom215/vidfeed/internal/models"
	"github.com/tomtom215/vidfeed/internal/recommend"
	"github.com/tomtom215/vidfeed/internal/validation"
)

// Feed handles GET /api/v1/feed.
// Composition never fails; storage problems show up as a cold feed.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	viewer := auth.ViewerFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), h.composeTimeout())
	defer cancel()

	start := time.Now()
	feed := h.feeds.Compose(ctx, viewer)
	elapsed := time.Since(start)

	logging.Ctx(r.Context()).Debug().
		Str("state", string(feed.State)).
		Int("for_you", len(feed.ForYou)).
		Dur("elapsed", elapsed).
		Msg("Feed composed")

	payload := models.FeedResponse{Feed: feed}
	if !viewer.Anonymous() {
		payload.ViewerID = viewer.ID
	}

	resp := models.Success(payload, elapsed)
	respondJSON(w, http.StatusOK, &resp)
}

// UpNext handles GET /api/v1/videos/{videoID}/up-next?limit=N.
func (h *Handler) UpNext(w http.ResponseWriter, r *http.Request) {
	req, verr := validation.ParseUpNextRequest(
		chi.URLParam(r, "videoID"),
		r.URL.Query().Get("limit"),
		h.defaultUpNextLimit(),
	)
	if verr != nil {
		respondError(w, r, http.StatusBadRequest, verr.ToAPIError(), nil)
		return
	}

	viewer := auth.ViewerFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), h.composeTimeout())
	defer cancel()

	start := time.Now()
	videos, err := h.feeds.UpNext(ctx, viewer, req.VideoID, req.Limit)
	switch {
	case errors.Is(err, recommend.ErrVideoNotFound):
		respondError(w, r, http.StatusNotFound, models.NewAPIError(models.ErrCodeNotFound, "video not found"), nil)
		return
	case errors.Is(err, database.ErrCircuitOpen):
		respondError(w, r, http.StatusServiceUnavailable,
			models.NewAPIError(models.ErrCodeUnavailable, "storage temporarily unavailable"), err)
		return
	case err != nil:
		respondError(w, r, http.StatusServiceUnavailable,
			models.NewAPIError(models.ErrCodeUnavailable, "failed to load video"), err)
		return
	}

	resp := models.Success(models.UpNextResponse{VideoID: req.VideoID, Videos: videos}, time.Since(start))
	respondJSON(w, http.StatusOK, &resp)
}
