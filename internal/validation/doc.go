// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

// Package validation provides request validation using go-playground/validator v10.
//
// A single validator instance is created lazily and shared; it caches struct
// metadata and is safe for concurrent use. Field names in error messages are
// taken from the `query` struct tag so clients see the parameter they sent:
//
//	type UpNextRequest struct {
//	    VideoID int `query:"video_id" validate:"min=1"`
//	    Limit   int `query:"limit" validate:"min=1,max=20"`
//	}
//
// Failures are returned as *RequestValidationError and rendered by the API
// layer through ToAPIError, which always uses the VALIDATION_ERROR code:
//
//	req, verr := validation.ParseUpNextRequest(chi.URLParam(r, "videoID"), r.URL.Query().Get("limit"), 5)
//	if verr != nil {
//	    respondError(w, http.StatusBadRequest, verr.ToAPIError())
//	    return
//	}
package validation
