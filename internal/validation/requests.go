// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package validation

import (
	"fmt"
	"strconv"
)

// MaxUpNextLimit is the largest limit accepted by the up-next endpoint.
const MaxUpNextLimit = 20

// UpNextRequest holds the parameters of GET /api/v1/videos/{videoID}/up-next.
type UpNextRequest struct {
	VideoID int `query:"video_id" validate:"min=1"`
	Limit   int `query:"limit" validate:"min=1,max=20"`
}

// ParseUpNextRequest converts raw path and query values into a validated
// UpNextRequest. An empty limit falls back to defaultLimit.
func ParseUpNextRequest(rawVideoID, rawLimit string, defaultLimit int) (UpNextRequest, *RequestValidationError) {
	req := UpNextRequest{Limit: defaultLimit}

	id, err := strconv.Atoi(rawVideoID)
	if err != nil {
		return req, parseError("video_id", rawVideoID)
	}
	req.VideoID = id

	if rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			return req, parseError("limit", rawLimit)
		}
		req.Limit = limit
	}

	if verr := ValidateStruct(&req); verr != nil {
		return req, verr
	}
	return req, nil
}

func parseError(field, value string) *RequestValidationError {
	return &RequestValidationError{
		errors: []ValidationError{
			{
				field:   field,
				tag:     "numeric",
				value:   value,
				message: fmt.Sprintf("%s must be an integer", field),
			},
		},
	}
}
