// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package models

import (
	"time"

	"github.com/tomtom215/vidfeed/internal/recommend"
)

// Response status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error codes carried in APIError.Code.
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeAuthentication = "AUTHENTICATION_ERROR"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeMethod         = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited    = "RATE_LIMITED"
	ErrCodeUnavailable    = "SERVICE_UNAVAILABLE"
	ErrCodeInternal       = "INTERNAL_ERROR"
)

// APIResponse is the envelope returned by every HTTP endpoint.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"state": "warm", "latest": [...], ...},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 12}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "error": {"code": "NOT_FOUND", "message": "video not found"},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
// QueryTimeMS is the wall time spent composing the payload.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError describes a failed request. Details is optional and holds
// field-level context such as validation failures.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Success wraps data in a success envelope stamped with the current time.
func Success(data interface{}, queryTime time.Duration) APIResponse {
	return APIResponse{
		Status: StatusSuccess,
		Data:   data,
		Metadata: Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: queryTime.Milliseconds(),
		},
	}
}

// Failure wraps an error in an error envelope.
func Failure(apiErr *APIError) APIResponse {
	return APIResponse{
		Status:   StatusError,
		Metadata: Metadata{Timestamp: time.Now().UTC()},
		Error:    apiErr,
	}
}

// NewAPIError builds an APIError without details.
func NewAPIError(code, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// FeedResponse is the payload of GET /api/v1/feed.
type FeedResponse struct {
	recommend.Feed
	ViewerID int `json:"viewer_id,omitempty"`
}

// UpNextResponse is the payload of GET /api/v1/videos/{videoID}/up-next.
type UpNextResponse struct {
	VideoID int                         `json:"video_id"`
	Videos  []recommend.ScoredCandidate `json:"videos"`
}

// HealthResponse is the payload of GET /api/v1/health.
type HealthResponse struct {
	Status         string    `json:"status"`
	Version        string    `json:"version"`
	DatabaseOK     bool      `json:"database_ok"`
	CircuitBreaker string    `json:"circuit_breaker"`
	Uptime         float64   `json:"uptime_seconds"`
	CheckedAt      time.Time `json:"checked_at"`
}
