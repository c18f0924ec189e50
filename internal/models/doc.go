// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

// Package models defines the HTTP response envelope and payload types
// served by the Vidfeed API.
//
// Every endpoint answers with an APIResponse. Successful responses carry the
// payload in Data; failures set Status to "error" and describe the problem in
// Error using one of the ErrCode constants:
//
//	VALIDATION_ERROR      - malformed query or path parameter (400)
//	AUTHENTICATION_ERROR  - bearer token present but invalid or expired (401)
//	NOT_FOUND             - video missing or not visible to the viewer (404)
//	METHOD_NOT_ALLOWED    - wrong HTTP method for the route (405)
//	RATE_LIMITED          - per-IP limit exceeded (429)
//	SERVICE_UNAVAILABLE   - storage unreachable (503)
//	INTERNAL_ERROR        - anything else (500)
//
// Feed payloads embed recommend.Feed directly, so the section names on the
// wire (latest, trending, for_you, featured_channel, channel_videos) are the
// JSON tags declared there.
//
// JSON encoding uses github.com/goccy/go-json.
package models
