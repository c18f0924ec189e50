// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

/*
Package api provides the HTTP surface of Vidfeed using the Chi router.

Routes:

	GET /api/v1/feed                          home feed for the caller
	GET /api/v1/videos/{videoID}/up-next      videos to play after videoID (?limit=1..20)
	GET /api/v1/health                        status, DB ping, breaker state
	GET /api/v1/health/live                   liveness probe
	GET /api/v1/health/ready                  readiness probe (503 until DB answers)
	GET /metrics                              Prometheus exposition

The caller is identified by an optional "Authorization: Bearer <jwt>"
header (see package auth). Without it the feed is the cold feed.

Middleware stack (outermost first):

  - RequestID, RealIP, AccessLog, Recoverer
  - CORS (go-chi/cors) and gzip compression
  - per-IP rate limiting (go-chi/httprate) on feed routes
  - PrometheusMetrics
  - viewer authentication on feed routes

All responses use models.APIResponse and are encoded with goccy/go-json.
Feed composition never fails: storage errors degrade the feed to cold and
the request still answers 200.
*/
package api
