// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

/*
Package middleware provides HTTP middleware components for the API router.

All middleware use the chi signature func(http.Handler) http.Handler.

Key Components:

  - RequestID: X-Request-ID propagation plus request_id and correlation_id
    in the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge, labelled
    by chi route pattern
  - AccessLog: one structured log line per request, warn for 5xx or slow
    requests

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(middleware.PrometheusMetrics)

RequestID must run first so later middleware log with the request id.
*/
package middleware
