// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/vidfeed/internal/auth"
	"github.com/tomtom215/vidfeed/internal/config"
	"github.com/tomtom215/vidfeed/internal/middleware"
	"github.com/tomtom215/vidfeed/internal/models"
)

// Router wires handlers and middleware into a chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	viewerAuth    *auth.ViewerAuthenticator
}

// NewRouter creates a router. A nil viewerAuth serves every request anonymously.
func NewRouter(handler *Handler, cfg *config.Config, viewerAuth *auth.ViewerAuthenticator) *Router {
	var sec *config.SecurityConfig
	if cfg != nil {
		sec = &cfg.Security
	}
	if viewerAuth == nil {
		viewerAuth = auth.NewViewerAuthenticator(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFromSecurity(sec)),
		viewerAuth:    viewerAuth,
	}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(middleware.DefaultSlowRequestThreshold))
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, models.NewAPIError(models.ErrCodeNotFound, "route not found"), nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed,
			models.NewAPIError(models.ErrCodeMethod, "method not allowed"), nil)
	})

	// Health endpoints stay outside the rate limiter for probes
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	r.Group(func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(auth.Middleware(router.viewerAuth))

		r.Get("/api/v1/feed", router.handler.Feed)
		r.Get("/api/v1/videos/{videoID}/up-next", router.handler.UpNext)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
