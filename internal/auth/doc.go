// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

// Package auth resolves the optional viewer identity of an API request.
//
// Login lives on the surrounding site, which issues HS256 JWTs carrying a
// viewer_id claim. This package only verifies those tokens:
//
//	Authorization header      Result
//	--------------------      ------
//	absent                    anonymous viewer (cold feed)
//	Bearer <valid token>      authenticated viewer
//	Bearer <expired token>    401 AUTHENTICATION_ERROR
//	anything else             401 AUTHENTICATION_ERROR
//
// When JWT_SECRET is unset the authenticator has no manager and every request
// is anonymous, whatever header it carries.
//
// Usage with chi:
//
//	manager, _ := auth.NewJWTManager(cfg.Security.JWTSecret, time.Hour)
//	r.Use(auth.Middleware(auth.NewViewerAuthenticator(manager)))
//
//	viewer := auth.ViewerFromContext(r.Context())
//
// Verified tokens are kept in an LRU (internal/cache) for up to a minute,
// bounded by their exp claim. Lookups are counted in
// cache_lookups_total{cache="tokens"} and resolutions in
// auth_viewer_resolutions_total{outcome}.
package auth
