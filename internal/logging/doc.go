// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

// Package logging provides centralized zerolog-based structured logging for Vidfeed.
//
// # Overview
//
// The package provides:
//   - A global zerolog logger configured once at startup with Init
//   - JSON output for production and console output for development
//   - Request-scoped fields (request_id, correlation_id, viewer_id) via Ctx
//   - An slog adapter so the Suture supervisor logs through zerolog
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:     "info",
//	    Format:    "json",
//	    Timestamp: true,
//	})
//
//	logging.Info().Str("addr", addr).Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Feed degraded")
//
// Components that own a logger take a zerolog.Logger and scope it:
//
//	logger := logging.WithComponent("recommend")
//
// # Configuration
//
//	LOG_LEVEL   - trace, debug, info, warn, error (default: info)
//	LOG_FORMAT  - json, console (default: json)
//	LOG_CALLER  - include caller file:line (default: false)
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
//
// # Thread Safety
//
// The global logger is guarded by an RWMutex. Init may be called again to
// reconfigure it.
package logging
