// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

/*
Package main is the entry point for the Vidfeed server.

Vidfeed composes the home feed and up-next list of a video site from a
DuckDB catalog of channels, videos and watch events. Anonymous visitors get
a cold feed (latest, trending and a random public sample); viewers with a
watch history get a warm feed with a personalized for_you section and a
featured channel.

# Application Architecture

The server runs under Suture v4 process supervision:

	RootSupervisor ("vidfeed")
	├── DataSupervisor ("data-layer")
	│   └── Checkpoint service (DUCKDB_CHECKPOINT_INTERVAL > 0)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment
 2. Logging: zerolog with JSON or console output
 3. Database: DuckDB, optionally seeded with a demo catalog
 4. Feed: circuit-breaker store wrapper and feed composer
 5. Authentication: optional JWT verification of viewer tokens
 6. HTTP Server: Chi router with middleware stack
 7. Supervisor Tree: starts all services and waits for a signal

# Endpoints

	GET /api/v1/feed                           home feed
	GET /api/v1/videos/{videoID}/up-next       up-next list for a video
	GET /api/v1/health, /health/live, /ready   health probes
	GET /metrics                               Prometheus metrics

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
connections and drains in-flight requests for up to 10 seconds, the
checkpoint service flushes the WAL one last time and the database is closed.

# Example Usage

Development with the demo catalog and no token verification:

	export SEED_DEMO_DATA=true
	export LOG_FORMAT=console
	./vidfeed

Production:

	export DUCKDB_PATH=/data/vidfeed.duckdb
	export JWT_SECRET=$(openssl rand -base64 32)
	export ENVIRONMENT=production
	./vidfeed
*/
package main
