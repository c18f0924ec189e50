// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

/*
Package config provides centralized configuration management for Vidfeed.

Configuration is loaded with Koanf v2 from three layers, later layers
overriding earlier ones:

  - Struct defaults (defaultConfig)
  - An optional YAML file (CONFIG_PATH, ./config.yaml, /etc/vidfeed/config.yaml)
  - Environment variables, mapped through an explicit table

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT
  - ENVIRONMENT: development, staging or production

Database:
  - DUCKDB_PATH (default: ./data/vidfeed.duckdb, ":memory:" allowed)
  - DUCKDB_MAX_MEMORY, DUCKDB_THREADS
  - SEED_DEMO_DATA: insert a demo catalog on startup
  - DUCKDB_CHECKPOINT_INTERVAL (default: 5m, 0 disables)

Feed:
  - FEED_HISTORY_WINDOW (default: 50)
  - FEED_SECTION_SIZE (default: 4)
  - FEED_CHANNEL_VIDEOS (default: 4)
  - FEED_UP_NEXT_SIZE, FEED_UP_NEXT_MAX (default: 5, 20)
  - FEED_SEED: 0 seeds jitter from the clock
  - FEED_COMPOSE_TIMEOUT (default: 5s)

Security:
  - JWT_SECRET: empty disables token verification, all viewers anonymous
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
  - CORS_ORIGINS: comma-separated

Logging:
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
*/
package config
