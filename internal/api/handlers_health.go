// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/vidfeed/internal/models"
)

// healthPingTimeout bounds the database ping in health checks.
const healthPingTimeout = 2 * time.Second

// Health handles GET /api/v1/health.
// It always answers 200; Status is "degraded" when the database is unreachable
// or the circuit breaker is not closed.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbOK := h.pingDB(r.Context())

	breakerState := "unknown"
	if h.breaker != nil {
		breakerState = h.breaker.State()
	}

	status := "healthy"
	if !dbOK || (h.breaker != nil && breakerState != "closed") {
		status = "degraded"
	}

	resp := models.Success(models.HealthResponse{
		Status:         status,
		Version:        h.version,
		DatabaseOK:     dbOK,
		CircuitBreaker: breakerState,
		Uptime:         time.Since(h.startTime).Seconds(),
		CheckedAt:      time.Now().UTC(),
	}, 0)
	respondJSON(w, http.StatusOK, &resp)
}

// HealthLive handles GET /api/v1/health/live.
// Returns 200 if the process is serving, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	resp := models.Success(map[string]string{"status": "alive"}, 0)
	respondJSON(w, http.StatusOK, &resp)
}

// HealthReady handles GET /api/v1/health/ready.
// Returns 503 until the database answers a ping.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if !h.pingDB(r.Context()) {
		respondError(w, r, http.StatusServiceUnavailable,
			models.NewAPIError(models.ErrCodeUnavailable, "database not ready"), nil)
		return
	}
	resp := models.Success(map[string]string{"status": "ready"}, 0)
	respondJSON(w, http.StatusOK, &resp)
}

func (h *Handler) pingDB(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()
	return h.db.Ping(ctx) == nil
}
