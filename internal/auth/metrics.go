// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeAnonymous     = "anonymous"
	outcomeAuthenticated = "authenticated"
	outcomeInvalid       = "invalid"
	outcomeExpired       = "expired"
)

// AuthAttempts counts viewer resolutions by outcome.
// Labels:
//   - outcome: "anonymous", "authenticated", "invalid", "expired"
var AuthAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "auth_viewer_resolutions_total",
		Help: "Total number of viewer identity resolutions by outcome",
	},
	[]string{"outcome"},
)

func recordAttempt(outcome string) {
	AuthAttempts.WithLabelValues(outcome).Inc()
}
