// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

/*
Package services provides suture.Service wrappers for Vidfeed components.

Each wrapper implements suture.Service and fmt.Stringer:

	type Service interface {
	    Serve(ctx context.Context) error
	}

HTTP Server (HTTPServerService):
  - Wraps *http.Server, translating ListenAndServe into Serve
  - Graceful Shutdown with a bounded drain timeout on context cancel

DuckDB Checkpoint (CheckpointService):
  - Calls Checkpoint on a fixed interval so the WAL does not grow unbounded
  - Failures are logged and retried on the next tick; they never restart
    the service
*/
package services
