// Vidfeed - Personalized Video Feed Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vidfeed

/*
Package supervisor runs Vidfeed's long-lived services under a suture v4 tree.

	vidfeed (root)
	├── data-layer
	│   └── duckdb-checkpoint
	└── api-layer
	    └── http-server

Services that return an error are restarted with suture's failure decay and
backoff. Supervisor events are logged through sutureslog into zerolog via
logging.NewSlogLogger.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewCheckpointService(db, 5*time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(srv, 10*time.Second, logger))
	errCh := tree.ServeBackground(ctx)
*/
package supervisor
