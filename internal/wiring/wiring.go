// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/same/internal/adapters/cache"
	_ "go.trai.ch/same/internal/adapters/config"
	_ "go.trai.ch/same/internal/adapters/fingerprint"
	_ "go.trai.ch/same/internal/adapters/linear"
	_ "go.trai.ch/same/internal/adapters/logger"
	_ "go.trai.ch/same/internal/adapters/process"
	_ "go.trai.ch/same/internal/adapters/vcs"
	_ "go.trai.ch/same/internal/adapters/watcher"
	// Register engine nodes.
	_ "go.trai.ch/same/internal/engine/affected"
	_ "go.trai.ch/same/internal/engine/scheduler"
	_ "go.trai.ch/same/internal/engine/targets"
	// Register the app node.
	_ "go.trai.ch/same/internal/app"
)
