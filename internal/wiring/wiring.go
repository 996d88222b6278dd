// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/envsync/internal/adapters/condaenv"
	_ "go.trai.ch/envsync/internal/adapters/config"
	_ "go.trai.ch/envsync/internal/adapters/fs"
	_ "go.trai.ch/envsync/internal/adapters/logger"
	_ "go.trai.ch/envsync/internal/adapters/shell"
	_ "go.trai.ch/envsync/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/envsync/internal/app"
	_ "go.trai.ch/envsync/internal/engine/detect"
)
