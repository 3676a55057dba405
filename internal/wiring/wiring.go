// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lunaria/internal/adapters/cas"
	_ "go.trai.ch/lunaria/internal/adapters/config"
	_ "go.trai.ch/lunaria/internal/adapters/fs"
	_ "go.trai.ch/lunaria/internal/adapters/git"
	_ "go.trai.ch/lunaria/internal/adapters/logger"
	_ "go.trai.ch/lunaria/internal/adapters/shell"
	_ "go.trai.ch/lunaria/internal/adapters/telemetry/progrock"
	// Register app and engine nodes.
	_ "go.trai.ch/lunaria/internal/app"
	_ "go.trai.ch/lunaria/internal/engine/scheduler"
	_ "go.trai.ch/lunaria/internal/engine/tracker"
)
