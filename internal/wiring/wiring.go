// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/gendocs/internal/adapters/cas"
	_ "go.trai.ch/gendocs/internal/adapters/config"
	_ "go.trai.ch/gendocs/internal/adapters/fs"
	_ "go.trai.ch/gendocs/internal/adapters/logger"
	_ "go.trai.ch/gendocs/internal/adapters/markdown"
	_ "go.trai.ch/gendocs/internal/adapters/source"
	_ "go.trai.ch/gendocs/internal/adapters/telemetry/progrock"
	_ "go.trai.ch/gendocs/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/gendocs/internal/app"
	_ "go.trai.ch/gendocs/internal/engine/generator"
)
