// Package app implements the application layer for memo.
package app

import (
	"go.trai.ch/memo/internal/adapters/config"
	"go.trai.ch/memo/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App     *App
	Logger  ports.Logger
	Loader  *config.Loader
	Watcher ports.Watcher
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger, loader *config.Loader, w ports.Watcher) *Components {
	return &Components{
		App:     app,
		Logger:  logger,
		Loader:  loader,
		Watcher: w,
	}
}
