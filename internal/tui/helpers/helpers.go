package helpers

import (
	"docmcp/internal/config"
	"docmcp/internal/logging"
)

// UIContext carries environment information needed for creating UI models
type UIContext struct {
	Width  int
	Height int
	Config *config.Config
	Logger *logging.AppLogger
}

// NewUIContext creates a new UI context with the provided parameters
func NewUIContext(width, height int, config *config.Config, logger *logging.AppLogger) UIContext {
	return UIContext{
		Width:  width,
		Height: height,
		Config: config,
		Logger: logger,
	}
}

// HasValidDimensions checks if the context has valid window dimensions
func (ctx UIContext) HasValidDimensions() bool {
	return ctx.Width > 0 && ctx.Height > 0
}

// Title returns the server name for window headers.
func (ctx UIContext) Title() string {
	if ctx.Config == nil || ctx.Config.Name == "" {
		return config.DefaultName
	}
	return ctx.Config.Name
}
