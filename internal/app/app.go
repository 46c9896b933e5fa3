package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/grammargen/internal/config"
	"github.com/specialistvlad/grammargen/internal/ctxlog"
	"github.com/specialistvlad/grammargen/internal/executor"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	gen    executor.Generator
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. When a project
// config file is configured it is loaded and merged here; a failure to load
// it is a fatal startup error. An optional Generator can be injected,
// primarily for testing; by default the real external tool is located at
// run time.
func NewApp(outW io.Writer, appConfig *Config, gen ...executor.Generator) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	if appConfig.ConfigPath != "" {
		fileCfg, err := config.Load(ctx, appConfig.ConfigPath)
		if err != nil {
			// A failure to load config is a fatal startup error.
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		appConfig.applyFile(fileCfg)
		logger.Debug("Project file merged into configuration.", "path", appConfig.ConfigPath)
	}

	a := &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
	}
	if len(gen) > 0 {
		a.gen = gen[0]
	}
	return a
}

// Config returns the application's effective configuration. This is
// primarily for testing.
func (a *App) Config() *Config {
	return a.config
}
