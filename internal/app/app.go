package app

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/nucleron/yaplc/internal/ctxlog"
	"github.com/nucleron/yaplc/internal/parser"
	"github.com/nucleron/yaplc/internal/project"
)

// App encapsulates the engine's dependencies and configuration.
type App struct {
	logger *slog.Logger
	config *Config
	parser *parser.Parser

	projectOnce sync.Once
	project     *project.Project
	projectErr  error
}

// NewApp creates an App with its own logger writing to logW.
func NewApp(logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		logger: logger,
		config: cfg,
		parser: parser.New(),
	}
}

// Context returns ctx carrying the app's logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Logger returns the app's logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Config returns the validated configuration.
func (a *App) Config() *Config {
	return a.config
}

// Parser returns the parser holding the last good template.
func (a *App) Parser() *parser.Parser {
	return a.parser
}
