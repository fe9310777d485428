package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// initLogging opens a JSON banner log under the XDG cache directory and
// returns a logger writing to it, adapted from nanostore/cmd/logging.go's
// split between a file-backed mainLogger and stdout-mirrored auxiliary
// loggers down to one merge-run logger, which also writes text records
// to stderr when verbose is set.
func initLogging(verbose bool) (*slog.Logger, error) {
	logDir := xdgCacheDir()
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, "dommerge.log")
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	var handler slog.Handler = slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: level})
	if verbose {
		handler = &multiHandler{handlers: []slog.Handler{
			handler,
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
		}}
	}

	logger := slog.New(handler).With("component", "dommerge")
	logger.Debug("logging initialized", "level", level.String(), "log_file", logPath)
	return logger, nil
}

func xdgCacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "dommerge")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "dommerge")
	}
	return filepath.Join(home, ".cache", "dommerge")
}

// multiHandler fans one record out to several slog.Handlers, grounded in
// nanostore/cmd/logging.go's multiHandler.
type multiHandler struct {
	handlers []slog.Handler
}

func (h *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, handler := range h.handlers {
		if err := handler.Handle(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (h *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		out[i] = handler.WithAttrs(attrs)
	}
	return &multiHandler{handlers: out}
}

func (h *multiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		out[i] = handler.WithGroup(name)
	}
	return &multiHandler{handlers: out}
}
