package gles

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record.  Enabled reports false so callers skip
// formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger shared by gles and the packages built on
// it (shader, render, mobtex, scene).  By default nothing is logged.  Pass
// nil to restore the silent default.
//
// Levels:
//   - [slog.LevelDebug]: per-frame and per-upload details
//   - [slog.LevelInfo]: surface lifecycle transitions
//   - [slog.LevelError]: shader compile/link diagnostics, texture failures
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
