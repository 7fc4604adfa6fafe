// Package cli implements the protonav command-line interface.
//
// This package provides commands for browsing schema documents interactively,
// printing a single navigation view, exporting the reference graph, serving
// the navigation HTTP API, and managing saved trails. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - browse: Interactive terminal browser with breadcrumbs
//   - show: Print the view reached by a path of definition keys
//   - graph: Export the reference graph as DOT, SVG or PNG
//   - serve: Run the navigation HTTP API
//   - sessions: Manage saved navigation trails
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/protonav/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Loaded 12 definitions (3ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability
// =============================================================================

// logHooks forwards navigation and session cache events to a logger at
// debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnDocument(rootKey string, definitions int) {
	h.logger.Debug("document loaded", "root", rootKey, "definitions", definitions)
}

func (h logHooks) OnDrill(from, to string, found bool) {
	h.logger.Debug("drill", "from", from, "to", to, "found", found)
}

func (h logHooks) OnJump(index, depth int, applied bool) {
	h.logger.Debug("jump", "index", index, "depth", depth, "applied", applied)
}

func (h logHooks) OnCacheHit(_ context.Context, key string) {
	h.logger.Debug("session cache hit", "key", key)
}

func (h logHooks) OnCacheMiss(_ context.Context, key string) {
	h.logger.Debug("session cache miss", "key", key)
}

func (h logHooks) OnCacheSet(_ context.Context, key string, size int) {
	h.logger.Debug("session cache set", "key", key, "bytes", size)
}

// registerHooks installs logHooks as the process-wide observability hooks.
func registerHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetNavigationHooks(h)
	observability.SetCacheHooks(h)
}
