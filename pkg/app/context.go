package app

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Context holds application-wide configuration and state
type Context struct {
	context.Context

	// Output preferences
	OutputFormat string
	Verbose      bool
	Quiet        bool

	// Out receives command output; defaults to stdout
	Out io.Writer

	// Logger receives diagnostics; discarded until ConfigureLogging is called
	Logger *slog.Logger

	// Progress reporting
	ProgressCallback func(message string, percent int)
}

// NewContext creates a new application context
func NewContext() *Context {
	return &Context{
		Context:      context.Background(),
		OutputFormat: "table",
		Out:          os.Stdout,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// ConfigureLogging points the logger at w using the verbosity settings.
// Quiet discards everything, verbose enables debug records.
func (c *Context) ConfigureLogging(w io.Writer) {
	if c.Quiet {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}

	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelDebug
	}
	c.Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithCancel creates a cancellable context
func (c *Context) WithCancel() (*Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(c.Context)
	newCtx := *c
	newCtx.Context = ctx
	return &newCtx, cancel
}

// SetProgress sets the progress callback function
func (c *Context) SetProgress(callback func(string, int)) {
	c.ProgressCallback = callback
}

// Progress reports progress if callback is set
func (c *Context) Progress(message string, percent int) {
	if c.ProgressCallback != nil {
		c.ProgressCallback(message, percent)
	}
}

// Log records a debug message, shown with verbose output
func (c *Context) Log(message string, args ...any) {
	c.Logger.Debug(message, args...)
}

// Error records an error message unless quiet
func (c *Context) Error(message string, args ...any) {
	c.Logger.Error(message, args...)
}
