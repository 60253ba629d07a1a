package regcompat

import (
	"context"
	"log/slog"
)

// Option configures registration behavior.
type Option func(*config) error

// config holds all registration configuration.
type config struct {
	allowOverwrite bool

	// logger is the structured logger for debug output. If nil, logging
	// is disabled (silent mode). Libraries should be silent by default;
	// users opt in via WithLogger.
	logger *slog.Logger
}

// WithAllowOverwrite permits re-registering an exact known version,
// replacing its compat map. Registry repair flows need this; by default a
// duplicate registration fails with ErrVersionExists.
func WithAllowOverwrite() Option {
	return func(c *config) error {
		c.allowOverwrite = true
		return nil
	}
}

// WithLogger sets a structured logger for registration diagnostics.
// If not set, logging is disabled.
//
// The library uses log/slog, so any backend can be plugged in via
// handlers.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// log returns the configured logger, or a no-op logger if none was set,
// so internal code can log without nil checks.
func (c *config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newConfig applies options over defaults.
func newConfig(opts ...Option) (*config, error) {
	c := &config{}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}
