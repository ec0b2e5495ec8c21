package httpserver

import (
	"log/slog"
	"time"
)

// Option configures the server.
type Option func(*config)

// WithAddr sets the listen address. ":0" picks a free port; see Server.Addr.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: empty addr")
	}
	return func(c *config) { c.addr = addr }
}

func WithReadTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: read timeout must be > 0")
	}
	return func(c *config) { c.readTimeout = d }
}

func WithWriteTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: write timeout must be > 0")
	}
	return func(c *config) { c.writeTimeout = d }
}

func WithIdleTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: idle timeout must be > 0")
	}
	return func(c *config) { c.idleTimeout = d }
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: shutdown timeout must be > 0")
	}
	return func(c *config) { c.shutdownTimeout = d }
}

// WithLogger sets the logger. Nil keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
