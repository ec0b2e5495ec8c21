package httpserver

import "time"

type Config struct {
	Addr            string        `env:"RECORDKIT_HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"RECORDKIT_HTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"RECORDKIT_HTTP_WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout     time.Duration `env:"RECORDKIT_HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"RECORDKIT_HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// NewFromConfig creates a Server from cfg. Zero values keep the defaults;
// opts are applied last.
func NewFromConfig(cfg Config, opts ...Option) *Server {
	all := make([]Option, 0, 5+len(opts))
	if cfg.Addr != "" {
		all = append(all, WithAddr(cfg.Addr))
	}
	if cfg.ReadTimeout > 0 {
		all = append(all, WithReadTimeout(cfg.ReadTimeout))
	}
	if cfg.WriteTimeout > 0 {
		all = append(all, WithWriteTimeout(cfg.WriteTimeout))
	}
	if cfg.IdleTimeout > 0 {
		all = append(all, WithIdleTimeout(cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout > 0 {
		all = append(all, WithShutdownTimeout(cfg.ShutdownTimeout))
	}
	return New(append(all, opts...)...)
}
