package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/recordkit/pkg/logger"
)

type config struct {
	addr            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	idleTimeout     time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger
}

// Server runs an http.Server until its context ends or the process receives
// SIGINT or SIGTERM, then shuts it down gracefully.
type Server struct {
	cfg   config
	mu    sync.Mutex
	srv   *http.Server
	addr  net.Addr
	ready chan struct{}
	once  sync.Once
}

// New returns a configured Server.
func New(opts ...Option) *Server {
	cfg := config{
		addr:            ":8080",
		readTimeout:     30 * time.Second,
		writeTimeout:    30 * time.Second,
		idleTimeout:     120 * time.Second,
		shutdownTimeout: 5 * time.Second,
		logger:          logger.Discard(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Server{cfg: cfg, ready: make(chan struct{})}
}

// Ready is closed once the server is listening.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr returns the bound address, or nil before the server is listening.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run serves handler and blocks until shutdown. A listen failure is wrapped
// with ErrStart; a clean shutdown returns nil.
func (s *Server) Run(ctx context.Context, handler http.Handler) error {
	if handler == nil {
		handler = http.NotFoundHandler()
	}

	base := context.WithoutCancel(ctx)

	s.mu.Lock()
	if s.srv != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, ErrAlreadyRunning)
	}
	ln, err := net.Listen("tcp", s.cfg.addr)
	if err != nil {
		s.mu.Unlock()
		return errors.Join(ErrStart, err)
	}
	srv := &http.Server{
		Handler:      handler,
		ReadTimeout:  s.cfg.readTimeout,
		WriteTimeout: s.cfg.writeTimeout,
		IdleTimeout:  s.cfg.idleTimeout,
		BaseContext:  func(net.Listener) context.Context { return base },
	}
	s.srv = srv
	s.addr = ln.Addr()
	s.mu.Unlock()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	s.cfg.logger.InfoContext(ctx, "http server started", slog.String("addr", ln.Addr().String()))
	close(s.ready)

	var runErr error
	select {
	case <-ctx.Done():
		runErr = s.Shutdown(context.WithoutCancel(ctx))
		if serveErr := <-errCh; runErr == nil {
			runErr = serveErr
		}
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		if errors.Is(runErr, ErrShutdown) {
			return runErr
		}
		return errors.Join(ErrStart, runErr)
	}
	return nil
}

// Shutdown stops a running server. Repeated calls are no-ops.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	var err error
	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.cfg.shutdownTimeout)
		defer cancel()
		err = srv.Shutdown(ctx)
		s.cfg.logger.InfoContext(ctx, "http server stopped", logger.Error(err))
	})
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}
