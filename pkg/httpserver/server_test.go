package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/recordkit/pkg/httpserver"
)

func startServer(t *testing.T, ctx context.Context, srv *httpserver.Server, h http.Handler) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, h) }()
	select {
	case <-srv.Ready():
	case err := <-done:
		t.Fatalf("server did not start: %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start in time")
	}
	return done
}

func waitDone(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop in time")
		return nil
	}
}

func TestServer_RunUntilCancelled(t *testing.T) {
	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"), httpserver.WithShutdownTimeout(200*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := startServer(t, ctx, srv, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	resp, err := http.Get("http://" + srv.Addr().String())
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)

	cancel()
	require.NoError(t, waitDone(t, done))
	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestServer_ManualShutdown(t *testing.T) {
	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"))
	done := startServer(t, context.Background(), srv, nil)

	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, waitDone(t, done))
	require.NoError(t, srv.Shutdown(context.Background()))
}

func TestServer_AlreadyRunning(t *testing.T) {
	srv := httpserver.New(httpserver.WithAddr("127.0.0.1:0"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := startServer(t, ctx, srv, nil)

	err := srv.Run(ctx, nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
	assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)

	cancel()
	require.NoError(t, waitDone(t, done))
}

func TestServer_StartError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	srv := httpserver.New(httpserver.WithAddr(ln.Addr().String()))
	err = srv.Run(context.Background(), nil)
	assert.ErrorIs(t, err, httpserver.ErrStart)
	assert.Nil(t, srv.Addr())
}

func TestShutdownBeforeRun(t *testing.T) {
	assert.NoError(t, httpserver.New().Shutdown(context.Background()))
}

func TestOptionPanics(t *testing.T) {
	assert.Panics(t, func() { httpserver.WithAddr("") })
	assert.Panics(t, func() { httpserver.WithReadTimeout(0) })
	assert.Panics(t, func() { httpserver.WithWriteTimeout(-time.Second) })
	assert.Panics(t, func() { httpserver.WithIdleTimeout(0) })
	assert.Panics(t, func() { httpserver.WithShutdownTimeout(0) })
	assert.NotPanics(t, func() { httpserver.WithLogger(nil) })
}

func TestNewFromConfig(t *testing.T) {
	srv := httpserver.NewFromConfig(httpserver.Config{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second})
	done := startServer(t, context.Background(), srv, nil)
	require.NotNil(t, srv.Addr())
	require.NoError(t, srv.Shutdown(context.Background()))
	require.NoError(t, waitDone(t, done))
}

func TestHealthCheckHandler(t *testing.T) {
	t.Run("liveness", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpserver.HealthCheckHandler(nil)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("readiness", func(t *testing.T) {
		ok := httpserver.Check{Name: "redis", Probe: func(context.Context) error { return nil }}
		bad := httpserver.Check{Name: "postgres", Probe: func(context.Context) error { return errors.New("down") }}

		rec := httptest.NewRecorder()
		httpserver.HealthCheckHandler(nil, ok)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		httpserver.HealthCheckHandler(nil, ok, bad)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "unavailable", body["status"])
		assert.Equal(t, map[string]any{"redis": "ok", "postgres": "failed"}, body["checks"])
	})
}
