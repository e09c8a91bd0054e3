package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/modkit/pkg/httpserver"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "unable to get free port")
	addr := l.Addr().String()
	require.NoError(t, l.Close(), "close listener")
	return addr
}

func waitForServer(t *testing.T, addr string) {
	t.Helper()
	var err error
	for range 50 {
		var resp *http.Response
		resp, err = http.Get("http://" + addr)
		if err == nil {
			require.NoError(t, resp.Body.Close())
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err, "server did not start")
}

func TestRunAndCancel(t *testing.T) {
	t.Parallel()
	addr := freeAddr(t)
	srv := httpserver.New(addr, httpserver.WithShutdownTimeout(100*time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) }))
	}()
	waitForServer(t, addr)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err, "run")
	case <-time.After(time.Second):
		require.Fail(t, "run did not finish")
	}
	require.NoError(t, srv.Shutdown(context.Background()), "second shutdown is a no-op")
}

func TestManualShutdown(t *testing.T) {
	t.Parallel()
	addr := freeAddr(t)
	srv := httpserver.New(addr)

	done := make(chan error, 1)
	go func() { done <- srv.Run(context.Background(), http.NotFoundHandler()) }()
	waitForServer(t, addr)

	require.NoError(t, srv.Shutdown(context.Background()))
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		require.Fail(t, "run did not finish")
	}

	err := srv.Run(context.Background(), http.NotFoundHandler())
	require.ErrorIs(t, err, httpserver.ErrStart)
	assert.ErrorIs(t, err, httpserver.ErrAlreadyRunning)
}

func TestStartError(t *testing.T) {
	t.Parallel()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	srv := httpserver.New(l.Addr().String())
	err = srv.Run(context.Background(), http.NotFoundHandler())
	require.ErrorIs(t, err, httpserver.ErrStart)
}

func TestOptionPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { httpserver.WithReadTimeout(0) })
	assert.Panics(t, func() { httpserver.WithWriteTimeout(-time.Second) })
	assert.Panics(t, func() { httpserver.WithShutdownTimeout(0) })
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		checks []httpserver.Check
		code   int
		body   string
	}{
		{"liveness", nil, http.StatusOK, "ALIVE"},
		{"ready", []httpserver.Check{func(context.Context) error { return nil }}, http.StatusOK, "READY"},
		{"not ready", []httpserver.Check{
			func(context.Context) error { return nil },
			func(context.Context) error { return errors.New("store unreachable") },
		}, http.StatusServiceUnavailable, "NOT_READY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			httpserver.ReadinessHandler(nil, tt.checks...).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			assert.Equal(t, tt.code, rec.Code)
			body, err := io.ReadAll(rec.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(body))
		})
	}
}
