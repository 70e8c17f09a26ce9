package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/authtemplate/authshell/internal/backend"
	"github.com/authtemplate/authshell/internal/config"
	"github.com/authtemplate/authshell/internal/trampoline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServer(t *testing.T, port int) *Server {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: port},
		Backend: config.BackendConfig{
			BaseURL:         "http://127.0.0.1:0",
			Provider:        "authentik",
			ExchangeTimeout: time.Second,
			RoleTimeout:     time.Second,
		},
		DeepLink: config.DeepLinkConfig{Scheme: config.DefaultScheme},
	}
	h := trampoline.NewHandler(cfg, backend.NewClient(&cfg.Backend))
	return NewServer(&cfg.Server, h)
}

func TestHandlerRoutes(t *testing.T) {
	srv := testServer(t, 0)
	handler := srv.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The callback route is registered; without query parameters it
	// renders the missing-response failure page.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, trampoline.CallbackPath, nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), trampoline.StatusMissingResponse)
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestStartAndGracefulShutdown(t *testing.T) {
	port := freePort(t)
	srv := testServer(t, port)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	url := fmt.Sprintf("http://127.0.0.1:%d/healthz", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}
