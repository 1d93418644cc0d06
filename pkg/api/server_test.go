package api

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apimocks "github.com/goran-ethernal/SubstrateScanner/internal/api/mocks"
	"github.com/goran-ethernal/SubstrateScanner/internal/common"
	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	"github.com/goran-ethernal/SubstrateScanner/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Parallel()

	cfg := &config.APIConfig{
		Enabled:       true,
		ListenAddress: "localhost:8080",
		ReadTimeout:   common.NewDuration(5 * time.Second),
		WriteTimeout:  common.NewDuration(10 * time.Second),
		IdleTimeout:   common.NewDuration(60 * time.Second),
	}

	server := NewServer(cfg, apimocks.NewScanService(t), logger.NewNopLogger())

	require.NotNil(t, server.Handler())
	require.Equal(t, "localhost:8080", server.server.Addr)
	require.Equal(t, 5*time.Second, server.server.ReadTimeout)
	require.Equal(t, 10*time.Second, server.server.WriteTimeout)
	require.Equal(t, 60*time.Second, server.server.IdleTimeout)
}

func TestServer_CORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cors     *config.CORSConfig
		expected string
	}{
		{name: "disabled", cors: nil, expected: ""},
		{name: "allowed origin", cors: &config.CORSConfig{AllowedOrigins: []string{"https://scanner.example.com"}}, expected: "https://scanner.example.com"},
		{name: "other origin", cors: &config.CORSConfig{AllowedOrigins: []string{"https://other.example.com"}}, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &config.APIConfig{Enabled: true, CORS: tt.cors}
			h := NewServer(cfg, apimocks.NewScanService(t), logger.NewNopLogger()).Handler()

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set("Origin", "https://scanner.example.com")

			w := doRequestWith(h, req)
			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, tt.expected, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t)

	require.Equal(t, http.StatusNotFound, doRequest(h, http.MethodGet, "/api/v1/blocks", "").Code)
	require.Equal(t, http.StatusMethodNotAllowed, doRequest(h, http.MethodDelete, "/api/v1/scans", "").Code)
}

func TestServer_Swagger(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t)

	w := doRequest(h, http.MethodGet, "/swagger/doc.json", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "SubstrateScanner API")
	require.Contains(t, w.Body.String(), "/scans/{id}/events")
}

func TestServer_Start_Disabled(t *testing.T) {
	t.Parallel()

	server := NewServer(&config.APIConfig{Enabled: false}, apimocks.NewScanService(t), logger.NewNopLogger())

	done := make(chan error, 1)
	go func() {
		done <- server.Start(context.Background())
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Start() did not return when server is disabled")
	}
}

func TestServer_ServeAndShutdown(t *testing.T) {
	t.Parallel()

	cfg := &config.APIConfig{Enabled: true}
	cfg.ApplyDefaults()
	server := NewServer(cfg, apimocks.NewScanService(t), logger.NewNopLogger())

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- server.serve(ctx, listener)
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/health")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `"status":"ok"`)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(shutdownCtxTimeout + 5*time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_Start_ListenError(t *testing.T) {
	t.Parallel()

	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	cfg := &config.APIConfig{Enabled: true, ListenAddress: busy.Addr().String()}
	server := NewServer(cfg, apimocks.NewScanService(t), logger.NewNopLogger())

	err = server.Start(context.Background())
	require.ErrorContains(t, err, "failed to listen")
}
