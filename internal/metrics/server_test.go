package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	"github.com/goran-ethernal/SubstrateScanner/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestServer_Handler(t *testing.T) {
	ComponentHealthSet("rpc", true)
	APIRequestObserve(http.MethodGet, "/health", http.StatusOK, 3*time.Millisecond)

	srv := NewServer(&config.MetricsConfig{Enabled: true, Path: "/metrics"}, logger.NewNopLogger())
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `substratescanner_component_health{component="rpc"} 1`)
	require.Contains(t, string(body), `substratescanner_api_requests_total{method="GET",route="/health",status="200"}`)

	health, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer health.Body.Close()
	require.Equal(t, http.StatusOK, health.StatusCode)
}

func TestServer_StartStop(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		srv := NewServer(&config.MetricsConfig{Enabled: false}, logger.NewNopLogger())
		require.NoError(t, srv.Start(context.Background()))
		require.Nil(t, srv.Addr())
		require.NoError(t, srv.Stop(context.Background()))
	})

	t.Run("enabled", func(t *testing.T) {
		srv := NewServer(&config.MetricsConfig{
			Enabled:       true,
			ListenAddress: "127.0.0.1:0",
			Path:          "/metrics",
		}, logger.NewNopLogger())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		require.NoError(t, srv.Start(ctx))
		require.NotNil(t, srv.Addr())

		resp, err := http.Get("http://" + srv.Addr().String() + "/metrics")
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		require.NoError(t, srv.Stop(context.Background()))
	})
}
