package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/goran-ethernal/SubstrateScanner/internal/logger"
	"github.com/goran-ethernal/SubstrateScanner/pkg/api/docs"
	"github.com/goran-ethernal/SubstrateScanner/pkg/config"
)

const shutdownCtxTimeout = 10 * time.Second

// Server represents the API HTTP server.
type Server struct {
	config  *config.APIConfig
	handler http.Handler
	server  *http.Server
	log     *logger.Logger
}

// NewServer creates a new API server.
func NewServer(cfg *config.APIConfig, scans ScanService, log *logger.Logger) *Server {
	handler := NewHandler(scans, log)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /api/v1/chain/head", handler.GetChainHead)

	mux.HandleFunc("POST /api/v1/scans", handler.StartScan)
	mux.HandleFunc("GET /api/v1/scans", handler.ListScans)
	mux.HandleFunc("GET /api/v1/scans/{id}", handler.GetScan)
	mux.HandleFunc("GET /api/v1/scans/{id}/events", handler.GetEvents)
	mux.HandleFunc("GET /api/v1/scans/{id}/filters", handler.GetFilters)

	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
	))

	var h http.Handler = mux
	h = LoggingMiddleware(log)(h)

	if cfg.CORS != nil {
		h = CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.CORS.AllowCredentials)(h)
	}

	h = RecoveryMiddleware(log)(h)

	return &Server{
		config:  cfg,
		handler: h,
		server: &http.Server{
			Addr:              cfg.ListenAddress,
			Handler:           h,
			ReadHeaderTimeout: cfg.ReadTimeout.Duration,
			ReadTimeout:       cfg.ReadTimeout.Duration,
			WriteTimeout:      cfg.WriteTimeout.Duration,
			IdleTimeout:       cfg.IdleTimeout.Duration,
		},
		log: log,
	}
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if !s.config.Enabled {
		s.log.Info("API server is disabled")
		return nil
	}

	listener, err := net.Listen("tcp", s.config.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddress, err)
	}

	return s.serve(ctx, listener)
}

func (s *Server) serve(ctx context.Context, listener net.Listener) error {
	s.log.Infow("starting API server",
		"address", listener.Addr().String(),
		"docs", docs.SwaggerInfo.Title,
	)

	serveErr := make(chan error, 1)
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("API server error: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownCtxTimeout)
	defer cancel()

	s.log.Info("shutting down API server")
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("API server shutdown error: %w", err)
	}

	s.log.Info("API server stopped")
	return nil
}
