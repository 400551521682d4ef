package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"go.uber.org/zap"

	"scythe/internal/config"
	"scythe/internal/engine"
	"scythe/internal/metrics"
	"scythe/internal/settings"
)

const shutdownTimeout = 5 * time.Second

// Deps are the collaborators the server wires into its handlers.
type Deps struct {
	Generator      *engine.Generator
	Settings       settings.Store
	Metrics        metrics.Recorder // no-op when nil
	MetricsHandler http.Handler     // /metrics is not served when nil
	Logger         *zap.Logger      // no-op when nil
	Static         fs.FS            // contents served at /
}

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	cfg      config.Config
	handlers *Handlers
	deps     Deps
	logger   *zap.Logger
}

func New(cfg config.Config, deps Deps) *Server {
	if deps.Metrics == nil {
		deps.Metrics = metrics.NewNop()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Server{
		cfg:      cfg,
		handlers: NewHandlers(cfg, deps),
		deps:     deps,
		logger:   deps.Logger,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	if s.deps.Static != nil {
		mux.Handle("/", http.FileServer(http.FS(s.deps.Static)))
	}

	// API routes
	mux.HandleFunc("/api/catalog", s.handlers.HandleCatalog)
	mux.HandleFunc("/api/generate", s.handlers.HandleGenerate)
	mux.HandleFunc("/api/settings", s.handlers.HandleSettings)
	mux.HandleFunc("/api/table/create", s.handlers.HandleCreateTable)
	mux.HandleFunc("/api/qr", s.handlers.HandleQR)
	mux.HandleFunc("/ws", s.handlers.HandleWS)
	if s.deps.MetricsHandler != nil {
		mux.Handle("/metrics", s.deps.MetricsHandler)
	}
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("scythe randomizer listening", zap.String("url", "http://localhost"+s.cfg.Addr()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.handlers.Close()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.handlers.Close()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close stops the table hubs without touching the listener.
func (s *Server) Close() {
	s.handlers.Close()
}
