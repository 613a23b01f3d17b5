package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/gramconnect/pkg/core/services"
	"github.com/jakechorley/gramconnect/pkg/db"
)

const (
	defaultRequestTimeout = 15 * time.Second
	shutdownTimeout       = 10 * time.Second
)

// Server routes the marketplace HTTP API onto the store
type Server struct {
	store          db.Database
	notifier       services.Notifier
	logger         *zap.Logger
	requestTimeout time.Duration
	mux            *http.ServeMux
}

// New creates a server. A nil notifier disables notifications; a zero timeout uses 15s.
func New(store db.Database, notifier services.Notifier, logger *zap.Logger, requestTimeout time.Duration) *Server {
	if notifier == nil {
		notifier = services.NopNotifier{}
	}
	if requestTimeout <= 0 {
		requestTimeout = defaultRequestTimeout
	}

	s := &Server{
		store:          store,
		notifier:       notifier,
		logger:         logger,
		requestTimeout: requestTimeout,
		mux:            http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	s.mux.HandleFunc("POST /api/signup", s.handleSignup)
	s.mux.HandleFunc("POST /api/login", s.handleLogin)

	s.mux.HandleFunc("GET /api/jobs", s.handleListJobs)
	s.mux.HandleFunc("POST /api/jobs", s.handlePostJob)

	s.mux.HandleFunc("GET /api/applications", s.handleListApplications)
	s.mux.HandleFunc("PUT /api/applications/{id}", s.handleUpdateApplication)
	s.mux.HandleFunc("POST /api/apply", s.handleApply)
}

// Handler returns the routed handler wrapped in logging and request timeouts
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.withTimeout(s.mux))
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
