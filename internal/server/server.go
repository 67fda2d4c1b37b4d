// Package server exposes the calculators over a small JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rgehrsitz/finhealth/internal/calculation"
	"github.com/sirupsen/logrus"
)

// maxBodyBytes caps request bodies
const maxBodyBytes = 1 << 20

// Server routes API requests to the calculation engine
type Server struct {
	engine *calculation.Engine
	logger *logrus.Logger
	router *mux.Router
}

// New creates a server with all routes registered
func New(engine *calculation.Engine, logger *logrus.Logger) *Server {
	s := &Server{
		engine: engine,
		logger: logger,
		router: mux.NewRouter(),
	}
	s.router.Use(RequestIDMiddleware, LoggingMiddleware(logger))
	s.RegisterRoutes(s.router)
	return s
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// RegisterRoutes registers the API routes on router
func (s *Server) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/healthz", s.Health).Methods(http.MethodGet)

	// registered on the root router so a method mismatch reaches
	// MethodNotAllowedHandler instead of NotFound
	router.HandleFunc("/api/networth", s.NetWorth).Methods(http.MethodPost)
	router.HandleFunc("/api/coverage", s.Coverage).Methods(http.MethodPost)
	router.HandleFunc("/api/needs-gap", s.NeedsGap).Methods(http.MethodPost)
	router.HandleFunc("/api/retirement", s.Retirement).Methods(http.MethodPost)
	router.HandleFunc("/api/snapshot", s.Snapshot).Methods(http.MethodGet)
	router.HandleFunc("/api/snapshot", s.ClearSnapshot).Methods(http.MethodDelete)

	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
		Status:  StatusInvalid,
		Message: "method " + r.Method + " not allowed",
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Infof("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
