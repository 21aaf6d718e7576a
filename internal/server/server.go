// Package server exposes the interpretation engine over HTTP. Every session
// owns its own engine, transcript and current directory.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fsbot/internal/config"
	"fsbot/internal/logging"
)

// Server is the HTTP front end.
type Server struct {
	store  *Store
	router *gin.Engine
	http   *http.Server
}

// New builds a server from cfg.
func New(cfg *config.Config) *Server {
	if gin.Mode() == gin.DebugMode && !logging.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	store := NewStore(cfg.FileOptions(), cfg.GetSessionTTL())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger())
	SetupRoutes(router, store)

	return &Server{
		store:  store,
		router: router,
		http: &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Handler returns the routed gin engine.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}

// Run serves until ctx is canceled, then shuts down gracefully and closes
// every session.
func (s *Server) Run(ctx context.Context) error {
	defer s.store.Close()

	errCh := make(chan error, 1)
	go func() {
		logging.API("listening on %s", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.API("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	<-errCh
	return nil
}

// Close releases all sessions without serving.
func (s *Server) Close() {
	s.store.Close()
}
