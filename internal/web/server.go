// Package web provides the development REST backend for the villain catalog.
package web

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/evcraddock/villainapp/internal/comment"
	"github.com/evcraddock/villainapp/internal/logging"
	"github.com/evcraddock/villainapp/internal/villain"
)

// Server is the REST API HTTP server.
type Server struct {
	villainRepo *villain.Repository
	commentRepo *comment.Repository
	mux         *http.ServeMux
}

// NewServer creates a server backed by the given database.
func NewServer(db *sql.DB) *Server {
	s := &Server{
		villainRepo: villain.NewRepository(db),
		commentRepo: comment.NewRepository(db),
		mux:         http.NewServeMux(),
	}

	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.HandleFunc("/villanos", s.handleVillains)
	s.mux.HandleFunc("/villanos/", s.handleVillains)
	s.mux.HandleFunc("/comentarios", s.handleComments)
	s.mux.HandleFunc("/comentarios/", s.handleComments)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Handler returns the server wrapped with request logging.
func (s *Server) Handler() http.Handler {
	return logging.RequestLogger(s)
}

// ListenAndServe starts the HTTP server and blocks until ctx is cancelled
// or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", "http://localhost"+srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
