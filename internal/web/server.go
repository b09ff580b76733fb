package web

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/lmalina/shape-rank/internal/config"
	"github.com/lmalina/shape-rank/internal/session"
	"github.com/lmalina/shape-rank/internal/shapeapi"
	"github.com/lmalina/shape-rank/internal/web/middleware"
)

// Server hosts the JSON API and the embedded UI for one comparison session.
type Server struct {
	config     *config.Config
	router     *chi.Mux
	httpServer *http.Server
	client     *shapeapi.Client
	session    *session.Session
}

// NewServer creates a web server around an existing session and backend client.
func NewServer(cfg *config.Config, client *shapeapi.Client, sess *session.Session) *Server {
	r := chi.NewRouter()

	s := &Server{
		config:  cfg,
		router:  r,
		client:  client,
		session: sess,
	}

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(5 * time.Minute))
	r.Use(middleware.CORS())

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // uploads and six-way fan-outs can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting web server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down web server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
