package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lmalina/shape-rank/internal/web/handlers"
	"github.com/lmalina/shape-rank/internal/web/static"
)

func (s *Server) setupRoutes() {
	imagesHandler := handlers.NewImagesHandler(s.client, s.session)
	sessionHandler := handlers.NewSessionHandler(s.config, s.session)
	leaderboardHandler := handlers.NewLeaderboardHandler(s.client)

	s.router.Get("/api/v1/health", handlers.HealthCheck)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Post("/images", imagesHandler.Upload)
		r.Get("/objects/{id}/mask.png", imagesHandler.MaskThumb)

		r.Get("/catalog", sessionHandler.Catalog)
		r.Get("/state", sessionHandler.State)
		r.Post("/select", sessionHandler.Select)
		r.Post("/compare", sessionHandler.Compare)
		r.Post("/rank", sessionHandler.Rank)
		r.Post("/submit", sessionHandler.Submit)

		r.Get("/leaderboard", leaderboardHandler.Get)
	})

	// Embedded UI at the root.
	s.router.Handle("/*", http.FileServer(static.GetFileSystem()))
}
