package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/arbor/pkg/pipeline"
)

// Handler returns the HTTP handler with all middleware installed.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/document", s.handleDocument)
		r.Get("/render.svg", s.handleRender(pipeline.FormatSVG))
		r.Get("/render.png", s.handleRender(pipeline.FormatPNG))
		r.Get("/render.dot", s.handleRender(pipeline.FormatDOT))

		r.Get("/nodes/{id}/actions", s.handleActions)
		r.Post("/nodes/{id}/children", s.handleAddChild)
		r.Post("/nodes/{id}/cut", s.handleCut)
		r.Post("/nodes/{id}/copy", s.handleCopy)
		r.Post("/nodes/{id}/paste", s.handlePaste)
		r.Delete("/nodes/{id}", s.handleDelete)
	})

	return r
}
