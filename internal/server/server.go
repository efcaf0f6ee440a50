// Package server exposes the planner over HTTP: the JSON API consumed by the
// embedded frontend plus file responses for images, exports and audio clips.
package server

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/planfit/internal/planner"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc    *planner.Service
	log    *slog.Logger
	apiKey string
	router chi.Router
}

// New creates a new Server with all routes configured. apiKey may be empty,
// in which case mutating endpoints are open (tsnet handles access).
func New(svc *planner.Service, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		svc:    svc,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Generation endpoints spend vendor credits; gate them when a key is set.
	s.router.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Post("/api/v1/plan", s.handleGeneratePlan)
		r.Post("/api/v1/images", s.handleGenerateImages)
		r.Post("/api/v1/motivation", s.handleMotivation)
	})

	// Read endpoints (no auth).
	s.router.Get("/api/v1/options", s.handleOptions)
	s.router.Get("/api/v1/plan/latest", s.handleLatestPlan)
	s.router.Get("/api/v1/plan/fragment", s.handlePlanFragment)
	s.router.Get("/api/v1/plans", s.handleListPlans)
	s.router.Get("/api/v1/images/{name}", s.handleGetImage)
	s.router.Get("/api/v1/export/html", s.handleExportHTML)
	s.router.Get("/api/v1/export/pdf", s.handleExportPDF)
	s.router.Get("/api/v1/audio", s.handleListAudio)
	s.router.Get("/api/v1/audio/latest", s.handleLatestAudio)
}

// SetFrontend mounts the embedded frontend filesystem.
// Unmatched routes serve index.html for client-side routing.
func (s *Server) SetFrontend(webFS fs.FS) {
	fileServer := http.FileServerFS(webFS)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		// Try to serve the exact file first
		f, err := webFS.Open(r.URL.Path[1:]) // strip leading /
		if err == nil {
			f.Close()
			fileServer.ServeHTTP(w, r)
			return
		}
		// Fallback to index.html
		r.URL.Path = "/"
		fileServer.ServeHTTP(w, r)
	})
}
