package server

import (
	"net/http"
	"strings"

	"github.com/jayjaychukwu/reconcilation/internal/server/handlers"
	"github.com/jayjaychukwu/reconcilation/internal/server/middleware"
	"github.com/jayjaychukwu/reconcilation/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(s.store, s.files, s.pool, s.logger)
	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	prefix := s.config.PathPrefix

	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Public health endpoints
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/health", h.HandleHealth)
	mux.HandleFunc(prefix+"/ready", h.HandleReady)

	// Reconciliation endpoints
	mux.HandleFunc(prefix+"/reconciliations", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.HandleUpload(w, r)
			return
		}
		response.MethodNotAllowed(w, r.Method)
	})

	mux.HandleFunc(prefix+"/reconciliations/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w, r.Method)
			return
		}

		parts := splitPath(strings.TrimPrefix(r.URL.Path, prefix+"/reconciliations/"))
		switch {
		case len(parts) == 1:
			// GET /reconciliations/{task_id}
			h.HandleGetJob(w, r, parts[0])
		case len(parts) == 3 && parts[1] == "report":
			// GET /reconciliations/{task_id}/report/{format}
			h.HandleReport(w, r, parts[0], parts[2])
		default:
			response.NotFound(w, "not found", "")
		}
	})
}

// applyMiddleware wraps the mux with the standard middleware chain.
func (s *Server) applyMiddleware(mux *http.ServeMux) http.Handler {
	chain := middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger),
		middleware.RequestID(),
		middleware.CORS(s.config.CORSOrigins),
	)
	return chain(mux)
}

// splitPath splits a URL path into non-empty segments.
func splitPath(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
