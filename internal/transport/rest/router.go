package rest

import (
	"net/http"

	"github.com/heartmarshall/studioops-backend/internal/transport/middleware"
)

// NewRouter registers the reviewer API and health probes on a ServeMux.
// Writes require an authenticated reviewer; reads are open.
func NewRouter(suggestions *SuggestionHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()
	write := func(h http.HandlerFunc) http.Handler { return middleware.RequireReviewer(h) }

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.Handle("POST /api/suggestions", write(suggestions.Ingest))
	mux.HandleFunc("GET /api/suggestions", suggestions.List)
	mux.HandleFunc("GET /api/suggestions/grouped", suggestions.Grouped)
	mux.HandleFunc("GET /api/suggestions/{id}", suggestions.Get)
	mux.HandleFunc("GET /api/suggestions/{id}/preview", suggestions.Preview)
	mux.HandleFunc("GET /api/suggestions/{id}/source", suggestions.Source)
	mux.HandleFunc("GET /api/suggestions/{id}/changes", suggestions.Changes)
	mux.Handle("POST /api/suggestions/{id}/decide", write(suggestions.Decide))
	mux.Handle("POST /api/suggestions/{id}/rollback", write(suggestions.Rollback))
	mux.HandleFunc("GET /api/suggestion-types", suggestions.Types)

	return mux
}
