package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Consistency report.
	r.Get("/report", h.Report)
	r.Get("/report.md", h.ReportMarkdown)

	// Reference graph.
	r.Get("/graph", h.Graph)
	r.Get("/graph.dot", h.GraphDOT)

	// Documents.
	r.Get("/docs", h.ListDocs)
	r.Get("/docs/*", h.GetDoc)

	// Health history.
	r.Get("/history", h.History)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
