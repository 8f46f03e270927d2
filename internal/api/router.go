package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/protesilaos/denote-journal/internal/journalservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *journalservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Entries (read-only; creation goes through resolution).
	r.Get("/entries", h.ListEntries)
	r.Get("/entries/*", h.GetEntry)

	// Journal resolution.
	r.Post("/journal/resolve", h.Resolve)
	r.Post("/journal/confirm", h.Confirm)
	r.Get("/journal/classify", h.Classify)

	// Search and backlinks.
	r.Get("/search", h.Search)
	r.Get("/backlinks", h.Backlinks)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
