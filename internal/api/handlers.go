package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/protesilaos/denote-journal/internal/apperr"
	"github.com/protesilaos/denote-journal/internal/journal"
	"github.com/protesilaos/denote-journal/internal/journalservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *journalservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *journalservice.Service) *Handler {
	return &Handler{svc: svc}
}

// entryPath extracts the entry path from the URL (everything after
// /api/entries/). Supports encoded slashes (e.g. journal%2Fnote.org).
func entryPath(r *http.Request) string {
	raw := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if raw == "" {
		return ""
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ListEntries handles GET /api/entries.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	keyword := q.Get("keyword")
	sort := q.Get("sort")

	items, total, err := h.svc.ListEntries(r.Context(), limit, offset, keyword, sort)
	if err != nil {
		slog.Error("list entries failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, EntryListResponse{Entries: items, Total: total})
}

// GetEntry handles GET /api/entries/*.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	path := entryPath(r)
	if path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	entry, err := h.svc.GetEntry(r.Context(), path)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get entry failed", slog.String("path", path), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Resolve handles POST /api/journal/resolve: locate-or-create the journal
// entry for a date. Responds 200 for a found entry, 201 for a newly
// created one, and 300 with the candidate list when the result is
// ambiguous.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ResolveRequest
	// An empty body is allowed and means "today".
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	res, err := h.svc.Resolve(r.Context(), req.Date)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidDate) {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		slog.Error("resolve failed", slog.String("date", req.Date), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	body := ResolveResponse{
		Outcome:    string(res.Outcome),
		Path:       res.Path,
		Candidates: res.Candidates,
	}
	switch res.Outcome {
	case journal.OutcomeCreated:
		writeJSON(w, http.StatusCreated, body)
	case journal.OutcomeAmbiguous:
		writeJSON(w, http.StatusMultipleChoices, body)
	default:
		writeJSON(w, http.StatusOK, body)
	}
}

// Confirm handles POST /api/journal/confirm: re-validates a path picked
// from an ambiguous candidate list.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req ConfirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("path is required"))
		return
	}
	path, err := h.svc.ConfirmSelection(req.Path)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorBody("selected entry no longer exists"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"path": path})
}

// Classify handles GET /api/journal/classify?name=: reports whether a bare
// file name is a valid journal entry name. Never errors on bad input.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'name' is required"))
		return
	}
	writeJSON(w, http.StatusOK, ClassifyResponse{
		Name:    name,
		Journal: h.svc.IsJournalFilename(name),
	})
}

// Search handles GET /api/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	resp := SearchResponse{Results: make([]SearchResult, len(results))}
	for i, res := range results {
		resp.Results[i] = SearchResult{Path: res.Path, Title: res.Title, Snippet: res.Snippet}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Backlinks handles GET /api/backlinks?identifier=.
func (h *Handler) Backlinks(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("identifier")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'identifier' is required"))
		return
	}
	bl, err := h.svc.Backlinks(r.Context(), id)
	if err != nil {
		slog.Error("backlinks failed", slog.String("identifier", id), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if bl == nil {
		bl = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"backlinks": bl,
	})
}
