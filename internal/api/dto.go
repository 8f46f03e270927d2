package api

import "github.com/protesilaos/denote-journal/internal/journalservice"

// ResolveRequest is the request body for resolving a journal entry.
// Date is optional text accepted by the date parser; empty means today.
type ResolveRequest struct {
	Date string `json:"date,omitempty" example:"2023-10-19"`
}

// ResolveResponse describes the outcome of a resolution call.
type ResolveResponse struct {
	Outcome    string   `json:"outcome" example:"found"`
	Path       string   `json:"path,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
}

// ConfirmRequest carries the path a human picked among ambiguous
// candidates.
type ConfirmRequest struct {
	Path string `json:"path"`
}

// ClassifyResponse reports whether a bare file name is a journal entry.
type ClassifyResponse struct {
	Name    string `json:"name"`
	Journal bool   `json:"journal"`
}

// EntryDetail is the full entry response type (aliased from the domain
// layer).
type EntryDetail = journalservice.EntryDetail

// EntryListItem is a lightweight item in a list response (aliased from the
// domain layer).
type EntryListItem = journalservice.EntryListItem

// EntryListResponse wraps paginated entry listings.
type EntryListResponse struct {
	Entries []EntryListItem `json:"entries"`
	Total   int             `json:"total" example:"42"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}
