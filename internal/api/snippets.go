package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hessennasser/codecache-manager-backend/internal/snippets"
)

// snippetsHandler serves the public snippet listings and reads.
type snippetsHandler struct {
	snippets *snippets.Service
}

func registerSnippetRoutes(r chi.Router, h *snippetsHandler) {
	r.Get("/snippets", h.List)
	r.Get("/snippets/popular", h.Popular)
	r.Get("/snippets/recent", h.Recent)
	r.Get("/snippets/{id}", h.Get)
}

// List returns public snippets matching the filters, paginated.
// GET /api/v1/snippets
//
// @Summary      List public snippets
// @Tags         Snippets
// @Produce      json
// @Param        page      query     int     false  "Page (default 1)"
// @Param        limit     query     int     false  "Page size (default 10)"
// @Param        search    query     string  false  "Free-text search, relevance ordered"
// @Param        tags      query     string  false  "Tag filter, comma-separated or repeated"
// @Param        language  query     string  false  "Language filter; 'all' disables"
// @Param        sort      query     string  false  "popular or recent"
// @Success      200  {object}  SnippetListResponse
// @Router       /snippets [get]
func (h *snippetsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, page := parseListParams(r)

	res, err := h.snippets.List(r.Context(), filter, page)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSnippetListResponse(res))
}

// Popular returns the most viewed public snippets.
// GET /api/v1/snippets/popular
//
// @Summary      Popular snippets
// @Tags         Snippets
// @Produce      json
// @Param        limit  query     int  false  "Max results (default 10, capped at 100)"
// @Success      200    {array}   SnippetResponse
// @Router       /snippets/popular [get]
func (h *snippetsHandler) Popular(w http.ResponseWriter, r *http.Request) {
	details, err := h.snippets.ListPopular(r.Context(), parseLimit(r, snippets.DefaultLimit))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSnippetResponses(details))
}

// Recent returns the newest public snippets.
// GET /api/v1/snippets/recent
//
// @Summary      Recent snippets
// @Tags         Snippets
// @Produce      json
// @Param        limit  query     int  false  "Max results (default 10, capped at 100)"
// @Success      200    {array}   SnippetResponse
// @Router       /snippets/recent [get]
func (h *snippetsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	details, err := h.snippets.ListRecent(r.Context(), parseLimit(r, snippets.DefaultLimit))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSnippetResponses(details))
}

// Get returns a single snippet and counts the view, including anonymous reads.
// GET /api/v1/snippets/{id}
//
// @Summary      Get a snippet
// @Tags         Snippets
// @Produce      json
// @Param        id  path  string  true  "Snippet id"
// @Success      200  {object}  SnippetResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /snippets/{id} [get]
func (h *snippetsHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.snippets.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSnippetResponse(detail))
}

func toSnippetResponses(details []*snippets.Detail) []SnippetResponse {
	out := make([]SnippetResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toSnippetResponse(d))
	}
	return out
}
