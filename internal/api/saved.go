package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hessennasser/codecache-manager-backend/internal/auth"
	"github.com/hessennasser/codecache-manager-backend/internal/snippets"
)

// savedHandler serves bookmark management for the authenticated user.
type savedHandler struct {
	snippets *snippets.Service
}

func registerSavedRoutes(r chi.Router, h *savedHandler) {
	r.Get("/saved-snippets", h.List)
	r.Post("/saved-snippets/{snippetId}", h.Save)
	r.Delete("/saved-snippets/{snippetId}", h.Unsave)
	r.Get("/saved-snippets/{snippetId}/is-saved", h.IsSaved)
}

// List returns the caller's saved snippets, most recently saved first.
// GET /api/v1/saved-snippets
//
// @Summary      List saved snippets
// @Tags         Saved
// @Produce      json
// @Param        page      query     int     false  "Page (default 1)"
// @Param        limit     query     int     false  "Page size (default 10)"
// @Param        search    query     string  false  "Free-text search"
// @Param        tags      query     string  false  "Tag filter"
// @Param        language  query     string  false  "Language filter"
// @Success      200  {object}  SnippetListResponse
// @Failure      401  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /saved-snippets [get]
func (h *savedHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	filter, page := parseListParams(r)

	res, err := h.snippets.ListSaved(r.Context(), user.ID, filter, page)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSnippetListResponse(res))
}

// Save bookmarks a snippet for the caller. Saving twice is a no-op.
// POST /api/v1/saved-snippets/{snippetId}
//
// @Summary      Save a snippet
// @Tags         Saved
// @Produce      json
// @Param        snippetId  path  string  true  "Snippet id"
// @Success      200  {object}  SavedStatusResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /saved-snippets/{snippetId} [post]
func (h *savedHandler) Save(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	if err := h.snippets.SetSaved(r.Context(), user.ID, chi.URLParam(r, "snippetId"), true); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SavedStatusResponse{Saved: true})
}

// Unsave removes a bookmark. Removing a missing bookmark is a no-op.
// DELETE /api/v1/saved-snippets/{snippetId}
//
// @Summary      Unsave a snippet
// @Tags         Saved
// @Produce      json
// @Param        snippetId  path  string  true  "Snippet id"
// @Success      200  {object}  SavedStatusResponse
// @Failure      404  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /saved-snippets/{snippetId} [delete]
func (h *savedHandler) Unsave(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	if err := h.snippets.SetSaved(r.Context(), user.ID, chi.URLParam(r, "snippetId"), false); err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SavedStatusResponse{Saved: false})
}

// IsSaved reports whether the caller has bookmarked the snippet.
// GET /api/v1/saved-snippets/{snippetId}/is-saved
//
// @Summary      Check saved status
// @Tags         Saved
// @Produce      json
// @Param        snippetId  path  string  true  "Snippet id"
// @Success      200  {object}  SavedStatusResponse
// @Security     BearerToken
// @Router       /saved-snippets/{snippetId}/is-saved [get]
func (h *savedHandler) IsSaved(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	saved, err := h.snippets.IsSaved(r.Context(), user.ID, chi.URLParam(r, "snippetId"))
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SavedStatusResponse{Saved: saved})
}
