package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hessennasser/codecache-manager-backend/internal/auth"
	"github.com/hessennasser/codecache-manager-backend/internal/snippets"
	"github.com/hessennasser/codecache-manager-backend/internal/store"
)

// meHandler serves the authenticated user's profile and their own snippets.
type meHandler struct {
	users    *store.UserStore
	snippets *snippets.Service
}

func registerMeRoutes(r chi.Router, h *meHandler) {
	r.Get("/me", h.Profile)
	r.Put("/me", h.UpdateProfile)
	r.Get("/me/snippets", h.ListSnippets)
	r.Post("/me/snippets", h.CreateSnippet)
	r.Put("/me/snippets/{id}", h.UpdateSnippet)
	r.Delete("/me/snippets/{id}", h.DeleteSnippet)
}

// Profile returns the authenticated user.
// GET /api/v1/me
//
// @Summary      Current user profile
// @Tags         Me
// @Produce      json
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /me [get]
func (h *meHandler) Profile(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, toUserResponse(user))
}

// UpdateProfile applies a partial patch to the caller's profile fields.
// PUT /api/v1/me
//
// @Summary      Update profile
// @Tags         Me
// @Accept       json
// @Produce      json
// @Param        body  body      UpdateProfileRequest  true  "Profile patch"
// @Success      200   {object}  UserResponse
// @Failure      400   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /me [put]
func (h *meHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Position != nil {
		user.Position = *req.Position
	}
	if req.CompanyName != nil {
		user.CompanyName = *req.CompanyName
	}
	if req.CompanyWebsite != nil {
		user.CompanyWebsite = *req.CompanyWebsite
	}
	if user.FirstName == "" || user.LastName == "" {
		writeError(w, http.StatusBadRequest, "firstName and lastName cannot be empty", "VALIDATION_ERROR")
		return
	}

	updated, err := h.users.UpdateProfile(r.Context(), user)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

// ListSnippets returns the caller's snippets, public and private.
// GET /api/v1/me/snippets
//
// @Summary      List own snippets
// @Tags         Me
// @Produce      json
// @Param        page      query     int     false  "Page (default 1)"
// @Param        limit     query     int     false  "Page size (default 10)"
// @Param        search    query     string  false  "Free-text search"
// @Param        tags      query     string  false  "Tag filter, comma-separated"
// @Param        language  query     string  false  "Language filter; 'all' disables"
// @Success      200  {object}  SnippetListResponse
// @Failure      401  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /me/snippets [get]
func (h *meHandler) ListSnippets(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	filter, page := parseListParams(r)

	res, err := h.snippets.ListByUser(r.Context(), user.ID, filter, page)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSnippetListResponse(res))
}

// CreateSnippet creates a snippet owned by the caller.
// POST /api/v1/me/snippets
//
// @Summary      Create snippet
// @Tags         Me
// @Accept       json
// @Produce      json
// @Param        body  body      CreateSnippetRequest  true  "Snippet"
// @Success      201   {object}  SnippetResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /me/snippets [post]
func (h *meHandler) CreateSnippet(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	var req CreateSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	detail, err := h.snippets.Create(r.Context(), user.ID, snippets.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Language:    req.ProgrammingLanguage,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSnippetResponse(detail))
}

// UpdateSnippet applies a partial patch to a snippet the caller owns.
// PUT /api/v1/me/snippets/{id}
//
// @Summary      Update snippet
// @Tags         Me
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Snippet id"
// @Param        body  body      UpdateSnippetRequest  true  "Snippet patch"
// @Success      200   {object}  SnippetResponse
// @Failure      404   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /me/snippets/{id} [put]
func (h *meHandler) UpdateSnippet(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	var req UpdateSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	detail, err := h.snippets.Update(r.Context(), user.ID, chi.URLParam(r, "id"), snippets.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Language:    req.ProgrammingLanguage,
		Tags:        req.Tags,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSnippetResponse(detail))
}

// DeleteSnippet removes a snippet the caller owns.
// DELETE /api/v1/me/snippets/{id}
//
// @Summary      Delete snippet
// @Tags         Me
// @Produce      json
// @Param        id  path  string  true  "Snippet id"
// @Success      204  "No Content"
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /me/snippets/{id} [delete]
func (h *meHandler) DeleteSnippet(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	if err := h.snippets.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
