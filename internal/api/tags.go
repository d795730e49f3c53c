package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hessennasser/codecache-manager-backend/internal/store"
)

// tagsHandler serves the public tag listing.
type tagsHandler struct {
	tags *store.TagStore
}

func registerTagRoutes(r chi.Router, h *tagsHandler) {
	r.Get("/tags", h.List)
}

// List returns all tags ordered by usage. Zero-usage tags never appear
// because the registry garbage-collects them.
// GET /api/v1/tags
//
// @Summary      List tags
// @Tags         Tags
// @Produce      json
// @Success      200  {object}  TagListResponse
// @Router       /tags [get]
func (h *tagsHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.ListAll(r.Context())
	if err != nil {
		writeAppError(w, err)
		return
	}

	resp := TagListResponse{Tags: make([]TagResponse, 0, len(tags))}
	for _, t := range tags {
		resp.Tags = append(resp.Tags, toTagResponse(t))
	}
	writeJSON(w, http.StatusOK, resp)
}
