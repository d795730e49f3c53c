package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/hessennasser/codecache-manager-backend/internal/snippets"
	"github.com/hessennasser/codecache-manager-backend/internal/store"
)

// parseListParams extracts filter and pagination query parameters:
// page, limit, search, tags (repeatable or comma-separated), language,
// and sort (popular|recent). Unparseable numbers fall back to defaults.
func parseListParams(r *http.Request) (snippets.ListFilter, snippets.PageRequest) {
	q := r.URL.Query()

	var page snippets.PageRequest
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		page.Page = v
	}
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		page.Limit = v
	}

	filter := snippets.ListFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		Language: q.Get("language"),
		Tags:     parseTags(q["tags"]),
	}
	switch q.Get("sort") {
	case "popular":
		filter.Sort = store.SortPopular
	case "recent":
		filter.Sort = store.SortRecent
	}
	return filter, page
}

// parseTags accepts both ?tags=a&tags=b and ?tags=a,b.
func parseTags(values []string) []string {
	var tags []string
	for _, v := range values {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
	}
	return tags
}

// parseLimit reads a bare limit parameter for the popular/recent listings.
// The service clamps the value to its page-size ceiling.
func parseLimit(r *http.Request, fallback int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		return v
	}
	return fallback
}
