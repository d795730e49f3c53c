// Package api is the HTTP surface: a chi router mounted at /api/v1 serving
// JSON, with JWT-protected routes for everything that mutates state.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/hessennasser/codecache-manager-backend/docs/swagger"
	"github.com/hessennasser/codecache-manager-backend/internal/auth"
	"github.com/hessennasser/codecache-manager-backend/internal/snippets"
	"github.com/hessennasser/codecache-manager-backend/internal/store"
)

// Deps holds all dependencies required to build the router.
type Deps struct {
	AuthMiddleware  *auth.Middleware
	TokenService    *auth.TokenService
	PasswordService *auth.PasswordService
	UserStore       *store.UserStore
	TagStore        *store.TagStore
	SnippetService  *snippets.Service
}

// NewRouter assembles the full chi router: operational endpoints at the
// root, the JSON API under /api/v1 split into public and bearer-protected
// groups.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	authH := &authHandler{users: deps.UserStore, passwords: deps.PasswordService, tokens: deps.TokenService}
	snippetsH := &snippetsHandler{snippets: deps.SnippetService}
	tagsH := &tagsHandler{tags: deps.TagStore}
	meH := &meHandler{users: deps.UserStore, snippets: deps.SnippetService}
	savedH := &savedHandler{snippets: deps.SnippetService}

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(jsonContentType)

		api.Group(func(pub chi.Router) {
			registerPublicAuthRoutes(pub, authH)
			registerSnippetRoutes(pub, snippetsH)
			registerTagRoutes(pub, tagsH)
		})

		api.Group(func(priv chi.Router) {
			priv.Use(deps.AuthMiddleware.Authenticate)
			priv.Post("/auth/logout", authH.Logout)
			registerMeRoutes(priv, meH)
			registerSavedRoutes(priv, savedH)
		})
	})

	return r
}

// jsonContentType sets Content-Type: application/json on all API responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
