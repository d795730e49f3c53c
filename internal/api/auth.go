package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/go-chi/chi/v5"
	"github.com/hessennasser/codecache-manager-backend/internal/auth"
	"github.com/hessennasser/codecache-manager-backend/internal/store"
)

// authHandler provides register, login, and logout.
type authHandler struct {
	users     *store.UserStore
	passwords *auth.PasswordService
	tokens    *auth.TokenService
}

// registerPublicAuthRoutes registers the unauthenticated auth endpoints;
// logout lives on the protected router.
func registerPublicAuthRoutes(r chi.Router, h *authHandler) {
	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
}

// Register creates a new account and returns an access token.
// POST /api/v1/auth/register
//
// @Summary      Register
// @Description  Creates a user account and returns a JWT access token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      RegisterRequest  true  "New account"
// @Success      201   {object}  AuthResponse
// @Failure      400   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /auth/register [post]
func (h *authHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	if req.FirstName == "" || req.LastName == "" || req.Username == "" {
		writeError(w, http.StatusBadRequest, "firstName, lastName and username are required", "VALIDATION_ERROR")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email address", "VALIDATION_ERROR")
		return
	}

	hash, err := h.passwords.Hash(req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
		return
	}

	user := &store.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
	}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeError(w, http.StatusConflict, "email or username already exists", "CONFLICT")
			return
		}
		writeAppError(w, err)
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, AuthResponse{AccessToken: token, User: toUserResponse(user)})
}

// Login verifies credentials and returns an access token.
// POST /api/v1/auth/login
//
// @Summary      Log in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        body  body      LoginRequest  true  "Credentials"
// @Success      200   {object}  AuthResponse
// @Failure      401   {object}  ErrorResponse
// @Router       /auth/login [post]
func (h *authHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		// Missing user and wrong password are deliberately indistinguishable.
		writeError(w, http.StatusUnauthorized, "invalid credentials", "UNAUTHORIZED")
		return
	}
	if !user.IsActive || !h.passwords.Compare(req.Password, user.PasswordHash) {
		writeError(w, http.StatusUnauthorized, "invalid credentials", "UNAUTHORIZED")
		return
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthResponse{AccessToken: token, User: toUserResponse(user)})
}

// Logout acknowledges a logout. Tokens are stateless, so the client simply
// discards its copy; nothing is revoked server-side.
// POST /api/v1/auth/logout
//
// @Summary      Log out
// @Tags         Auth
// @Produce      json
// @Success      200  {object}  MessageResponse
// @Security     BearerToken
// @Router       /auth/logout [post]
func (h *authHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, MessageResponse{Message: "logout successful"})
}
