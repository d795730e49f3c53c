package api

import (
	"time"

	"github.com/hessennasser/codecache-manager-backend/internal/snippets"
	"github.com/hessennasser/codecache-manager-backend/internal/store"
)

// --- Auth types ---

// RegisterRequest is the request body for POST /api/v1/auth/register.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// LoginRequest is the request body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the access token and the authenticated user.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// MessageResponse is a bare acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}

// --- User types ---

// UserResponse is the JSON representation of a user. The credential hash is
// never serialized.
type UserResponse struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	Email           string    `json:"email"`
	Username        string    `json:"username"`
	Position        string    `json:"position,omitempty"`
	CompanyName     string    `json:"companyName,omitempty"`
	CompanyWebsite  string    `json:"companyWebsite,omitempty"`
	IsEmailVerified bool      `json:"isEmailVerified"`
	Role            string    `json:"role"`
	SnippetIDs      []string  `json:"snippetIds"`
	SavedSnippetIDs []string  `json:"savedSnippetIds"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UpdateProfileRequest is a partial profile patch; nil fields stay unchanged.
type UpdateProfileRequest struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Position       *string `json:"position"`
	CompanyName    *string `json:"companyName"`
	CompanyWebsite *string `json:"companyWebsite"`
}

func toUserResponse(u *store.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Username:        u.Username,
		Position:        u.Position,
		CompanyName:     u.CompanyName,
		CompanyWebsite:  u.CompanyWebsite,
		IsEmailVerified: u.IsEmailVerified,
		Role:            u.Role,
		SnippetIDs:      u.SnippetIDs,
		SavedSnippetIDs: u.SavedSnippetIDs,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// --- Snippet types ---

// CreateSnippetRequest is the request body for POST /api/v1/me/snippets.
type CreateSnippetRequest struct {
	Title               string   `json:"title"`
	Description         string   `json:"description,omitempty"`
	Content             string   `json:"content"`
	ProgrammingLanguage string   `json:"programmingLanguage"`
	Tags                []string `json:"tags,omitempty"`
	IsPublic            *bool    `json:"isPublic,omitempty"`
}

// UpdateSnippetRequest is a partial snippet patch; nil fields stay unchanged.
// A present-but-empty tags array clears the snippet's tags.
type UpdateSnippetRequest struct {
	Title               *string  `json:"title"`
	Description         *string  `json:"description"`
	Content             *string  `json:"content"`
	ProgrammingLanguage *string  `json:"programmingLanguage"`
	Tags                []string `json:"tags"`
	IsPublic            *bool    `json:"isPublic"`
}

// OwnerResponse is the public owner summary attached to snippets.
type OwnerResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// TagResponse is the JSON representation of a tag.
type TagResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UsageCount int    `json:"usageCount"`
}

// SnippetResponse is the JSON representation of a snippet with tags and
// owner attached.
type SnippetResponse struct {
	ID                  string         `json:"id"`
	Title               string         `json:"title"`
	Description         string         `json:"description,omitempty"`
	Content             string         `json:"content"`
	ProgrammingLanguage string         `json:"programmingLanguage"`
	Tags                []TagResponse  `json:"tags"`
	UserID              string         `json:"userId"`
	User                *OwnerResponse `json:"user,omitempty"`
	IsPublic            bool           `json:"isPublic"`
	ViewCount           int            `json:"viewCount"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// SnippetListResponse is the paginated body for snippet listings.
type SnippetListResponse struct {
	Snippets   []SnippetResponse   `json:"snippets"`
	Pagination snippets.Pagination `json:"pagination"`
}

// SavedStatusResponse reports bookmark membership for one snippet.
type SavedStatusResponse struct {
	Saved bool `json:"saved"`
}

// TagListResponse is the body for GET /api/v1/tags.
type TagListResponse struct {
	Tags []TagResponse `json:"tags"`
}

func toTagResponse(t *store.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, UsageCount: t.UsageCount}
}

func toSnippetResponse(d *snippets.Detail) SnippetResponse {
	tags := make([]TagResponse, 0, len(d.Tags))
	for _, t := range d.Tags {
		tags = append(tags, toTagResponse(t))
	}
	var owner *OwnerResponse
	if d.Owner != nil {
		owner = &OwnerResponse{
			Username:  d.Owner.Username,
			Email:     d.Owner.Email,
			FirstName: d.Owner.FirstName,
			LastName:  d.Owner.LastName,
		}
	}
	return SnippetResponse{
		ID:                  d.ID,
		Title:               d.Title,
		Description:         d.Description,
		Content:             d.Content,
		ProgrammingLanguage: d.Language,
		Tags:                tags,
		UserID:              d.UserID,
		User:                owner,
		IsPublic:            d.IsPublic,
		ViewCount:           d.ViewCount,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func toSnippetListResponse(res *snippets.ListResult) SnippetListResponse {
	out := SnippetListResponse{
		Snippets:   make([]SnippetResponse, 0, len(res.Snippets)),
		Pagination: res.Pagination,
	}
	for _, d := range res.Snippets {
		out.Snippets = append(out.Snippets, toSnippetResponse(d))
	}
	return out
}
