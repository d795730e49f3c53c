package api_test

import (
	"net/http"
	"testing"

	"github.com/hessennasser/codecache-manager-backend/internal/api"
	"github.com/hessennasser/codecache-manager-backend/internal/snippets"
)

func TestProfile(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "me@example.com", "me")
	token := seedToken(t, env, u.ID)

	rec := doJSON(t, env, http.MethodGet, "/api/v1/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp api.UserResponse
	decode(t, rec, &resp)
	if resp.ID != u.ID || resp.Username != "me" {
		t.Errorf("profile = %+v", resp)
	}

	unauth := doJSON(t, env, http.MethodGet, "/api/v1/me", "", nil)
	if unauth.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated = %d, want 401", unauth.Code)
	}
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "me@example.com", "me")
	token := seedToken(t, env, u.ID)

	position := "Engineer"
	company := "ACME"
	rec := doJSON(t, env, http.MethodPut, "/api/v1/me", token, api.UpdateProfileRequest{
		Position:    &position,
		CompanyName: &company,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp api.UserResponse
	decode(t, rec, &resp)
	if resp.Position != "Engineer" || resp.CompanyName != "ACME" {
		t.Errorf("patch not applied: %+v", resp)
	}
	if resp.FirstName != "Test" {
		t.Errorf("untouched field changed: %+v", resp)
	}
}

func TestUpdateProfile_EmptyNameRejected(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "me@example.com", "me")
	token := seedToken(t, env, u.ID)

	empty := ""
	rec := doJSON(t, env, http.MethodPut, "/api/v1/me", token, api.UpdateProfileRequest{
		FirstName: &empty,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCreateSnippet(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "me@example.com", "me")
	token := seedToken(t, env, u.ID)

	rec := doJSON(t, env, http.MethodPost, "/api/v1/me/snippets", token, api.CreateSnippetRequest{
		Title:               "Hello",
		Description:         "First snippet",
		Content:             "fmt.Println(\"hi\")",
		ProgrammingLanguage: "Go",
		Tags:                []string{"Go", "CLI"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var resp api.SnippetResponse
	decode(t, rec, &resp)
	if resp.ID == "" || resp.Title != "Hello" {
		t.Errorf("snippet = %+v", resp)
	}
	if resp.ProgrammingLanguage != "go" {
		t.Errorf("language = %q, want normalized go", resp.ProgrammingLanguage)
	}
	if len(resp.Tags) != 2 {
		t.Errorf("tags = %+v, want 2", resp.Tags)
	}
	if !resp.IsPublic {
		t.Error("visibility should default to public")
	}
	if resp.User == nil || resp.User.Username != "me" {
		t.Errorf("owner = %+v", resp.User)
	}
}

func TestCreateSnippet_Validation(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "me@example.com", "me")
	token := seedToken(t, env, u.ID)

	rec := doJSON(t, env, http.MethodPost, "/api/v1/me/snippets", token, api.CreateSnippetRequest{
		Content: "x", ProgrammingLanguage: "go",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
	}

	var resp api.ErrorResponse
	decode(t, rec, &resp)
	if resp.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", resp.Code)
	}
}

func TestListOwnSnippets_IncludesPrivate(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "me@example.com", "me")
	token := seedToken(t, env, u.ID)

	seedSnippet(t, env, u.ID, snippets.CreateInput{Title: "Public", Content: "x", Language: "go"})
	private := false
	seedSnippet(t, env, u.ID, snippets.CreateInput{Title: "Private", Content: "x", Language: "go", IsPublic: &private})

	rec := doJSON(t, env, http.MethodGet, "/api/v1/me/snippets", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp api.SnippetListResponse
	decode(t, rec, &resp)
	if resp.Pagination.Total != 2 {
		t.Errorf("total = %d, want 2 (private included for the owner)", resp.Pagination.Total)
	}
}

func TestUpdateSnippet(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "me@example.com", "me")
	token := seedToken(t, env, u.ID)

	created := seedSnippet(t, env, u.ID, snippets.CreateInput{
		Title: "Before", Content: "x", Language: "go", Tags: []string{"old"},
	})

	title := "After"
	rec := doJSON(t, env, http.MethodPut, "/api/v1/me/snippets/"+created.ID, token, api.UpdateSnippetRequest{
		Title: &title,
		Tags:  []string{"new"},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp api.SnippetResponse
	decode(t, rec, &resp)
	if resp.Title != "After" {
		t.Errorf("title = %q, want After", resp.Title)
	}
	if len(resp.Tags) != 1 || resp.Tags[0].Name != "new" {
		t.Errorf("tags = %+v, want [new]", resp.Tags)
	}
}

func TestUpdateSnippet_NonOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := seedUser(t, env, "owner@example.com", "owner")
	intruder := seedUser(t, env, "intruder@example.com", "intruder")
	token := seedToken(t, env, intruder.ID)

	created := seedSnippet(t, env, owner.ID, snippets.CreateInput{
		Title: "Mine", Content: "x", Language: "go",
	})

	title := "Stolen"
	rec := doJSON(t, env, http.MethodPut, "/api/v1/me/snippets/"+created.ID, token, api.UpdateSnippetRequest{
		Title: &title,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 (ownership hidden as not-found)", rec.Code)
	}
}

func TestDeleteSnippet(t *testing.T) {
	env := newTestEnv(t)
	u := seedUser(t, env, "me@example.com", "me")
	token := seedToken(t, env, u.ID)

	created := seedSnippet(t, env, u.ID, snippets.CreateInput{
		Title: "Doomed", Content: "x", Language: "go",
	})

	rec := doJSON(t, env, http.MethodDelete, "/api/v1/me/snippets/"+created.ID, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204: %s", rec.Code, rec.Body.String())
	}

	gone := doJSON(t, env, http.MethodGet, "/api/v1/snippets/"+created.ID, "", nil)
	if gone.Code != http.StatusNotFound {
		t.Errorf("deleted snippet still readable: %d", gone.Code)
	}
}
