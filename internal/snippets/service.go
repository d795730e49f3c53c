package snippets

import (
	"context"
	"errors"
	"fmt"

	"github.com/hessennasser/codecache-manager-backend/internal/apperror"
	"github.com/hessennasser/codecache-manager-backend/internal/metrics"
	"github.com/hessennasser/codecache-manager-backend/internal/store"
)

// Service orchestrates snippet operations across the stores, the tag
// registry, and the consistency manager.
type Service struct {
	snippets SnippetStore
	users    UserStore
	saved    SavedStore
	tags     *TagRegistry
	sync     *ConsistencyManager
}

func NewService(snippets SnippetStore, tags TagStore, users UserStore, saved SavedStore) *Service {
	return &Service{
		snippets: snippets,
		users:    users,
		saved:    saved,
		tags:     NewTagRegistry(tags),
		sync:     NewConsistencyManager(users, snippets, saved),
	}
}

// Owner is the public subset of a user attached to snippet responses.
type Owner struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Detail is a snippet with its tags and owner attached.
type Detail struct {
	*store.Snippet
	Tags  []*store.Tag `json:"tags"`
	Owner *Owner       `json:"user,omitempty"`
}

// ListResult is a page of snippets plus pagination metadata.
type ListResult struct {
	Snippets   []*Detail  `json:"snippets"`
	Pagination Pagination `json:"pagination"`
}

// ListFilter is the caller-facing filter set for listings. Ownership
// restrictions are decided by the operation, not the caller.
type ListFilter struct {
	Search   string
	Tags     []string
	Language string
	Sort     store.Sort
}

// CreateInput is the payload for creating a snippet. IsPublic defaults to
// true when nil.
type CreateInput struct {
	Title       string
	Description string
	Content     string
	Language    string
	Tags        []string
	IsPublic    *bool
}

// UpdateInput is a partial patch; nil fields are left unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	Content     *string
	Language    *string
	Tags        []string // nil means "do not touch tags"; empty clears them
	IsPublic    *bool
}

// Create validates the caller and input, resolves tags, writes the snippet,
// and registers it on the owner's denormalized list. A failed list write
// rolls the snippet (and its tag counts) back and surfaces a conflict.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*Detail, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	tags, err := s.tags.Resolve(ctx, in.Tags)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	sn := &store.Snippet{
		Title:       in.Title,
		Description: in.Description,
		Content:     in.Content,
		Language:    store.NormalizeLanguage(in.Language),
		UserID:      userID,
		IsPublic:    in.IsPublic == nil || *in.IsPublic,
	}
	if err := s.snippets.Create(ctx, sn); err != nil {
		s.tags.Reconcile(ctx, tagIDs(tags), nil)
		return nil, apperror.Internal(fmt.Errorf("create snippet: %w", err))
	}

	if err := s.snippets.ReplaceTagLinks(ctx, sn.ID, tagIDs(tags)); err != nil {
		_ = s.snippets.Delete(ctx, sn.ID)
		s.tags.Reconcile(ctx, tagIDs(tags), nil)
		return nil, apperror.Internal(fmt.Errorf("link tags: %w", err))
	}

	if err := s.sync.OnSnippetCreated(ctx, user, sn.ID); err != nil {
		// The compensating delete already removed the snippet row; the tag
		// counters must follow it back down.
		s.tags.Reconcile(ctx, tagIDs(tags), nil)
		return nil, err
	}

	metrics.SnippetsCreatedTotal.Inc()
	return &Detail{Snippet: sn, Tags: tags, Owner: ownerOf(user)}, nil
}

// Get returns a snippet by id, incrementing its view counter as a side
// effect. Anonymous reads count too.
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	sn, err := s.snippets.IncrementViews(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("snippet")
		}
		return nil, apperror.Internal(err)
	}
	metrics.SnippetViewsTotal.Inc()
	return s.detail(ctx, sn)
}

// Update applies a partial patch to a snippet owned by userID. A snippet
// that does not exist or belongs to someone else reports not-found either
// way. When the patch carries tags, counters move only through Reconcile so
// kept tags are not double-counted.
func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (*Detail, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if err := validateUpdate(in); err != nil {
		return nil, err
	}

	sn, err := s.snippets.GetOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("snippet")
		}
		return nil, apperror.Internal(err)
	}

	if in.Tags != nil {
		oldTags, err := s.snippets.TagsFor(ctx, id)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		newTags, err := s.tags.UpsertAll(ctx, in.Tags)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if err := s.snippets.ReplaceTagLinks(ctx, id, tagIDs(newTags)); err != nil {
			return nil, apperror.Internal(err)
		}
		s.tags.Reconcile(ctx, tagIDs(oldTags), tagIDs(newTags))
	}

	if in.Title != nil {
		sn.Title = *in.Title
	}
	if in.Description != nil {
		sn.Description = *in.Description
	}
	if in.Content != nil {
		sn.Content = *in.Content
	}
	if in.Language != nil {
		sn.Language = store.NormalizeLanguage(*in.Language)
	}
	if in.IsPublic != nil {
		sn.IsPublic = *in.IsPublic
	}

	if err := s.snippets.Update(ctx, sn); err != nil {
		return nil, apperror.Internal(err)
	}
	return s.detail(ctx, sn)
}

// Delete removes a snippet owned by userID, cascading tag-usage decrements
// and the owner-list removal. The list update runs after the row delete; see
// ConsistencyManager for the ordering rationale.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := validateUserID(userID); err != nil {
		return err
	}

	if _, err := s.snippets.GetOwned(ctx, id, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("snippet")
		}
		return apperror.Internal(err)
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	oldTags, err := s.snippets.TagsFor(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}

	if err := s.snippets.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	s.tags.Reconcile(ctx, tagIDs(oldTags), nil)
	metrics.SnippetsDeletedTotal.Inc()

	return s.sync.OnSnippetDeleted(ctx, user, id)
}

// List returns public snippets matching the filter, paginated.
func (s *Service) List(ctx context.Context, f ListFilter, page PageRequest) (*ListResult, error) {
	return s.list(ctx, store.SnippetFilter{
		Search:   f.Search,
		Tags:     f.Tags,
		Language: f.Language,
		Sort:     f.Sort,
	}, page)
}

// ListByUser returns all snippets owned by userID, public or private,
// matching the filter.
func (s *Service) ListByUser(ctx context.Context, userID string, f ListFilter, page PageRequest) (*ListResult, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.list(ctx, store.SnippetFilter{
		Search:   f.Search,
		Tags:     f.Tags,
		Language: f.Language,
		OwnerID:  userID,
		Sort:     f.Sort,
	}, page)
}

// ListPopular returns up to limit public snippets by view count descending.
func (s *Service) ListPopular(ctx context.Context, limit int) ([]*Detail, error) {
	return s.listTop(ctx, store.SortPopular, limit)
}

// ListRecent returns up to limit public snippets by creation time descending.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Detail, error) {
	return s.listTop(ctx, store.SortRecent, limit)
}

// SetSaved bookmarks (add=true) or un-bookmarks a snippet for userID. Both
// directions are idempotent.
func (s *Service) SetSaved(ctx context.Context, userID, snippetID string, add bool) error {
	if err := validateUserID(userID); err != nil {
		return err
	}
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}
	if _, err := s.snippets.GetByID(ctx, snippetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("snippet")
		}
		return apperror.Internal(err)
	}

	if add {
		err = s.saved.Save(ctx, userID, snippetID)
	} else {
		err = s.saved.Unsave(ctx, userID, snippetID)
	}
	if err != nil {
		return apperror.Internal(err)
	}

	return s.sync.OnSnippetSaved(ctx, user)
}

// IsSaved reports whether userID has bookmarked snippetID.
func (s *Service) IsSaved(ctx context.Context, userID, snippetID string) (bool, error) {
	if err := validateUserID(userID); err != nil {
		return false, err
	}
	saved, err := s.saved.IsSaved(ctx, userID, snippetID)
	if err != nil {
		return false, apperror.Internal(err)
	}
	return saved, nil
}

// ListSaved returns the snippets userID has bookmarked, matching the filter.
// Without a search the page follows save order, most recent first.
func (s *Service) ListSaved(ctx context.Context, userID string, f ListFilter, page PageRequest) (*ListResult, error) {
	if err := validateUserID(userID); err != nil {
		return nil, err
	}
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.list(ctx, store.SnippetFilter{
		Search:   f.Search,
		Tags:     f.Tags,
		Language: f.Language,
		SavedBy:  userID,
	}, page)
}

func (s *Service) list(ctx context.Context, f store.SnippetFilter, page PageRequest) (*ListResult, error) {
	page = page.normalize()
	if f.Search != "" {
		metrics.SearchesTotal.Inc()
	}

	rows, total, err := s.snippets.List(ctx, f, page.Page, page.Limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	details, err := s.details(ctx, rows)
	if err != nil {
		return nil, err
	}
	return &ListResult{
		Snippets:   details,
		Pagination: NewPagination(total, page.Page, page.Limit),
	}, nil
}

func (s *Service) listTop(ctx context.Context, sort store.Sort, limit int) ([]*Detail, error) {
	limit = PageRequest{Limit: limit}.normalize().Limit
	rows, err := s.snippets.ListTop(ctx, sort, limit)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return s.details(ctx, rows)
}

// detail attaches tags and the owner to a single snippet.
func (s *Service) detail(ctx context.Context, sn *store.Snippet) (*Detail, error) {
	tags, err := s.snippets.TagsFor(ctx, sn.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	owners, err := s.users.GetByIDs(ctx, []string{sn.UserID})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &Detail{Snippet: sn, Tags: tags, Owner: ownerOf(owners[sn.UserID])}, nil
}

// details attaches tags and owners to a listing, fetching all owners in one
// round trip.
func (s *Service) details(ctx context.Context, rows []*store.Snippet) ([]*Detail, error) {
	userIDs := make([]string, 0, len(rows))
	seen := make(map[string]bool, len(rows))
	for _, sn := range rows {
		if !seen[sn.UserID] {
			seen[sn.UserID] = true
			userIDs = append(userIDs, sn.UserID)
		}
	}
	owners, err := s.users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	details := make([]*Detail, 0, len(rows))
	for _, sn := range rows {
		tags, err := s.snippets.TagsFor(ctx, sn.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		details = append(details, &Detail{Snippet: sn, Tags: tags, Owner: ownerOf(owners[sn.UserID])})
	}
	return details, nil
}

func (s *Service) findUser(ctx context.Context, userID string) (*store.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, apperror.Internal(err)
	}
	return user, nil
}

func ownerOf(u *store.User) *Owner {
	if u == nil {
		return nil
	}
	return &Owner{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

func validateUserID(userID string) error {
	if !store.IsValidID(userID) {
		return apperror.Validation("userId", "invalid user ID")
	}
	return nil
}

func validateCreate(in CreateInput) error {
	if in.Title == "" {
		return apperror.Validation("title", "title is required")
	}
	if len(in.Title) > store.MaxTitleLen {
		return apperror.Validation("title", "title must be at most 100 characters")
	}
	if len(in.Description) > store.MaxDescriptionLen {
		return apperror.Validation("description", "description must be at most 500 characters")
	}
	if in.Content == "" {
		return apperror.Validation("content", "content is required")
	}
	if store.NormalizeLanguage(in.Language) == "" {
		return apperror.Validation("programmingLanguage", "programming language is required")
	}
	return nil
}

func validateUpdate(in UpdateInput) error {
	if in.Title != nil {
		if *in.Title == "" {
			return apperror.Validation("title", "title cannot be empty")
		}
		if len(*in.Title) > store.MaxTitleLen {
			return apperror.Validation("title", "title must be at most 100 characters")
		}
	}
	if in.Description != nil && len(*in.Description) > store.MaxDescriptionLen {
		return apperror.Validation("description", "description must be at most 500 characters")
	}
	if in.Content != nil && *in.Content == "" {
		return apperror.Validation("content", "content cannot be empty")
	}
	if in.Language != nil && store.NormalizeLanguage(*in.Language) == "" {
		return apperror.Validation("programmingLanguage", "programming language cannot be empty")
	}
	return nil
}
