package snippets

import (
	"context"
	"log"

	"github.com/hessennasser/codecache-manager-backend/internal/apperror"
	"github.com/hessennasser/codecache-manager-backend/internal/metrics"
	"github.com/hessennasser/codecache-manager-backend/internal/store"
)

// ConsistencyManager keeps the denormalized snippet-id lists on user records
// in step with the actual snippet rows. The two record types may live in
// different storage engines with no shared transaction, so cross-store
// writes are a two-step saga with an explicit compensation action.
//
// The ordering is deliberately asymmetric. On create, the snippet row is
// written first and a failed list update compensates by deleting it, so a
// failure can never leave a snippet invisible to its owner. On delete, the
// snippet row is removed first and a failed list update leaves an orphaned
// id in the list — a stale pointer, rather than a dangling snippet.
type ConsistencyManager struct {
	users    UserStore
	snippets SnippetStore
	saved    SavedStore
}

func NewConsistencyManager(users UserStore, snippets SnippetStore, saved SavedStore) *ConsistencyManager {
	return &ConsistencyManager{users: users, snippets: snippets, saved: saved}
}

// OnSnippetCreated appends snippetID to the owner's list. If the list write
// fails, the just-created snippet is deleted (best-effort) and the caller
// receives a conflict error.
func (m *ConsistencyManager) OnSnippetCreated(ctx context.Context, user *store.User, snippetID string) error {
	ids := append(store.StringList{}, user.SnippetIDs...)
	if !ids.Contains(snippetID) {
		ids = append(ids, snippetID)
	}

	if err := m.users.SetSnippetIDs(ctx, user.ID, ids); err != nil {
		log.Printf("consistency: snippet list update for user %s failed, rolling back snippet %s: %v",
			user.ID, snippetID, err)
		metrics.ConsistencyRollbacksTotal.Inc()
		if delErr := m.snippets.Delete(ctx, snippetID); delErr != nil {
			log.Printf("consistency: compensating delete of snippet %s failed: %v", snippetID, delErr)
		}
		return apperror.Conflict("failed to update user's snippet list")
	}
	return nil
}

// OnSnippetDeleted removes snippetID from the owner's list after the snippet
// row is already gone. There is no compensation here: a failure leaves an
// orphaned id in the list instead of resurrecting the snippet.
func (m *ConsistencyManager) OnSnippetDeleted(ctx context.Context, user *store.User, snippetID string) error {
	if err := m.users.SetSnippetIDs(ctx, user.ID, user.SnippetIDs.Without(snippetID)); err != nil {
		log.Printf("consistency: snippet list removal for user %s left orphaned id %s: %v",
			user.ID, snippetID, err)
		return apperror.Conflict("failed to update user's snippet list")
	}
	return nil
}

// OnSnippetSaved rebuilds the user's denormalized saved-snippet id list from
// the saved_snippets join table, which is the source of truth. The mirror
// exists for cheap membership checks on the user record; re-deriving it after
// every save or unsave keeps it honest even if an earlier mirror write was
// lost.
func (m *ConsistencyManager) OnSnippetSaved(ctx context.Context, user *store.User) error {
	ids, err := m.saved.ListIDs(ctx, user.ID)
	if err != nil {
		log.Printf("consistency: reading saved snippets for user %s failed: %v", user.ID, err)
		return apperror.Conflict("failed to update user's saved snippet list")
	}
	if err := m.users.SetSavedSnippetIDs(ctx, user.ID, store.StringList(ids)); err != nil {
		return apperror.Conflict("failed to update user's saved snippet list")
	}
	return nil
}
