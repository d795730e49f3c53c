package snippets

import (
	"context"
	"log"

	"github.com/hessennasser/codecache-manager-backend/internal/metrics"
	"github.com/hessennasser/codecache-manager-backend/internal/store"
)

// TagRegistry finds-or-creates tags and keeps their usage counters equal to
// the number of live snippets referencing them. Counter moves are atomic SQL
// increments; read-modify-write would under-count under concurrent writers.
//
// Batch operations are best-effort: a persistence error on one tag is logged
// and that tag skipped rather than aborting the whole batch. A skipped tag
// leaves its counter stale until the next reconciliation touches it.
type TagRegistry struct {
	tags TagStore
}

func NewTagRegistry(tags TagStore) *TagRegistry {
	return &TagRegistry{tags: tags}
}

// Resolve case-folds, trims, and de-duplicates names, find-or-creates each
// tag, and increments its usage counter by one. Used on snippet creation,
// where every resolved tag gains exactly one referencing snippet.
func (r *TagRegistry) Resolve(ctx context.Context, names []string) ([]*store.Tag, error) {
	resolved := make([]*store.Tag, 0, len(names))
	for _, name := range store.NormalizeTagNames(names) {
		tag, err := r.tags.Upsert(ctx, name)
		if err != nil {
			log.Printf("tag registry: upsert %q failed, skipping: %v", name, err)
			metrics.TagWriteSkipsTotal.Inc()
			continue
		}
		if err := r.tags.AdjustUsage(ctx, tag.ID, 1); err != nil {
			log.Printf("tag registry: increment %q failed, skipping: %v", name, err)
			metrics.TagWriteSkipsTotal.Inc()
			continue
		}
		tag.UsageCount++
		resolved = append(resolved, tag)
	}
	return resolved, nil
}

// UpsertAll find-or-creates each normalized name without touching usage
// counters. Snippet updates use it so that Reconcile is the single place
// counters move, keeping kept tags from being counted twice.
func (r *TagRegistry) UpsertAll(ctx context.Context, names []string) ([]*store.Tag, error) {
	tags := make([]*store.Tag, 0, len(names))
	for _, name := range store.NormalizeTagNames(names) {
		tag, err := r.tags.Upsert(ctx, name)
		if err != nil {
			log.Printf("tag registry: upsert %q failed, skipping: %v", name, err)
			metrics.TagWriteSkipsTotal.Inc()
			continue
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// Reconcile moves usage counters from one tag-id set to another: tags leaving
// the set are decremented, tags entering it are incremented, and every tag
// whose counter reached zero is deleted afterwards.
func (r *TagRegistry) Reconcile(ctx context.Context, oldIDs, newIDs []string) {
	oldSet := toSet(oldIDs)
	newSet := toSet(newIDs)

	for id := range oldSet {
		if newSet[id] {
			continue
		}
		if err := r.tags.AdjustUsage(ctx, id, -1); err != nil {
			log.Printf("tag registry: decrement %s failed, skipping: %v", id, err)
			metrics.TagWriteSkipsTotal.Inc()
		}
	}
	for id := range newSet {
		if oldSet[id] {
			continue
		}
		if err := r.tags.AdjustUsage(ctx, id, 1); err != nil {
			log.Printf("tag registry: increment %s failed, skipping: %v", id, err)
			metrics.TagWriteSkipsTotal.Inc()
		}
	}

	n, err := r.tags.DeleteUnused(ctx)
	if err != nil {
		log.Printf("tag registry: garbage collection failed: %v", err)
		return
	}
	if n > 0 {
		metrics.TagsGarbageCollectedTotal.Add(float64(n))
	}
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func tagIDs(tags []*store.Tag) []string {
	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	return ids
}
