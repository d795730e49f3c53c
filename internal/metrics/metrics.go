// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SnippetsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codecache_snippets_created_total",
		Help: "Snippets successfully created.",
	})

	SnippetsDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codecache_snippets_deleted_total",
		Help: "Snippets deleted by their owners.",
	})

	SnippetViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codecache_snippet_views_total",
		Help: "Snippet reads, each of which increments the stored view counter.",
	})

	SearchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codecache_searches_total",
		Help: "Snippet listings that carried a free-text search term.",
	})

	TagsGarbageCollectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codecache_tags_garbage_collected_total",
		Help: "Zero-usage tags removed during tag reconciliation.",
	})

	TagWriteSkipsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codecache_tag_write_skips_total",
		Help: "Individual tag updates skipped after a persistence error during best-effort batch resolution.",
	})

	ConsistencyRollbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "codecache_consistency_rollbacks_total",
		Help: "Compensating snippet deletions triggered by a failed user-list update.",
	})
)
