package store

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"    // dialect import
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3" // dialect import
	"github.com/doug-martin/goqu/v9/exp"
)

// Sort selects the ordering of snippet listings. The zero value preserves
// creation order. When a free-text search is active the relevance score
// takes precedence over any requested sort.
type Sort int

const (
	SortCreation Sort = iota // created_at ascending (insertion order)
	SortPopular              // view_count descending
	SortRecent               // created_at descending
)

// SnippetFilter is the set of optional predicates a snippet listing can apply.
// OwnerID restricts to a single owner regardless of visibility; without it
// (and without SavedBy) only public snippets match.
type SnippetFilter struct {
	Search   string
	Tags     []string
	Language string // "" or "all" means no language filter
	OwnerID  string
	SavedBy  string // restrict to snippets saved by this user
	Sort     Sort
}

// GoquDialect maps a database/sql driver name to the goqu dialect registered
// for it. The sqlite3 dialect also covers the CGO-free modernc driver.
func GoquDialect(driver string) (goqu.DialectWrapper, error) {
	switch driver {
	case "sqlite3", "sqlite":
		return goqu.Dialect("sqlite3"), nil
	case "postgres":
		return goqu.Dialect("postgres"), nil
	case "mysql":
		return goqu.Dialect("mysql"), nil
	default:
		return goqu.DialectWrapper{}, fmt.Errorf("no goqu dialect for driver %q", driver)
	}
}

// relevanceExpr scores a row against a search term: a title match outweighs a
// description match, which outweighs a content match. The same LIKE patterns
// used for matching feed the score, so ranking stays deterministic across
// backends.
func relevanceExpr(pattern string) exp.LiteralExpression {
	return goqu.L(
		"(CASE WHEN LOWER(title) LIKE ? THEN 4 ELSE 0 END"+
			" + CASE WHEN LOWER(description) LIKE ? THEN 2 ELSE 0 END"+
			" + CASE WHEN LOWER(content) LIKE ? THEN 1 ELSE 0 END)",
		pattern, pattern, pattern,
	)
}

func searchPattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// buildSnippetQuery translates a SnippetFilter into a goqu dataset over the
// snippets table, with all predicates applied but no ordering or paging.
func buildSnippetQuery(dialect goqu.DialectWrapper, f SnippetFilter) *goqu.SelectDataset {
	ds := dialect.From(goqu.T("snippets"))

	switch {
	case f.OwnerID != "":
		ds = ds.Where(goqu.C("user_id").Eq(f.OwnerID))
	case f.SavedBy != "":
		// Join rather than a subquery so the listing can order by the
		// bookmark timestamp.
		ds = ds.Join(
			goqu.T("saved_snippets").As("sv"),
			goqu.On(goqu.I("sv.snippet_id").Eq(goqu.I("snippets.id"))),
		).Where(goqu.I("sv.user_id").Eq(f.SavedBy))
	default:
		ds = ds.Where(goqu.C("is_public").IsTrue())
	}

	if f.Search != "" {
		pattern := searchPattern(f.Search)
		ds = ds.Where(goqu.Or(
			goqu.L("LOWER(title)").Like(pattern),
			goqu.L("LOWER(description)").Like(pattern),
			goqu.L("LOWER(content)").Like(pattern),
		))
	}

	if len(f.Tags) > 0 {
		names := make([]any, 0, len(f.Tags))
		for _, t := range f.Tags {
			names = append(names, NormalizeTagName(t))
		}
		ds = ds.Where(goqu.L("EXISTS ?",
			goqu.From(goqu.T("snippet_tags").As("st")).
				Join(goqu.T("tags").As("t"), goqu.On(goqu.I("t.id").Eq(goqu.I("st.tag_id")))).
				Where(
					goqu.I("st.snippet_id").Eq(goqu.I("snippets.id")),
					goqu.I("t.name").In(names...),
				),
		))
	}

	if lang := NormalizeLanguage(f.Language); lang != "" && lang != "all" {
		ds = ds.Where(goqu.C("language").Eq(lang))
	}

	return ds
}

// applyOrder adds the ordering clause for a listing. Search relevance wins;
// otherwise the requested sort applies, falling back to creation order.
func applyOrder(ds *goqu.SelectDataset, f SnippetFilter) *goqu.SelectDataset {
	if f.Search != "" {
		return ds.Order(
			relevanceExpr(searchPattern(f.Search)).Desc(),
			goqu.C("created_at").Asc(),
		)
	}
	if f.SavedBy != "" {
		return ds.Order(goqu.I("sv.saved_at").Desc())
	}
	switch f.Sort {
	case SortPopular:
		return ds.Order(goqu.C("view_count").Desc(), goqu.C("created_at").Desc())
	case SortRecent:
		return ds.Order(goqu.C("created_at").Desc())
	default:
		return ds.Order(goqu.C("created_at").Asc())
	}
}
