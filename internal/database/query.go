package database

import (
	"strings"
)

// CategoryAll is the category filter value that disables category filtering
const CategoryAll = "all"

// ArticleFilter narrows an article listing. Empty fields do not filter.
type ArticleFilter struct {
	// SearchText matches case-insensitively anywhere in title, content or category.
	SearchText string
	// Category matches exactly unless it is empty or CategoryAll.
	Category string
}

// ArticleQuery composes a filter with a window over the ordered result set.
// Results are ordered newest first with id as the tie-breaker, so the order is
// total and stable across repeated calls.
type ArticleQuery struct {
	Filter ArticleFilter
	Limit  int
	Offset int
}

const articleOrder = ` ORDER BY date_posted DESC, id DESC`

// where builds the WHERE clause and its arguments with '?' placeholders
func (f ArticleFilter) where() (string, []any) {
	var clauses []string
	var args []any

	if text := strings.TrimSpace(f.SearchText); text != "" {
		// both sides fold inside the database so the driver's LOWER decides
		pattern := "%" + escapeLike(text) + "%"
		clauses = append(clauses,
			`(LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(content) LIKE LOWER(?) ESCAPE '\' OR LOWER(category) LIKE LOWER(?) ESCAPE '\')`)
		args = append(args, pattern, pattern, pattern)
	}

	if f.Category != "" && f.Category != CategoryAll {
		clauses = append(clauses, `category = ?`)
		args = append(args, f.Category)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// listSQL returns the summary listing statement for the query
func (q ArticleQuery) listSQL() (string, []any) {
	where, args := q.Filter.where()

	var b strings.Builder
	b.WriteString(`SELECT id, title, category, date_posted FROM articles`)
	b.WriteString(where)
	b.WriteString(articleOrder)
	if q.Limit > 0 {
		b.WriteString(` LIMIT ? OFFSET ?`)
		args = append(args, q.Limit, q.Offset)
	}
	return b.String(), args
}

// countSQL returns the statement counting every row the filter matches
func (f ArticleFilter) countSQL() (string, []any) {
	where, args := f.where()
	return `SELECT COUNT(*) FROM articles` + where, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike neutralizes LIKE wildcards so user text matches literally
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
