package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArticleFilterWhere(t *testing.T) {
	tests := []struct {
		name      string
		filter    ArticleFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:   "empty filter",
			filter: ArticleFilter{},
		},
		{
			name:   "whitespace search and all category",
			filter: ArticleFilter{SearchText: "   ", Category: CategoryAll},
		},
		{
			name:      "category only",
			filter:    ArticleFilter{Category: "Livestock"},
			wantWhere: " WHERE category = ?",
			wantArgs:  []any{"Livestock"},
		},
		{
			name:      "search text is escaped and folded in SQL",
			filter:    ArticleFilter{SearchText: "50%_Off"},
			wantWhere: ` WHERE (LOWER(title) LIKE LOWER(?) ESCAPE '\' OR LOWER(content) LIKE LOWER(?) ESCAPE '\' OR LOWER(category) LIKE LOWER(?) ESCAPE '\')`,
			wantArgs:  []any{`%50\%\_Off%`, `%50\%\_Off%`, `%50\%\_Off%`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.where()
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestArticleQuerySQL(t *testing.T) {
	q := ArticleQuery{Filter: ArticleFilter{Category: "Fisheries"}, Limit: 10, Offset: 20}

	query, args := q.listSQL()
	assert.Equal(t, "SELECT id, title, category, date_posted FROM articles WHERE category = ? ORDER BY date_posted DESC, id DESC LIMIT ? OFFSET ?", query)
	assert.Equal(t, []any{"Fisheries", 10, 20}, args)

	count, countArgs := q.Filter.countSQL()
	assert.Equal(t, "SELECT COUNT(*) FROM articles WHERE category = ?", count)
	assert.Equal(t, []any{"Fisheries"}, countArgs)
}

func TestRebind(t *testing.T) {
	query := "SELECT * FROM articles WHERE category = ? LIMIT ? OFFSET ?"

	sqlite := &Database{dbType: "sqlite"}
	assert.Equal(t, query, sqlite.rebind(query))

	postgres := &Database{dbType: "postgres"}
	assert.Equal(t, "SELECT * FROM articles WHERE category = $1 LIMIT $2 OFFSET $3", postgres.rebind(query))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `a\\b\%c\_d`, escapeLike(`a\b%c_d`))
	assert.Equal(t, "plain", escapeLike("plain"))
}
