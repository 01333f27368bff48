package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Effiong06/Agri-Naija-Centre/internal/database"
	"github.com/Effiong06/Agri-Naija-Centre/internal/database/models"
)

// seedArticles stores n articles one hour apart, cycling through the categories
func seedArticles(t *testing.T, ts *testServices, n int) []*models.Article {
	t.Helper()
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	categories := ts.cfg.Content.Categories

	out := make([]*models.Article, 0, n)
	for i := 0; i < n; i++ {
		article := &models.Article{
			Title:      fmt.Sprintf("Article %02d", i),
			Content:    "Body",
			Category:   categories[i%len(categories)],
			DatePosted: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, ts.db.CreateArticle(context.Background(), article))
		out = append(out, article)
	}
	return out
}

func TestArticleService_ListArticles_Pagination(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	seedArticles(t, ts, 23)

	for _, pageSize := range []int{1, 5, 10, 23, 50} {
		t.Run(fmt.Sprintf("page size %d", pageSize), func(t *testing.T) {
			first, err := ts.articles.ListArticles(ctx, ArticleFilter{}, 1, pageSize)
			require.NoError(t, err)
			assert.Equal(t, 23, first.TotalCount)
			wantPages := (23 + pageSize - 1) / pageSize
			assert.Equal(t, wantPages, first.PageCount)

			seen := 0
			var prev *models.ArticleSummary
			for page := 1; page <= first.PageCount; page++ {
				result, err := ts.articles.ListArticles(ctx, ArticleFilter{}, page, pageSize)
				require.NoError(t, err)
				assert.LessOrEqual(t, len(result.Items), pageSize)
				assert.NotEmpty(t, result.Items)
				for i := range result.Items {
					item := result.Items[i]
					if prev != nil {
						assert.False(t, item.DatePosted.After(prev.DatePosted), "listing must be newest first")
					}
					prev = &item
				}
				seen += len(result.Items)
			}
			assert.Equal(t, 23, seen)

			beyond, err := ts.articles.ListArticles(ctx, ArticleFilter{}, first.PageCount+1, pageSize)
			require.NoError(t, err)
			assert.Empty(t, beyond.Items)
			assert.Equal(t, 23, beyond.TotalCount)
		})
	}
}

func TestArticleService_ListArticles_Validation(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		page     int
		pageSize int
		field    string
	}{
		{"zero page", 0, 10, "page"},
		{"negative page", -3, 10, "page"},
		{"zero page size", 1, 0, "page_size"},
		{"page size too large", 1, MaxPageSize + 1, "page_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.articles.ListArticles(ctx, ArticleFilter{}, tt.page, tt.pageSize)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Messages(), tt.field)
		})
	}
}

func TestArticleService_ListArticles_Empty(t *testing.T) {
	ts := newTestServices(t)

	result, err := ts.articles.ListArticles(context.Background(), ArticleFilter{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalCount)
	assert.Equal(t, 0, result.PageCount)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.False(t, result.HasNext())
	assert.False(t, result.HasPrev())
}

func TestArticleService_SearchScenario(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	article := &models.Article{Title: "Soil pH Basics", Content: "Lime raises acidity levels.", Category: "Soil and Irrigation"}
	require.NoError(t, ts.db.CreateArticle(ctx, article))

	found, err := ts.articles.ListArticles(ctx, ArticleFilter{SearchText: "ph"}, 1, 10)
	require.NoError(t, err)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Soil pH Basics", found.Items[0].Title)

	none, err := ts.articles.ListArticles(ctx, ArticleFilter{Category: "Livestock Management"}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, none.Items)

	both, err := ts.articles.ListArticles(ctx, ArticleFilter{SearchText: "IRRIGATION", Category: "Soil and Irrigation"}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, both.Items, 1)

	all, err := ts.articles.ListArticles(ctx, ArticleFilter{Category: database.CategoryAll}, 1, 10)
	require.NoError(t, err)
	assert.Len(t, all.Items, 1)
}

func TestArticleService_OrderIsStable(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	same := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		require.NoError(t, ts.db.CreateArticle(ctx, &models.Article{
			Title: fmt.Sprintf("Tied %d", i), Content: "c", Category: "Aquaculture", DatePosted: same,
		}))
	}

	first, err := ts.articles.ListRecent(ctx, 4)
	require.NoError(t, err)
	second, err := ts.articles.ListRecent(ctx, 4)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.Greater(t, first[i-1].ID, first[i].ID)
	}
}

func TestArticleService_GetArticle(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	articles := seedArticles(t, ts, 1)

	got, err := ts.articles.GetArticle(ctx, articles[0].ID)
	require.NoError(t, err)
	assert.Equal(t, articles[0].Title, got.Title)
	assert.Equal(t, "Body", got.Content)

	_, err = ts.articles.GetArticle(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArticleService_Home(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	home, err := ts.articles.Home(ctx)
	require.NoError(t, err)
	assert.Nil(t, home.Featured)
	assert.Empty(t, home.Latest)

	seedArticles(t, ts, 5)

	home, err = ts.articles.Home(ctx)
	require.NoError(t, err)
	require.NotNil(t, home.Featured)
	assert.Equal(t, "Article 04", home.Featured.Title)
	require.Len(t, home.Latest, ts.cfg.Content.RecentLimit-1)
	assert.Equal(t, "Article 03", home.Latest[0].Title)
	assert.Equal(t, "Article 02", home.Latest[1].Title)

	_, err = ts.articles.ListRecent(ctx, 0)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestArticleService_Management(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()
	session := ts.login(t, "editor")

	t.Run("Create defaults the posting date", func(t *testing.T) {
		before := time.Now().Add(-time.Second)
		article, err := ts.articles.CreateArticle(ctx, session, ArticleInput{
			Title: "  Fish feed  ", Content: "<p>Pellets</p>", Category: "Aquaculture",
		})
		require.NoError(t, err)
		assert.Equal(t, "Fish feed", article.Title)
		assert.True(t, article.DatePosted.After(before))
	})

	t.Run("Create keeps an explicit posting date", func(t *testing.T) {
		posted := time.Date(2023, 12, 25, 10, 0, 0, 0, time.UTC)
		article, err := ts.articles.CreateArticle(ctx, session, ArticleInput{
			Title: "Harvest", Content: "c", Category: "Crop Farming", DatePosted: &posted,
		})
		require.NoError(t, err)

		got, err := ts.articles.GetManaged(ctx, session, article.ID)
		require.NoError(t, err)
		assert.True(t, posted.Equal(got.DatePosted))
	})

	t.Run("Create validates fields and category", func(t *testing.T) {
		_, err := ts.articles.CreateArticle(ctx, session, ArticleInput{
			Title: "", Content: "   ", Category: "Space Farming",
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		messages := verr.Messages()
		assert.Contains(t, messages, "title")
		assert.Contains(t, messages, "content")
		assert.Contains(t, messages, "category")
	})

	t.Run("Create rejects overlong titles", func(t *testing.T) {
		long := make([]rune, 101)
		for i := range long {
			long[i] = 'a'
		}
		_, err := ts.articles.CreateArticle(ctx, session, ArticleInput{
			Title: string(long), Content: "c", Category: "Aquaculture",
		})
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Messages(), "title")
	})

	t.Run("Update keeps the date when none is given", func(t *testing.T) {
		posted := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
		article, err := ts.articles.CreateArticle(ctx, session, ArticleInput{
			Title: "Old", Content: "c", Category: "Aquaculture", DatePosted: &posted,
		})
		require.NoError(t, err)

		updated, err := ts.articles.UpdateArticle(ctx, session, article.ID, ArticleInput{
			Title: "New", Content: "c2", Category: "Market Analysis",
		})
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Title)
		assert.True(t, posted.Equal(updated.DatePosted))

		got, err := ts.articles.GetArticle(ctx, article.ID)
		require.NoError(t, err)
		assert.Equal(t, "Market Analysis", got.Category)
	})

	t.Run("Update missing article", func(t *testing.T) {
		_, err := ts.articles.UpdateArticle(ctx, session, 9999, ArticleInput{Title: "t", Content: "c", Category: "Aquaculture"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete article", func(t *testing.T) {
		article, err := ts.articles.CreateArticle(ctx, session, ArticleInput{Title: "Temp", Content: "c", Category: "Aquaculture"})
		require.NoError(t, err)

		require.NoError(t, ts.articles.DeleteArticle(ctx, session, article.ID))
		assert.ErrorIs(t, ts.articles.DeleteArticle(ctx, session, article.ID), ErrNotFound)
	})

	t.Run("List managed articles", func(t *testing.T) {
		page, err := ts.articles.ListManaged(ctx, session, ArticleFilter{}, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 3, page.TotalCount)
	})

	t.Run("Anonymous writes are rejected and not applied", func(t *testing.T) {
		_, err := ts.articles.CreateArticle(ctx, nil, ArticleInput{Title: "Spam", Content: "c", Category: "Aquaculture"})
		assert.ErrorIs(t, err, ErrUnauthenticated)

		_, err = ts.articles.ListManaged(ctx, nil, ArticleFilter{}, 1, 10)
		assert.ErrorIs(t, err, ErrUnauthenticated)

		assert.ErrorIs(t, ts.articles.DeleteArticle(ctx, nil, 1), ErrUnauthenticated)

		count, err := ts.db.CountArticles(ctx, ArticleFilter{SearchText: "Spam"})
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})
}

func TestArticleService_Categories(t *testing.T) {
	ts := newTestServices(t)

	categories := ts.articles.Categories()
	assert.Equal(t, ts.cfg.Content.Categories, categories)

	categories[0] = "mutated"
	assert.NotEqual(t, "mutated", ts.articles.Categories()[0])
}

func TestArticlePage_Navigation(t *testing.T) {
	page := &ArticlePage{Page: 2, PageCount: 3}
	assert.True(t, page.HasPrev())
	assert.True(t, page.HasNext())
	assert.Equal(t, 1, page.PrevPage())
	assert.Equal(t, 3, page.NextPage())

	beyond := &ArticlePage{Page: 9, PageCount: 3}
	assert.False(t, beyond.HasNext())
	assert.Equal(t, 3, beyond.PrevPage())
}
