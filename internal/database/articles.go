package database

import (
	"context"
	"time"

	"github.com/Effiong06/Agri-Naija-Centre/internal/database/models"
)

// CreateArticle inserts a new article and assigns its ID. A zero DatePosted
// defaults to the current time.
func (d *Database) CreateArticle(ctx context.Context, article *models.Article) error {
	if article.DatePosted.IsZero() {
		article.DatePosted = time.Now()
	}
	article.DatePosted = dbTime(article.DatePosted)

	query := d.rebind(`INSERT INTO articles (title, content, category, date_posted)
	          VALUES (?, ?, ?, ?) RETURNING id`)

	err := d.db.QueryRowContext(ctx, query,
		article.Title, article.Content, article.Category, article.DatePosted,
	).Scan(&article.ID)
	return translateError(err)
}

// GetArticle retrieves an article by ID
func (d *Database) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	query := d.rebind(`SELECT id, title, content, category, date_posted FROM articles WHERE id = ?`)

	var article models.Article
	err := d.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.Title, &article.Content, &article.Category, &article.DatePosted,
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &article, nil
}

// UpdateArticle replaces all fields of an existing article in a single statement
func (d *Database) UpdateArticle(ctx context.Context, article *models.Article) error {
	article.DatePosted = dbTime(article.DatePosted)

	query := d.rebind(`UPDATE articles SET title = ?, content = ?, category = ?, date_posted = ? WHERE id = ?`)

	res, err := d.db.ExecContext(ctx, query,
		article.Title, article.Content, article.Category, article.DatePosted, article.ID,
	)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}

// DeleteArticle deletes an article by ID
func (d *Database) DeleteArticle(ctx context.Context, id int64) error {
	res, err := d.db.ExecContext(ctx, d.rebind(`DELETE FROM articles WHERE id = ?`), id)
	if err != nil {
		return translateError(err)
	}
	return requireAffected(res)
}

// ListArticleSummaries runs an article query and returns the matching summaries
func (d *Database) ListArticleSummaries(ctx context.Context, q ArticleQuery) ([]models.ArticleSummary, error) {
	query, args := q.listSQL()

	rows, err := d.db.QueryContext(ctx, d.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]models.ArticleSummary, 0, q.Limit)
	for rows.Next() {
		var s models.ArticleSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.Category, &s.DatePosted); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// CountArticles returns how many articles match the filter
func (d *Database) CountArticles(ctx context.Context, f ArticleFilter) (int, error) {
	query, args := f.countSQL()

	var count int
	err := d.db.QueryRowContext(ctx, d.rebind(query), args...).Scan(&count)
	return count, err
}
