package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Effiong06/Agri-Naija-Centre/internal/config"
	"github.com/Effiong06/Agri-Naija-Centre/internal/database"
	"github.com/Effiong06/Agri-Naija-Centre/internal/database/models"
)

// MaxPageSize bounds the page size callers may request
const MaxPageSize = 100

// ArticleFilter narrows article listings
type ArticleFilter = database.ArticleFilter

// ArticlePage is one page of an article listing
type ArticlePage struct {
	Items      []models.ArticleSummary `json:"items"`
	TotalCount int                     `json:"total_count"`
	PageCount  int                     `json:"page_count"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
}

// HasPrev reports whether a page precedes this one
func (p *ArticlePage) HasPrev() bool {
	return p.Page > 1 && p.PageCount > 0
}

// HasNext reports whether a page follows this one
func (p *ArticlePage) HasNext() bool {
	return p.Page < p.PageCount
}

// PrevPage returns the previous page number
func (p *ArticlePage) PrevPage() int {
	if p.Page-1 > p.PageCount {
		return p.PageCount
	}
	return p.Page - 1
}

// NextPage returns the next page number
func (p *ArticlePage) NextPage() int {
	return p.Page + 1
}

// HomePage is the content of the landing page
type HomePage struct {
	Featured *models.ArticleSummary
	Latest   []models.ArticleSummary
}

// ArticleService serves the public reading surface and article management
type ArticleService struct {
	db         *database.Database
	cfg        *config.Config
	categories []string
	gate       sessionGate
	logger     *zap.Logger
}

// NewArticleService creates a new article service
func NewArticleService(db *database.Database, cfg *config.Config, logger *zap.Logger) *ArticleService {
	return &ArticleService{
		db:         db,
		cfg:        cfg,
		categories: cfg.Content.Categories,
		gate:       newSessionGate(db),
		logger:     logger,
	}
}

// Categories returns the configured category enumeration
func (s *ArticleService) Categories() []string {
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// ListArticles returns one page of articles matching the filter, newest first
func (s *ArticleService) ListArticles(ctx context.Context, filter ArticleFilter, page, pageSize int) (*ArticlePage, error) {
	if page < 1 {
		return nil, fieldError("page", "page must be at least 1")
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, fieldError("page_size", fmt.Sprintf("page size must be between 1 and %d", MaxPageSize))
	}

	total, err := s.db.CountArticles(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	result := &ArticlePage{
		Items:      []models.ArticleSummary{},
		TotalCount: total,
		PageCount:  (total + pageSize - 1) / pageSize,
		Page:       page,
		PageSize:   pageSize,
	}

	offset := (page - 1) * pageSize
	if offset >= total {
		return result, nil
	}

	items, err := s.db.ListArticleSummaries(ctx, database.ArticleQuery{
		Filter: filter,
		Limit:  pageSize,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	result.Items = items
	return result, nil
}

// GetArticle returns a full article. A missing article is ErrNotFound.
func (s *ArticleService) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	article, err := s.db.GetArticle(ctx, id)
	if err != nil {
		if err = storeError(err); err == ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return article, nil
}

// ListRecent returns the newest articles
func (s *ArticleService) ListRecent(ctx context.Context, limit int) ([]models.ArticleSummary, error) {
	if limit < 1 {
		return nil, fieldError("limit", "limit must be at least 1")
	}

	items, err := s.db.ListArticleSummaries(ctx, database.ArticleQuery{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list recent articles: %w", err)
	}
	return items, nil
}

// Home returns the newest article as the featured one and the next few as latest
func (s *ArticleService) Home(ctx context.Context) (*HomePage, error) {
	recent, err := s.ListRecent(ctx, s.cfg.Content.RecentLimit)
	if err != nil {
		return nil, err
	}

	home := &HomePage{Latest: []models.ArticleSummary{}}
	if len(recent) > 0 {
		home.Featured = &recent[0]
		home.Latest = recent[1:]
	}
	return home, nil
}

// ListManaged returns a page of articles for the management surface
func (s *ArticleService) ListManaged(ctx context.Context, session *models.Session, filter ArticleFilter, page, pageSize int) (*ArticlePage, error) {
	if _, err := s.gate.authorize(ctx, session, false); err != nil {
		return nil, err
	}
	return s.ListArticles(ctx, filter, page, pageSize)
}

// GetManaged returns one article for the management surface
func (s *ArticleService) GetManaged(ctx context.Context, session *models.Session, id int64) (*models.Article, error) {
	if _, err := s.gate.authorize(ctx, session, false); err != nil {
		return nil, err
	}
	return s.GetArticle(ctx, id)
}

// CreateArticle publishes a new article. A missing date defaults to now.
func (s *ArticleService) CreateArticle(ctx context.Context, session *models.Session, in ArticleInput) (*models.Article, error) {
	actor, err := s.gate.authorize(ctx, session, false)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := in.validate(s.categories); err != nil {
		return nil, err
	}

	article := &models.Article{
		Title:    in.Title,
		Content:  in.Content,
		Category: in.Category,
	}
	if in.DatePosted != nil {
		article.DatePosted = *in.DatePosted
	} else {
		article.DatePosted = s.gate.now()
	}

	if err := s.db.CreateArticle(ctx, article); err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	s.logger.Info("Article created",
		zap.Int64("article_id", article.ID),
		zap.String("category", article.Category),
		zap.String("created_by", actor.Username),
	)
	return article, nil
}

// UpdateArticle replaces an article's fields. A missing date keeps the
// original posting date.
func (s *ArticleService) UpdateArticle(ctx context.Context, session *models.Session, id int64, in ArticleInput) (*models.Article, error) {
	actor, err := s.gate.authorize(ctx, session, false)
	if err != nil {
		return nil, err
	}

	in.normalize()
	if err := in.validate(s.categories); err != nil {
		return nil, err
	}

	article, err := s.db.GetArticle(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}

	article.Title = in.Title
	article.Content = in.Content
	article.Category = in.Category
	if in.DatePosted != nil {
		article.DatePosted = *in.DatePosted
	}

	if err := s.db.UpdateArticle(ctx, article); err != nil {
		return nil, storeError(err)
	}

	s.logger.Info("Article updated",
		zap.Int64("article_id", article.ID),
		zap.String("updated_by", actor.Username),
	)
	return article, nil
}

// DeleteArticle removes an article
func (s *ArticleService) DeleteArticle(ctx context.Context, session *models.Session, id int64) error {
	actor, err := s.gate.authorize(ctx, session, false)
	if err != nil {
		return err
	}

	if err := s.db.DeleteArticle(ctx, id); err != nil {
		return storeError(err)
	}

	s.logger.Info("Article deleted",
		zap.Int64("article_id", id),
		zap.String("deleted_by", actor.Username),
	)
	return nil
}
