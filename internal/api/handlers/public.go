package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Effiong06/Agri-Naija-Centre/internal/cache"
	"github.com/Effiong06/Agri-Naija-Centre/internal/config"
	"github.com/Effiong06/Agri-Naija-Centre/internal/service"
	"github.com/Effiong06/Agri-Naija-Centre/internal/web"
)

// HomeCacheKey is the page cache key of the landing page
const HomeCacheKey = "home"

// PublicHandler serves the public reading surface
type PublicHandler struct {
	page
	articles *service.ArticleService
	cache    *cache.PageCache
	cfg      *config.Config
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(articles *service.ArticleService, pages *cache.PageCache, renderer *web.Renderer, cfg *config.Config, logger *zap.Logger) *PublicHandler {
	return &PublicHandler{
		page:     page{renderer: renderer, logger: logger},
		articles: articles,
		cache:    pages,
		cfg:      cfg,
	}
}

// Home renders the landing page from the page cache. A pending flash notice
// bypasses the cache so the notice is never stored or shown to others.
func (h *PublicHandler) Home(c *gin.Context) {
	if hasFlash(c) {
		home, err := h.articles.Home(c.Request.Context())
		if err != nil {
			h.serverError(c, err)
			return
		}
		h.render(c, http.StatusOK, web.PageIndex, pageData{"Home": home})
		return
	}

	body, err := h.cache.GetOrRender(c.Request.Context(), HomeCacheKey, h.cfg.Cache.HomeTTL, func(ctx context.Context) ([]byte, error) {
		home, err := h.articles.Home(ctx)
		if err != nil {
			return nil, err
		}
		return h.renderer.RenderBytes(web.PageIndex, pageData{"Home": home})
	})
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, body)
}

// ArticleList renders one page of the filtered article listing. A missing or
// invalid page number shows the first page.
func (h *PublicHandler) ArticleList(c *gin.Context) {
	filter := service.ArticleFilter{
		SearchText: c.Query("search"),
		Category:   c.Query("category"),
	}

	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.articles.ListArticles(c.Request.Context(), filter, page, h.cfg.Content.PageSize)
	if err != nil {
		h.serverError(c, err)
		return
	}

	category := filter.Category
	if category == "" {
		category = "all"
	}
	h.render(c, http.StatusOK, web.PageArticleList, pageData{
		"Page":       result,
		"Categories": h.articles.Categories(),
		"Category":   category,
		"Search":     filter.SearchText,
	})
}

// ArticleDetail renders a single article
func (h *PublicHandler) ArticleDetail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		h.notFound(c)
		return
	}

	article, err := h.articles.GetArticle(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.notFound(c)
			return
		}
		h.serverError(c, err)
		return
	}

	h.render(c, http.StatusOK, web.PageArticleDetail, pageData{"Article": article})
}

// NotFound renders the 404 page for unmatched routes
func (h *PublicHandler) NotFound(c *gin.Context) {
	h.notFound(c)
}
