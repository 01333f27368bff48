package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Effiong06/Agri-Naija-Centre/internal/api/middleware"
	"github.com/Effiong06/Agri-Naija-Centre/internal/service"
)

// AdminHandler serves the JSON management surface
type AdminHandler struct {
	admins   *service.AdminService
	articles *service.ArticleService
	pageSize int
	logger   *zap.Logger
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(admins *service.AdminService, articles *service.ArticleService, pageSize int, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		admins:   admins,
		articles: articles,
		pageSize: pageSize,
		logger:   logger,
	}
}

// respondError maps a service error onto a status code and a generic body
func (h *AdminHandler) respondError(c *gin.Context, err error, msg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Messages()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, service.ErrRotationRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": "password change required"})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "username or email already in use"})
	default:
		h.logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// Index returns the management index
// @Summary Management index
// @Description Current administrator, rotation flag and counts
// @Produce json
// @Success 200 {object} service.ManagementIndex
// @Router /admin [get]
func (h *AdminHandler) Index(c *gin.Context) {
	index, err := h.admins.Index(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		h.respondError(c, err, "Failed to load management index")
		return
	}
	c.JSON(http.StatusOK, index)
}

// Categories returns the configured category enumeration
// @Summary List categories
// @Produce json
// @Success 200 {array} string
// @Router /admin/api/categories [get]
func (h *AdminHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, h.articles.Categories())
}

// ListArticles lists articles for management
// @Summary List articles
// @Produce json
// @Param search query string false "Search text"
// @Param category query string false "Category"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} service.ArticlePage
// @Router /admin/api/articles [get]
func (h *AdminHandler) ListArticles(c *gin.Context) {
	page, err := queryInt(c, "page", 1)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": gin.H{"page": "page must be a number"}})
		return
	}
	pageSize, err := queryInt(c, "page_size", h.pageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": gin.H{"page_size": "page size must be a number"}})
		return
	}

	filter := service.ArticleFilter{SearchText: c.Query("search"), Category: c.Query("category")}
	result, err := h.articles.ListManaged(c.Request.Context(), middleware.GetSession(c), filter, page, pageSize)
	if err != nil {
		h.respondError(c, err, "Failed to list articles")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetArticle returns a full article
// @Summary Get article
// @Produce json
// @Param id path int true "Article ID"
// @Success 200 {object} models.Article
// @Router /admin/api/articles/{id} [get]
func (h *AdminHandler) GetArticle(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	article, err := h.articles.GetManaged(c.Request.Context(), middleware.GetSession(c), id)
	if err != nil {
		h.respondError(c, err, "Failed to get article")
		return
	}
	c.JSON(http.StatusOK, article)
}

// CreateArticle publishes a new article
// @Summary Create article
// @Accept json
// @Produce json
// @Param request body service.ArticleInput true "Article"
// @Success 201 {object} models.Article
// @Router /admin/api/articles [post]
func (h *AdminHandler) CreateArticle(c *gin.Context) {
	var req service.ArticleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.articles.CreateArticle(c.Request.Context(), middleware.GetSession(c), req)
	if err != nil {
		h.respondError(c, err, "Failed to create article")
		return
	}
	c.JSON(http.StatusCreated, article)
}

// UpdateArticle replaces an article's fields
// @Summary Update article
// @Accept json
// @Produce json
// @Param id path int true "Article ID"
// @Param request body service.ArticleInput true "Article"
// @Success 200 {object} models.Article
// @Router /admin/api/articles/{id} [put]
func (h *AdminHandler) UpdateArticle(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req service.ArticleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.articles.UpdateArticle(c.Request.Context(), middleware.GetSession(c), id, req)
	if err != nil {
		h.respondError(c, err, "Failed to update article")
		return
	}
	c.JSON(http.StatusOK, article)
}

// DeleteArticle removes an article
// @Summary Delete article
// @Param id path int true "Article ID"
// @Success 204
// @Router /admin/api/articles/{id} [delete]
func (h *AdminHandler) DeleteArticle(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.articles.DeleteArticle(c.Request.Context(), middleware.GetSession(c), id); err != nil {
		h.respondError(c, err, "Failed to delete article")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListAdministrators lists every administrator
// @Summary List administrators
// @Produce json
// @Success 200 {array} models.Administrator
// @Router /admin/api/administrators [get]
func (h *AdminHandler) ListAdministrators(c *gin.Context) {
	admins, err := h.admins.ListAdministrators(c.Request.Context(), middleware.GetSession(c))
	if err != nil {
		h.respondError(c, err, "Failed to list administrators")
		return
	}
	c.JSON(http.StatusOK, admins)
}

// GetAdministrator returns one administrator
// @Summary Get administrator
// @Produce json
// @Param id path int true "Administrator ID"
// @Success 200 {object} models.Administrator
// @Router /admin/api/administrators/{id} [get]
func (h *AdminHandler) GetAdministrator(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	admin, err := h.admins.GetAdministrator(c.Request.Context(), middleware.GetSession(c), id)
	if err != nil {
		h.respondError(c, err, "Failed to get administrator")
		return
	}
	c.JSON(http.StatusOK, admin)
}

// CreateAdministrator adds a management account
// @Summary Create administrator
// @Accept json
// @Produce json
// @Param request body service.AdministratorInput true "Administrator"
// @Success 201 {object} models.Administrator
// @Router /admin/api/administrators [post]
func (h *AdminHandler) CreateAdministrator(c *gin.Context) {
	var req service.AdministratorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	admin, err := h.admins.CreateAdministrator(c.Request.Context(), middleware.GetSession(c), req)
	if err != nil {
		h.respondError(c, err, "Failed to create administrator")
		return
	}
	c.JSON(http.StatusCreated, admin)
}

// UpdateAdministrator edits a management account. A blank password keeps
// the existing one.
// @Summary Update administrator
// @Accept json
// @Produce json
// @Param id path int true "Administrator ID"
// @Param request body service.AdministratorInput true "Administrator"
// @Success 200 {object} models.Administrator
// @Router /admin/api/administrators/{id} [put]
func (h *AdminHandler) UpdateAdministrator(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req service.AdministratorInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	admin, err := h.admins.UpdateAdministrator(c.Request.Context(), middleware.GetSession(c), id, req)
	if err != nil {
		h.respondError(c, err, "Failed to update administrator")
		return
	}
	c.JSON(http.StatusOK, admin)
}

// ChangePasswordRequest represents a password rotation request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword rotates the signed-in administrator's password
// @Summary Change own password
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Passwords"
// @Success 204
// @Router /admin/api/password [put]
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.admins.ChangePassword(c.Request.Context(), middleware.GetSession(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		h.respondError(c, err, "Failed to change password")
		return
	}
	c.Status(http.StatusNoContent)
}
