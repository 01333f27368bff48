package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Effiong06/Agri-Naija-Centre/internal/api/middleware"
	"github.com/Effiong06/Agri-Naija-Centre/internal/auth"
	"github.com/Effiong06/Agri-Naija-Centre/internal/config"
	"github.com/Effiong06/Agri-Naija-Centre/internal/service"
	"github.com/Effiong06/Agri-Naija-Centre/internal/web"
)

// AuthHandler handles administrator login and logout
type AuthHandler struct {
	page
	auth *service.AuthService
	cfg  *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, renderer *web.Renderer, cfg *config.Config, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		page: page{renderer: renderer, logger: logger},
		auth: authService,
		cfg:  cfg,
	}
}

// LoginForm renders the login page, or sends a signed-in visitor to the
// management index
func (h *AuthHandler) LoginForm(c *gin.Context) {
	if session := middleware.GetSession(c); session != nil {
		if _, err := h.auth.RequireAuthenticated(c.Request.Context(), session); err == nil {
			c.Redirect(http.StatusFound, "/admin")
			return
		}
	}
	h.render(c, http.StatusOK, web.PageLogin, nil)
}

// Login verifies the submitted credentials and establishes a session
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")

	session, err := h.auth.Login(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			h.serverError(c, err)
			return
		}
		setFlash(c, FlashDanger, "Invalid username or password.")
		c.Redirect(http.StatusFound, "/login")
		return
	}

	token, err := h.auth.IssueToken(session)
	if err != nil {
		h.serverError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Session.CookieName, token, int(auth.SessionTTL(session, session.CreatedAt).Seconds()), "/", "", h.cfg.Session.Secure, true)

	setFlash(c, FlashSuccess, "Logged in successfully.")
	c.Redirect(http.StatusFound, "/admin")
}

// Logout ends the current session
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.GetSession(c)); err != nil {
		h.serverError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", h.cfg.Session.Secure, true)
	if admin := middleware.GetAdministrator(c); admin != nil {
		h.logger.Info("Administrator logged out", zap.String("username", admin.Username))
	}
	setFlash(c, FlashInfo, "Logged out successfully.")
	c.Redirect(http.StatusFound, "/")
}
