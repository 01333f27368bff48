// Package middleware provides HTTP middleware for the CMS server: session
// cookies, request logging, request IDs, metrics, CORS and static caching.
package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Effiong06/Agri-Naija-Centre/internal/database/models"
	"github.com/Effiong06/Agri-Naija-Centre/internal/service"
)

const (
	// SessionKey is the context key for the decoded *models.Session
	SessionKey = "session"
	// AdministratorKey is the context key for the authenticated *models.Administrator
	AdministratorKey = "administrator"
)

// SessionAuthenticator decodes session cookies and resolves them to administrators
type SessionAuthenticator interface {
	SessionFromToken(token string) *models.Session
	RequireAuthenticated(ctx context.Context, session *models.Session) (*models.Administrator, error)
}

// SessionMiddleware decodes the session cookie, if any, into the context.
// Requests without a valid cookie carry a nil session.
func SessionMiddleware(authn SessionAuthenticator, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(cookieName); err == nil && token != "" {
			if session := authn.SessionFromToken(token); session != nil {
				c.Set(SessionKey, session)
			}
		}
		c.Next()
	}
}

// GetSession returns the session decoded from the cookie, or nil
func GetSession(c *gin.Context) *models.Session {
	if v, exists := c.Get(SessionKey); exists {
		if session, ok := v.(*models.Session); ok {
			return session
		}
	}
	return nil
}

// GetAdministrator returns the administrator authenticated for this request, or nil
func GetAdministrator(c *gin.Context) *models.Administrator {
	if v, exists := c.Get(AdministratorKey); exists {
		if admin, ok := v.(*models.Administrator); ok {
			return admin
		}
	}
	return nil
}

// RequireSession rejects requests without a live session with a uniform 401
func RequireSession(authn SessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := authn.RequireAuthenticated(c.Request.Context(), GetSession(c))
		if err != nil {
			if !errors.Is(err, service.ErrUnauthenticated) {
				_ = c.Error(err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(AdministratorKey, admin)
		c.Next()
	}
}

// RequireLogin redirects browsers without a live session to the login page
func RequireLogin(authn SessionAuthenticator, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := authn.RequireAuthenticated(c.Request.Context(), GetSession(c))
		if err != nil {
			if !errors.Is(err, service.ErrUnauthenticated) {
				_ = c.Error(err)
			}
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set(AdministratorKey, admin)
		c.Next()
	}
}

// StaticCache sets a long-lived Cache-Control header on static assets
func StaticCache(maxAge string) gin.HandlerFunc {
	value := "public, max-age=" + maxAge
	return func(c *gin.Context) {
		c.Header("Cache-Control", value)
		c.Next()
	}
}
