// Package api provides HTTP routing for the Agri-Naija Centre CMS. It wires
// together handlers, middleware and services into the public site, the
// management API and the operational endpoints.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Effiong06/Agri-Naija-Centre/internal/api/handlers"
	"github.com/Effiong06/Agri-Naija-Centre/internal/api/middleware"
	"github.com/Effiong06/Agri-Naija-Centre/internal/cache"
	"github.com/Effiong06/Agri-Naija-Centre/internal/config"
	"github.com/Effiong06/Agri-Naija-Centre/internal/database"
	"github.com/Effiong06/Agri-Naija-Centre/internal/service"
	"github.com/Effiong06/Agri-Naija-Centre/internal/web"
)

// staticMaxAge is the Cache-Control max-age of static assets, one year
const staticMaxAge = "31536000"

// Dependencies are the components the router serves
type Dependencies struct {
	Config   *config.Config
	DB       *database.Database
	Auth     *service.AuthService
	Admins   *service.AdminService
	Articles *service.ArticleService
	Contact  *service.ContactService
	Cache    *cache.PageCache
	Renderer *web.Renderer
	Logger   *zap.Logger
}

// NewRouter creates and configures the HTTP router
func NewRouter(deps Dependencies) *gin.Engine {
	cfg, logger := deps.Config, deps.Logger

	// Set Gin mode
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Metrics())
	router.Use(middleware.LoggerMiddleware(logger))
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.SessionMiddleware(deps.Auth, cfg.Session.CookieName))

	// Initialize handlers
	publicHandler := handlers.NewPublicHandler(deps.Articles, deps.Cache, deps.Renderer, cfg, logger)
	authHandler := handlers.NewAuthHandler(deps.Auth, deps.Renderer, cfg, logger)
	contactHandler := handlers.NewContactHandler(deps.Contact, deps.Renderer, logger)
	adminHandler := handlers.NewAdminHandler(deps.Admins, deps.Articles, cfg.Content.PageSize, logger)
	healthHandler := handlers.NewHealthHandler(deps.DB, logger)

	// Public site
	router.GET("/", publicHandler.Home)
	router.GET("/home", publicHandler.Home)
	router.GET("/articles", publicHandler.ArticleList)
	router.GET("/article/:id", publicHandler.ArticleDetail)
	router.GET("/contact", contactHandler.Form)
	router.POST("/contact", contactHandler.Submit)

	// Authentication
	router.GET("/login", authHandler.LoginForm)
	router.POST("/login", authHandler.Login)
	router.GET("/logout", middleware.RequireLogin(deps.Auth, "/login"), authHandler.Logout)

	// Management (requires a live session)
	admin := router.Group("/admin")
	admin.Use(middleware.RequireSession(deps.Auth))
	{
		admin.GET("", adminHandler.Index)

		managed := admin.Group("/api")
		{
			managed.GET("/categories", adminHandler.Categories)

			managed.GET("/articles", adminHandler.ListArticles)
			managed.POST("/articles", adminHandler.CreateArticle)
			managed.GET("/articles/:id", adminHandler.GetArticle)
			managed.PUT("/articles/:id", adminHandler.UpdateArticle)
			managed.DELETE("/articles/:id", adminHandler.DeleteArticle)

			managed.GET("/administrators", adminHandler.ListAdministrators)
			managed.POST("/administrators", adminHandler.CreateAdministrator)
			managed.GET("/administrators/:id", adminHandler.GetAdministrator)
			managed.PUT("/administrators/:id", adminHandler.UpdateAdministrator)

			managed.PUT("/password", adminHandler.ChangePassword)
		}
	}

	// Operational
	router.GET("/health", healthHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Static assets
	static := router.Group("/static")
	static.Use(middleware.StaticCache(staticMaxAge))
	static.StaticFS("/", http.FS(web.Static()))

	router.NoRoute(publicHandler.NotFound)

	return router
}
