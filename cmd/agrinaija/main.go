package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Effiong06/Agri-Naija-Centre/internal/api"
	"github.com/Effiong06/Agri-Naija-Centre/internal/auth"
	"github.com/Effiong06/Agri-Naija-Centre/internal/cache"
	"github.com/Effiong06/Agri-Naija-Centre/internal/config"
	"github.com/Effiong06/Agri-Naija-Centre/internal/database"
	"github.com/Effiong06/Agri-Naija-Centre/internal/metrics"
	"github.com/Effiong06/Agri-Naija-Centre/internal/notify"
	"github.com/Effiong06/Agri-Naija-Centre/internal/service"
	"github.com/Effiong06/Agri-Naija-Centre/internal/web"
)

const version = "0.1.0"

// maintenanceInterval is how often expired sessions and cache entries are swept
const maintenanceInterval = 10 * time.Minute

func main() {
	// Parse command line flags
	flags := config.NewFlags(os.Args[0])
	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	// Handle version flag
	if flags.ShowVersion() {
		fmt.Printf("Agri-Naija Centre v%s\n", version)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load(flags.ConfigFile(), flags)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := initLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting Agri-Naija Centre",
		zap.String("version", version),
		zap.String("database", cfg.Database.Type),
	)

	if cfg.Session.Secret == "" {
		secret, err := randomSecret()
		if err != nil {
			logger.Fatal("Failed to generate session secret", zap.Error(err))
		}
		cfg.Session.Secret = secret
		logger.Warn("No session secret configured; sessions will not survive a restart")
	}

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(context.Background()); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize services
	admins := service.NewAdminService(db, cfg, auth.NewBcryptHasher(auth.BcryptCost), logger)
	if _, err := admins.SeedDefault(context.Background()); err != nil {
		logger.Fatal("Failed to seed default administrator", zap.Error(err))
	}
	authService := service.NewAuthService(db, cfg, admins, logger)
	articles := service.NewArticleService(db, cfg, logger)

	dispatcher, err := notify.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize mail dispatcher", zap.Error(err))
	}
	contact := service.NewContactService(dispatcher, cfg, logger)

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Fatal("Failed to load templates", zap.Error(err))
	}
	pages := cache.New()

	// Initialize router
	router := api.NewRouter(api.Dependencies{
		Config:   cfg,
		DB:       db,
		Auth:     authService,
		Admins:   admins,
		Articles: articles,
		Contact:  contact,
		Cache:    pages,
		Renderer: renderer,
		Logger:   logger,
	})

	// Background work
	poolStats := metrics.NewPoolStatsCollector(db.DB())
	poolStats.Start(15 * time.Second)
	defer poolStats.Stop()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go runMaintenance(ctx, maintenanceInterval, authService, pages, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting HTTP server",
			zap.String("address", srv.Addr),
			zap.Bool("tls", cfg.Server.TLSEnabled),
		)

		var err error
		if cfg.Server.TLSEnabled {
			err = srv.ListenAndServeTLS(cfg.Server.TLSCert, cfg.Server.TLSKey)
		} else {
			err = srv.ListenAndServe()
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	stop()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server stopped")
}

// sessionSweeper removes expired login sessions
type sessionSweeper interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// runMaintenance periodically sweeps expired sessions and cache entries until
// ctx is cancelled
func runMaintenance(ctx context.Context, interval time.Duration, sessions sessionSweeper, pages *cache.PageCache, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sweep(ctx, sessions, pages, logger)
		}
	}
}

func sweep(ctx context.Context, sessions sessionSweeper, pages *cache.PageCache, logger *zap.Logger) {
	removed, err := sessions.CleanupExpired(ctx)
	if err != nil {
		logger.Warn("Failed to remove expired sessions", zap.Error(err))
	}
	purged := pages.Purge()
	if removed > 0 || purged > 0 {
		logger.Debug("Maintenance sweep",
			zap.Int64("sessions_removed", removed),
			zap.Int("cache_entries_purged", purged),
		)
	}
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapConfig zap.Config

	if cfg.Logging.Format == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	return zapConfig.Build()
}
