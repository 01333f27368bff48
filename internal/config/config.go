// Package config provides configuration management for the Agri-Naija Centre CMS.
// It handles loading configuration from YAML files, applying environment variable
// overrides and command line flags, and validating configuration values for the
// server, database, sessions, page cache, content, mail, bootstrap and logging settings.
package config

import (
	"errors"
	"fmt"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultCategories is the category enumeration used when none is configured.
var DefaultCategories = []string{
	"Aquaculture",
	"Crop Farming",
	"Livestock Management",
	"Soil and Irrigation",
	"Agri-Business Finance",
	"Market Analysis",
}

// Config holds all application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Session   SessionConfig   `yaml:"session"`
	Cache     CacheConfig     `yaml:"cache"`
	Content   ContentConfig   `yaml:"content"`
	Mail      MailConfig      `yaml:"mail"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
	Logging   LoggingConfig   `yaml:"logging"`
	Security  SecurityConfig  `yaml:"security"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `yaml:"port"`
	Host         string        `yaml:"host"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	TLSEnabled   bool          `yaml:"tls_enabled"`
	TLSCert      string        `yaml:"tls_cert"`
	TLSKey       string        `yaml:"tls_key"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Type     string         `yaml:"type"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// PostgresConfig holds PostgreSQL-specific configuration
type PostgresConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Database     string `yaml:"database"`
	User         string `yaml:"user"`
	Password     string `yaml:"password"`
	SSLMode      string `yaml:"ssl_mode"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

// SessionConfig holds login session configuration. The secret signs the
// session cookie.
type SessionConfig struct {
	Secret     string        `yaml:"secret"`
	Expiration time.Duration `yaml:"expiration"`
	Issuer     string        `yaml:"issuer"`
	CookieName string        `yaml:"cookie_name"`
	Secure     bool          `yaml:"secure"`
}

// CacheConfig holds page cache configuration
type CacheConfig struct {
	HomeTTL time.Duration `yaml:"home_ttl"`
}

// ContentConfig holds the article category enumeration and listing defaults
type ContentConfig struct {
	Categories  []string `yaml:"categories"`
	PageSize    int      `yaml:"page_size"`
	RecentLimit int      `yaml:"recent_limit"`
}

// MailConfig holds outbound notification configuration
type MailConfig struct {
	Enabled    bool          `yaml:"enabled"`
	Host       string        `yaml:"host"`
	Port       int           `yaml:"port"`
	Username   string        `yaml:"username"`
	Password   string        `yaml:"password"`
	From       string        `yaml:"from"`
	Recipients []string      `yaml:"recipients"`
	Timeout    time.Duration `yaml:"timeout"`
}

// BootstrapConfig holds the first-boot administrator account. An empty
// password makes the server generate one and log it once.
type BootstrapConfig struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	CORSEnabled bool     `yaml:"cors_enabled"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns a configuration populated with default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8000,
			Host:         "0.0.0.0",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Type: "sqlite",
			SQLite: SQLiteConfig{
				Path: "./data/site.db",
			},
			Postgres: PostgresConfig{
				Port:         5432,
				SSLMode:      "disable",
				MaxOpenConns: 10,
				MaxIdleConns: 5,
			},
		},
		Session: SessionConfig{
			Expiration: 24 * time.Hour,
			Issuer:     "agri-naija",
			CookieName: "session",
		},
		Cache: CacheConfig{
			HomeTTL: 60 * time.Second,
		},
		Content: ContentConfig{
			Categories:  append([]string(nil), DefaultCategories...),
			PageSize:    10,
			RecentLimit: 3,
		},
		Mail: MailConfig{
			Host:       "smtp.googlemail.com",
			Port:       587,
			Recipients: []string{"e.uyo@alustudent.com"},
			Timeout:    10 * time.Second,
		},
		Bootstrap: BootstrapConfig{
			Username: "admin",
			Email:    "admin@agri-naija.com",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the configuration file, applies environment variable overrides
// and command line flags, then validates the result. A missing file is not an
// error: defaults are used instead.
func Load(path string, flags *Flags) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg.applyEnvOverrides()

	if flags != nil {
		if err := cfg.applyFlags(flags); err != nil {
			return nil, fmt.Errorf("invalid flag value: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration
func (c *Config) applyEnvOverrides() {
	// Server overrides
	if port := os.Getenv("AGRI_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if host := os.Getenv("AGRI_SERVER_HOST"); host != "" {
		c.Server.Host = host
	}

	// Database overrides
	if dbType := os.Getenv("AGRI_DB_TYPE"); dbType != "" {
		c.Database.Type = dbType
	}
	if dbPath := os.Getenv("AGRI_DB_SQLITE_PATH"); dbPath != "" {
		c.Database.SQLite.Path = dbPath
	}
	if pgHost := os.Getenv("AGRI_DB_POSTGRES_HOST"); pgHost != "" {
		c.Database.Postgres.Host = pgHost
	}
	if pgPort := os.Getenv("AGRI_DB_POSTGRES_PORT"); pgPort != "" {
		if p, err := strconv.Atoi(pgPort); err == nil {
			c.Database.Postgres.Port = p
		}
	}
	if pgDB := os.Getenv("AGRI_DB_POSTGRES_DATABASE"); pgDB != "" {
		c.Database.Postgres.Database = pgDB
	}
	if pgUser := os.Getenv("AGRI_DB_POSTGRES_USER"); pgUser != "" {
		c.Database.Postgres.User = pgUser
	}
	if pgPass := os.Getenv("AGRI_DB_POSTGRES_PASSWORD"); pgPass != "" {
		c.Database.Postgres.Password = pgPass
	}

	// Session overrides
	if secret := os.Getenv("AGRI_SECRET_KEY"); secret != "" {
		c.Session.Secret = secret
	}

	// Cache overrides
	if ttl := os.Getenv("AGRI_CACHE_HOME_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Cache.HomeTTL = d
		}
	}

	// Mail overrides
	if user := os.Getenv("AGRI_MAIL_USERNAME"); user != "" {
		c.Mail.Username = user
	}
	if pass := os.Getenv("AGRI_MAIL_PASSWORD"); pass != "" {
		c.Mail.Password = pass
	}
	if recipients := os.Getenv("AGRI_MAIL_RECIPIENTS"); recipients != "" {
		c.Mail.Recipients = splitList(recipients)
	}

	// Bootstrap overrides
	if pass := os.Getenv("AGRI_BOOTSTRAP_PASSWORD"); pass != "" {
		c.Bootstrap.Password = pass
	}

	// Logging overrides
	if logLevel := os.Getenv("AGRI_LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate server config
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.TLSEnabled {
		if c.Server.TLSCert == "" || c.Server.TLSKey == "" {
			return fmt.Errorf("TLS enabled but cert or key not specified")
		}
	}

	// Validate database config
	if c.Database.Type != "sqlite" && c.Database.Type != "postgres" {
		return fmt.Errorf("invalid database type: %s (must be 'sqlite' or 'postgres')", c.Database.Type)
	}
	if c.Database.Type == "sqlite" && c.Database.SQLite.Path == "" {
		return fmt.Errorf("SQLite path not specified")
	}
	if c.Database.Type == "postgres" {
		if c.Database.Postgres.Host == "" || c.Database.Postgres.Database == "" {
			return fmt.Errorf("PostgreSQL host and database must be specified")
		}
	}

	// Validate session config
	if c.Session.Expiration <= 0 {
		return fmt.Errorf("session expiration must be positive")
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("session cookie name not specified")
	}

	if c.Cache.HomeTTL < 0 {
		return fmt.Errorf("cache home_ttl must not be negative")
	}

	// Validate content config
	if len(c.Content.Categories) == 0 {
		return fmt.Errorf("at least one article category must be configured")
	}
	seen := make(map[string]bool, len(c.Content.Categories))
	for _, cat := range c.Content.Categories {
		if strings.TrimSpace(cat) == "" {
			return fmt.Errorf("article categories must not be blank")
		}
		if strings.EqualFold(cat, "all") {
			return fmt.Errorf("%q is reserved and cannot be a category", cat)
		}
		if seen[cat] {
			return fmt.Errorf("duplicate category: %s", cat)
		}
		seen[cat] = true
	}
	if c.Content.PageSize < 1 {
		return fmt.Errorf("content page_size must be at least 1")
	}
	if c.Content.RecentLimit < 1 {
		return fmt.Errorf("content recent_limit must be at least 1")
	}

	// Validate mail config
	if c.Mail.Enabled {
		if c.Mail.Host == "" {
			return fmt.Errorf("mail enabled but host not specified")
		}
		if len(c.Mail.Recipients) == 0 {
			return fmt.Errorf("mail enabled but no recipients configured")
		}
	}
	for _, r := range c.Mail.Recipients {
		if _, err := mail.ParseAddress(r); err != nil {
			return fmt.Errorf("invalid mail recipient %q", r)
		}
	}
	if c.Mail.Timeout <= 0 {
		return fmt.Errorf("mail timeout must be positive")
	}

	// Validate bootstrap config
	if c.Bootstrap.Username == "" || c.Bootstrap.Email == "" {
		return fmt.Errorf("bootstrap administrator username and email must be specified")
	}

	// Validate logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// GetDSN returns the database connection string based on the configured type
func (c *Config) GetDSN() string {
	switch c.Database.Type {
	case "sqlite":
		return c.Database.SQLite.Path
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			c.Database.Postgres.Host,
			c.Database.Postgres.Port,
			c.Database.Postgres.User,
			c.Database.Postgres.Password,
			c.Database.Postgres.Database,
			c.Database.Postgres.SSLMode,
		)
	default:
		return ""
	}
}

// MailSender returns the address outbound notifications are sent from
func (c *Config) MailSender() string {
	if c.Mail.From != "" {
		return c.Mail.From
	}
	return c.Mail.Username
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
