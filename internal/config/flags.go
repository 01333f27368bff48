package config

import (
	"fmt"
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// Flags holds all command line flag values
type Flags struct {
	fs *flag.FlagSet

	// General
	configFile *string
	version    *bool

	// Server
	serverPort         *int
	serverHost         *string
	serverReadTimeout  *string
	serverWriteTimeout *string

	// Database
	dbType             *string
	dbSQLitePath       *string
	dbPostgresHost     *string
	dbPostgresPort     *int
	dbPostgresDatabase *string
	dbPostgresUser     *string
	dbPostgresPassword *string

	// Session
	sessionSecret     *string
	sessionExpiration *string
	sessionSecure     *bool

	// Cache
	cacheHomeTTL *string

	// Mail
	mailEnabled    *bool
	mailHost       *string
	mailPort       *int
	mailRecipients *[]string

	// Logging
	logLevel  *string
	logFormat *string
}

// NewFlags defines all command line flags on a new flag set named after the program
func NewFlags(program string) *Flags {
	fs := flag.NewFlagSet(program, flag.ContinueOnError)
	f := &Flags{fs: fs}

	// General flags
	f.configFile = fs.StringP("config", "c", "config.yaml", "Path to configuration file")
	f.version = fs.BoolP("version", "v", false, "Print version and exit")

	// Server flags
	f.serverPort = fs.Int("server.port", 0, "HTTP server port")
	f.serverHost = fs.String("server.host", "", "HTTP server bind address")
	f.serverReadTimeout = fs.String("server.read-timeout", "", "Server read timeout (e.g., 30s)")
	f.serverWriteTimeout = fs.String("server.write-timeout", "", "Server write timeout (e.g., 30s)")

	// Database flags
	f.dbType = fs.String("db.type", "", "Database type (sqlite or postgres)")
	f.dbSQLitePath = fs.String("db.sqlite.path", "", "SQLite database file path")
	f.dbPostgresHost = fs.String("db.postgres.host", "", "PostgreSQL host")
	f.dbPostgresPort = fs.Int("db.postgres.port", 0, "PostgreSQL port")
	f.dbPostgresDatabase = fs.String("db.postgres.database", "", "PostgreSQL database name")
	f.dbPostgresUser = fs.String("db.postgres.user", "", "PostgreSQL user")
	f.dbPostgresPassword = fs.String("db.postgres.password", "", "PostgreSQL password")

	// Session flags
	f.sessionSecret = fs.String("session.secret", "", "Secret key used to sign session cookies")
	f.sessionExpiration = fs.String("session.expiration", "", "Session lifetime (e.g., 24h)")
	f.sessionSecure = fs.Bool("session.secure", false, "Mark session cookies Secure")

	// Cache flags
	f.cacheHomeTTL = fs.String("cache.home-ttl", "", "Home page cache TTL (e.g., 60s)")

	// Mail flags
	f.mailEnabled = fs.Bool("mail.enabled", false, "Send contact notifications over SMTP")
	f.mailHost = fs.String("mail.host", "", "SMTP host")
	f.mailPort = fs.Int("mail.port", 0, "SMTP port")
	f.mailRecipients = fs.StringSlice("mail.recipients", nil, "Contact notification recipients (can be specified multiple times)")

	// Logging flags
	f.logLevel = fs.StringP("log.level", "l", "", "Log level (debug, info, warn, error)")
	f.logFormat = fs.String("log.format", "", "Log format (json or console)")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s [OPTIONS]\n\n", program)
		fmt.Fprintf(out, "Agri-Naija Centre - content management backend\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nConfiguration priority (highest to lowest):\n")
		fmt.Fprintf(out, "  1. Command line flags\n")
		fmt.Fprintf(out, "  2. Environment variables (AGRI_*)\n")
		fmt.Fprintf(out, "  3. Configuration file (default: config.yaml)\n\n")
		fmt.Fprintf(out, "Examples:\n")
		fmt.Fprintf(out, "  %s --config /etc/agrinaija/config.yaml\n", program)
		fmt.Fprintf(out, "  %s --server.port 9000 --db.type postgres --db.postgres.host db.example.com\n", program)
	}

	return f
}

// Parse parses the given arguments (without the program name)
func (f *Flags) Parse(args []string) error {
	return f.fs.Parse(args)
}

// SetOutput redirects usage and error output
func (f *Flags) SetOutput(w io.Writer) {
	f.fs.SetOutput(w)
}

// ConfigFile returns the configuration file path
func (f *Flags) ConfigFile() string {
	return *f.configFile
}

// ShowVersion reports whether --version was given
func (f *Flags) ShowVersion() bool {
	return *f.version
}

func (f *Flags) changed(name string) bool {
	fl := f.fs.Lookup(name)
	return fl != nil && fl.Changed
}

// applyFlags copies every explicitly set flag into the configuration
func (c *Config) applyFlags(f *Flags) error {
	if f.changed("server.port") {
		c.Server.Port = *f.serverPort
	}
	if f.changed("server.host") {
		c.Server.Host = *f.serverHost
	}
	if f.changed("server.read-timeout") {
		d, err := time.ParseDuration(*f.serverReadTimeout)
		if err != nil {
			return fmt.Errorf("server.read-timeout: %w", err)
		}
		c.Server.ReadTimeout = d
	}
	if f.changed("server.write-timeout") {
		d, err := time.ParseDuration(*f.serverWriteTimeout)
		if err != nil {
			return fmt.Errorf("server.write-timeout: %w", err)
		}
		c.Server.WriteTimeout = d
	}

	if f.changed("db.type") {
		c.Database.Type = *f.dbType
	}
	if f.changed("db.sqlite.path") {
		c.Database.SQLite.Path = *f.dbSQLitePath
	}
	if f.changed("db.postgres.host") {
		c.Database.Postgres.Host = *f.dbPostgresHost
	}
	if f.changed("db.postgres.port") {
		c.Database.Postgres.Port = *f.dbPostgresPort
	}
	if f.changed("db.postgres.database") {
		c.Database.Postgres.Database = *f.dbPostgresDatabase
	}
	if f.changed("db.postgres.user") {
		c.Database.Postgres.User = *f.dbPostgresUser
	}
	if f.changed("db.postgres.password") {
		c.Database.Postgres.Password = *f.dbPostgresPassword
	}

	if f.changed("session.secret") {
		c.Session.Secret = *f.sessionSecret
	}
	if f.changed("session.expiration") {
		d, err := time.ParseDuration(*f.sessionExpiration)
		if err != nil {
			return fmt.Errorf("session.expiration: %w", err)
		}
		c.Session.Expiration = d
	}
	if f.changed("session.secure") {
		c.Session.Secure = *f.sessionSecure
	}

	if f.changed("cache.home-ttl") {
		d, err := time.ParseDuration(*f.cacheHomeTTL)
		if err != nil {
			return fmt.Errorf("cache.home-ttl: %w", err)
		}
		c.Cache.HomeTTL = d
	}

	if f.changed("mail.enabled") {
		c.Mail.Enabled = *f.mailEnabled
	}
	if f.changed("mail.host") {
		c.Mail.Host = *f.mailHost
	}
	if f.changed("mail.port") {
		c.Mail.Port = *f.mailPort
	}
	if f.changed("mail.recipients") {
		c.Mail.Recipients = *f.mailRecipients
	}

	if f.changed("log.level") {
		c.Logging.Level = *f.logLevel
	}
	if f.changed("log.format") {
		c.Logging.Format = *f.logFormat
	}

	return nil
}
