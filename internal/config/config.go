package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

const (
	defaultDBPath          = "./dev.db"
	defaultPort            = "8080"
	defaultStoreDriver     = "sqlite"
	defaultBadgerPath      = "./data/badger"
	defaultMongoDBName     = "agrokalk"
	defaultClaasRange      = "CLAAS!A:K"
	defaultBobcatRange     = "BOBCAT!A:L"
	defaultShutdownTimeout = 10 * time.Second
	defaultSessionTTL      = 12 * time.Hour
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	Server ServerConfig
	Admin  AdminConfig
	Store  StoreConfig
	Sheets SheetsConfig
	Sync   SyncConfig
}

// ServerConfig holds HTTP server options.
type ServerConfig struct {
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration
}

// AdminConfig holds the seeded admin account and session settings.
type AdminConfig struct {
	Email         string
	Password      string
	SessionSecret string
	// SessionTTL bounds both the cookie lifetime and the signed expiry.
	SessionTTL time.Duration
	// CookieSecure marks the session cookie HTTPS-only.
	CookieSecure bool
	// Token, when set, grants admin access as "Authorization: Bearer <token>".
	Token string
}

// StoreConfig selects where the machine catalog is persisted.
type StoreConfig struct {
	Driver      string
	DBPath      string
	BadgerPath  string
	MongoURI    string
	MongoDBName string
}

// SheetsConfig holds the Google Sheets import source.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
	ClaasRange      string
	BobcatRange     string
}

// Enabled reports whether Sheets import is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// Ranges maps producer names to their sheet ranges.
func (c SheetsConfig) Ranges() map[string]string {
	return map[string]string{
		"CLAAS":  c.ClaasRange,
		"BOBCAT": c.BobcatRange,
	}
}

// SyncConfig schedules the periodic Sheets import.
type SyncConfig struct {
	// CronSchedule is a standard five-field expression; empty disables sync.
	CronSchedule string
}

// Load reads environment variables, optionally from envFile first, and
// returns a validated Config. A missing env file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getenvWithDefault("PORT", defaultPort),
			LogLevel:        os.Getenv("LOG_LEVEL"),
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Admin: AdminConfig{
			Email:         os.Getenv("ADMIN_EMAIL"),
			Password:      os.Getenv("ADMIN_PASSWORD"),
			SessionSecret: os.Getenv("SESSION_SECRET"),
			SessionTTL:    defaultSessionTTL,
			Token:         os.Getenv("ADMIN_TOKEN"),
		},
		Store: StoreConfig{
			Driver:      getenvWithDefault("STORE_DRIVER", defaultStoreDriver),
			DBPath:      getenvWithDefault("DB_PATH", defaultDBPath),
			BadgerPath:  getenvWithDefault("BADGER_PATH", defaultBadgerPath),
			MongoURI:    os.Getenv("MONGODB_URI"),
			MongoDBName: getenvWithDefault("MONGODB_DB_NAME", defaultMongoDBName),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DATABASE_ID"),
			ClaasRange:      getenvWithDefault("CLAAS_SHEET_RANGE", defaultClaasRange),
			BobcatRange:     getenvWithDefault("BOBCAT_SHEET_RANGE", defaultBobcatRange),
		},
		Sync: SyncConfig{
			CronSchedule: os.Getenv("SHEETS_SYNC_CRON"),
		},
	}

	if raw := os.Getenv("SHUTDOWN_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.Server.ShutdownTimeout = d
	}

	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse SESSION_TTL: %w", err)
		}
		cfg.Admin.SessionTTL = d
	}

	if raw := os.Getenv("COOKIE_SECURE"); raw != "" {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("parse COOKIE_SECURE: %w", err)
		}
		cfg.Admin.CookieSecure = secure
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.Admin.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}

	switch c.Store.Driver {
	case "sqlite", "memory":
	case "badger":
		if c.Store.BadgerPath == "" {
			return errors.New("BADGER_PATH must be provided for the badger store")
		}
	case "mongo":
		if c.Store.MongoURI == "" {
			return errors.New("MONGODB_URI must be provided for the mongo store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if c.Sync.CronSchedule != "" {
		if !c.Sheets.Enabled() {
			return errors.New("SHEETS_SYNC_CRON requires GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DATABASE_ID")
		}
		if _, err := cron.ParseStandard(c.Sync.CronSchedule); err != nil {
			return fmt.Errorf("invalid SHEETS_SYNC_CRON: %w", err)
		}
	}

	return nil
}

// Warnings lists settings that are missing but not fatal.
func (c *Config) Warnings() []string {
	var out []string
	if c.Admin.Email == "" {
		out = append(out, "ADMIN_EMAIL is not set")
	}
	if c.Admin.Password == "" {
		out = append(out, "ADMIN_PASSWORD is not set")
	}
	if c.Admin.SessionSecret == "" {
		out = append(out, "SESSION_SECRET is not set")
	}
	return out
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
