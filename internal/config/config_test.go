package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t, "PORT", "STORE_DRIVER", "DB_PATH", "SHEETS_SYNC_CRON", "CLAAS_SHEET_RANGE", "SHUTDOWN_TIMEOUT", "SESSION_TTL", "COOKIE_SECURE")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Fatalf("Port=%q, want 8080", cfg.Server.Port)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.DBPath != "./dev.db" {
		t.Fatalf("unexpected store config %+v", cfg.Store)
	}
	if got := cfg.Sheets.Ranges()["CLAAS"]; got != "CLAAS!A:K" {
		t.Fatalf("CLAAS range=%q", got)
	}
	if cfg.Admin.SessionTTL != 12*time.Hour || cfg.Admin.CookieSecure {
		t.Fatalf("unexpected session settings %+v", cfg.Admin)
	}
}

func TestLoad_SessionSettings(t *testing.T) {
	clearEnv(t, "PORT", "STORE_DRIVER", "SHEETS_SYNC_CRON", "SHUTDOWN_TIMEOUT")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("COOKIE_SECURE", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Admin.SessionTTL != 30*time.Minute || !cfg.Admin.CookieSecure {
		t.Fatalf("unexpected session settings %+v", cfg.Admin)
	}

	t.Setenv("COOKIE_SECURE", "sometimes")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected an error for an invalid COOKIE_SECURE")
	}
}

func TestLoad_ReadsEnvFile(t *testing.T) {
	clearEnv(t, "PORT", "SHEETS_SYNC_CRON", "SHUTDOWN_TIMEOUT")
	t.Setenv("STORE_DRIVER", "badger")
	// godotenv never overwrites a variable that is already present.
	t.Setenv("BADGER_PATH", "")
	os.Unsetenv("BADGER_PATH")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("# local\nBADGER_PATH=/tmp/agro-badger\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.BadgerPath != "/tmp/agro-badger" {
		t.Fatalf("BadgerPath=%q", cfg.Store.BadgerPath)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server: ServerConfig{Port: "8080"},
			Admin:  AdminConfig{SessionTTL: time.Hour},
			Store:  StoreConfig{Driver: "sqlite", DBPath: "x.db"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "ok", mutate: func(*Config) {}},
		{name: "empty port", mutate: func(c *Config) { c.Server.Port = "" }, wantErr: "PORT"},
		{name: "zero session ttl", mutate: func(c *Config) { c.Admin.SessionTTL = 0 }, wantErr: "SESSION_TTL"},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "etcd" }, wantErr: "STORE_DRIVER"},
		{name: "mongo without uri", mutate: func(c *Config) { c.Store.Driver = "mongo" }, wantErr: "MONGODB_URI"},
		{name: "cron without sheets", mutate: func(c *Config) { c.Sync.CronSchedule = "0 6 * * *" }, wantErr: "SHEETS_SYNC_CRON"},
		{
			name: "bad cron",
			mutate: func(c *Config) {
				c.Sheets = SheetsConfig{CredentialsPath: "creds.json", SpreadsheetID: "abc"}
				c.Sync.CronSchedule = "every day"
			},
			wantErr: "invalid SHEETS_SYNC_CRON",
		},
		{
			name: "cron with sheets",
			mutate: func(c *Config) {
				c.Sheets = SheetsConfig{CredentialsPath: "creds.json", SpreadsheetID: "abc"}
				c.Sync.CronSchedule = "0 6 * * *"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate error=%v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestWarnings(t *testing.T) {
	cfg := Config{Admin: AdminConfig{Email: "admin@example.com"}}
	got := cfg.Warnings()
	if len(got) != 2 {
		t.Fatalf("warnings=%v, want password and secret", got)
	}
}
