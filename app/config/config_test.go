package config

import (
	"path/filepath"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:     "5000",
		TimeZone: "UTC",
		Database: DatabaseConfig{Driver: DriverSQLite, URL: "hackathon.db"},
		Auth: AuthConfig{
			JWTSecret:  "test-secret",
			JWTIssuer:  "hackathon-club",
			TokenTTL:   time.Hour,
			BcryptCost: 10,
		},
		Schedule: ScheduleConfig{Enabled: true, Interval: time.Minute},
	}
}

func TestConfigValidation(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config should not return error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing secret", func(c *Config) { c.Auth.JWTSecret = " " }},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"empty database url", func(c *Config) { c.Database.URL = "" }},
		{"zero ttl", func(c *Config) { c.Auth.TokenTTL = 0 }},
		{"bcrypt cost too low", func(c *Config) { c.Auth.BcryptCost = 2 }},
		{"zero scheduler interval", func(c *Config) { c.Schedule.Interval = 0 }},
		{"bad time zone", func(c *Config) { c.TimeZone = "Mars/Olympus" }},
	}
	for _, tt := range tests {
		cfg := validConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}

	disabled := validConfig()
	disabled.Schedule = ScheduleConfig{Enabled: false}
	if err := disabled.Validate(); err != nil {
		t.Errorf("disabled scheduler should skip interval check: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_DRIVER", " SQLite ")
	t.Setenv("DATABASE_URL", "local.db")
	t.Setenv("ADMIN_EMAILS", " Lead@Club.dev , ,judge@club.dev")
	t.Setenv("FRONTEND_URL", "https://club.dev")
	t.Setenv("JWT_TTL", "24h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Driver != DriverSQLite {
		t.Errorf("driver = %q, want %q", cfg.Database.Driver, DriverSQLite)
	}
	if cfg.Port != "5000" {
		t.Errorf("port = %q, want default 5000", cfg.Port)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Errorf("ttl = %v, want 24h", cfg.Auth.TokenTTL)
	}
	if len(cfg.Auth.AdminEmails) != 2 || cfg.Auth.AdminEmails[0] != "lead@club.dev" {
		t.Errorf("admin emails = %v, want lowercased two entries", cfg.Auth.AdminEmails)
	}
	if len(cfg.CORS.AllowOrigins) != 1 || cfg.CORS.AllowOrigins[0] != "https://club.dev" {
		t.Errorf("origins = %v", cfg.CORS.AllowOrigins)
	}
	if cfg.Firebase.Enabled() {
		t.Error("firebase should be disabled without credentials")
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestOpenDBSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.db")
	db, err := OpenDB(DatabaseConfig{Driver: DriverSQLite, URL: path})
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	defer db.Close()

	var one int
	if err := db.QueryRow("SELECT 1").Scan(&one); err != nil || one != 1 {
		t.Fatalf("select 1 = %d, %v", one, err)
	}
}
