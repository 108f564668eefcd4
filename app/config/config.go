package config

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds every setting the server reads from the environment
type Config struct {
	Port     string `env:"PORT" envDefault:"5000"`
	TimeZone string `env:"TIME_ZONE" envDefault:"UTC"`

	Database DatabaseConfig
	Auth     AuthConfig
	Firebase FirebaseConfig
	CORS     CORSConfig
	Schedule ScheduleConfig
}

type DatabaseConfig struct {
	Driver       string `env:"DB_DRIVER" envDefault:"postgres"`
	URL          string `env:"DATABASE_URL" envDefault:"host=localhost port=5432 user=postgres dbname=hackathon sslmode=disable"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
}

type AuthConfig struct {
	JWTSecret   string        `env:"JWT_SECRET"`
	JWTIssuer   string        `env:"JWT_ISSUER" envDefault:"hackathon-club"`
	TokenTTL    time.Duration `env:"JWT_TTL" envDefault:"720h"`
	BcryptCost  int           `env:"BCRYPT_COST" envDefault:"12"`
	AdminEmails []string      `env:"ADMIN_EMAILS" envSeparator:","`
}

type FirebaseConfig struct {
	CredentialsJSON string `env:"FIREBASE_CREDENTIALS_JSON"`
	ProjectID       string `env:"FIREBASE_PROJECT_ID"`
}

// Enabled reports whether Firebase sign-in can be offered
func (f FirebaseConfig) Enabled() bool {
	return f.CredentialsJSON != ""
}

type CORSConfig struct {
	AllowOrigins []string `env:"FRONTEND_URL" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:5174,http://localhost:3000"`
}

type ScheduleConfig struct {
	Enabled  bool          `env:"SCHEDULER_ENABLED" envDefault:"true"`
	Interval time.Duration `env:"SCHEDULER_INTERVAL" envDefault:"1m"`
}

// Load parses the environment and validates the result
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase parses only the database settings, for tools that never
// serve requests.
func LoadDatabase() (DatabaseConfig, error) {
	cfg := DatabaseConfig{}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.Driver = strings.ToLower(strings.TrimSpace(cfg.Driver))
	switch cfg.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return cfg, fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, cfg.Driver)
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	c.Auth.AdminEmails = trimList(c.Auth.AdminEmails, true)
	c.CORS.AllowOrigins = trimList(c.CORS.AllowOrigins, false)
}

func trimList(values []string, lower bool) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if lower {
			v = strings.ToLower(v)
		}
		out = append(out, v)
	}
	return out
}

// Validate checks required settings and value ranges
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("DB_DRIVER must be %q or %q, got %q", DriverPostgres, DriverSQLite, c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31, got %d", c.Auth.BcryptCost)
	}
	if c.Schedule.Enabled && c.Schedule.Interval <= 0 {
		return fmt.Errorf("SCHEDULER_INTERVAL must be positive")
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("TIME_ZONE %q: %w", c.TimeZone, err)
	}
	return nil
}

// OpenDB opens and pings the configured database
func OpenDB(cfg DatabaseConfig) (*sql.DB, error) {
	dsn := cfg.URL
	if cfg.Driver == DriverSQLite {
		dsn = sqliteDSN(cfg.URL)
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}

	if cfg.Driver == DriverSQLite {
		// one writer at a time keeps SQLite from returning SQLITE_BUSY
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	log.Printf("[config] testing %s database connection...", cfg.Driver)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", cfg.Driver, err)
	}
	log.Printf("[config] %s database connected", cfg.Driver)
	return db, nil
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
