// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	App        AppConfig
	Logger     LoggerConfig
	Database   DatabaseConfig
	Server     ServerConfig
	Search     SearchConfig
	Generation GenerationConfig
	Admin      AdminConfig
	RateLimit  RateLimitConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string `env:"ENV" envDefault:"development"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// DatabaseConfig holds SQLite configuration.
type DatabaseConfig struct {
	Path string `env:"DATABASE_PATH" envDefault:"competition.db"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port         string        `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"5m"` // Generation runs synchronously
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	CORSOrigins  []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// SearchConfig holds catalogue search index configuration.
type SearchConfig struct {
	IndexPath string `env:"SEARCH_INDEX_PATH" envDefault:"competition.bleve"`
}

// GenerationConfig holds episode generator configuration.
type GenerationConfig struct {
	// Seed for the random source; 0 picks one from the clock.
	Seed int64 `env:"GENERATION_SEED" envDefault:"0"`
	// MaxAttempts per episode; 0 retries until an episode fits.
	MaxAttempts int `env:"GENERATION_MAX_ATTEMPTS" envDefault:"0"`
	// YearLimit is the exclusive upper bound for a run's start year.
	YearLimit int `env:"GENERATION_YEAR_LIMIT" envDefault:"2024"`
	// MaxYears caps how many years a single run may cover.
	MaxYears int `env:"GENERATION_MAX_YEARS" envDefault:"50"`
}

// AdminConfig holds the credentials for mutating endpoints.
type AdminConfig struct {
	// KeyHash is a bcrypt hash of the admin key. Empty leaves mutating
	// endpoints open, which Validate only allows outside production.
	KeyHash string `env:"ADMIN_KEY_HASH"`
}

// RateLimitConfig holds generation endpoint throttling.
type RateLimitConfig struct {
	GenerationsPerMinute float64 `env:"RATE_LIMIT_GENERATIONS_PER_MINUTE" envDefault:"6"`
	Burst                int     `env:"RATE_LIMIT_BURST" envDefault:"2"`
}

// flagValues are the raw command-line overrides. Empty means unset.
type flagValues struct {
	env, logLevel, dbPath, port, indexPath string
	seed, maxAttempts, yearLimit, maxYears string
	envFile                                string
}

func registerFlags(fs *flag.FlagSet) *flagValues {
	f := &flagValues{}
	fs.StringVar(&f.env, "env", "", "Environment (development, staging, production)")
	fs.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.dbPath, "db", "", "Path to the SQLite database")
	fs.StringVar(&f.port, "port", "", "Server port (default: 8080)")
	fs.StringVar(&f.indexPath, "index", "", "Path to the search index")
	fs.StringVar(&f.seed, "seed", "", "Random seed for generation (0: from clock)")
	fs.StringVar(&f.maxAttempts, "max-attempts", "", "Attempts per episode before giving up (0: unbounded)")
	fs.StringVar(&f.yearLimit, "year-limit", "", "Exclusive upper bound for the start year (default: 2024)")
	fs.StringVar(&f.maxYears, "max-years", "", "Most years a single run may cover (default: 50)")
	fs.StringVar(&f.envFile, "env-file", ".env", "Path to .env file")
	return f
}

// LoadConfig loads configuration from the process command line.
func LoadConfig() (*Config, error) {
	return Load(flag.CommandLine, os.Args[1:])
}

// Load registers the configuration flags on fs, parses args and loads
// configuration with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
// Callers may register their own flags on fs before calling Load.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	f := registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Load .env file if it exists (silently ignore if not found).
	if err := loadEnvFile(f.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.applyFlags(f); err != nil {
		return nil, err
	}

	var err error
	if cfg.Database.Path, err = expandPath(cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("invalid database path: %w", err)
	}
	if cfg.Search.IndexPath, err = expandPath(cfg.Search.IndexPath); err != nil {
		return nil, fmt.Errorf("invalid search index path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyFlags(f *flagValues) error {
	setString(&c.App.Environment, f.env)
	setString(&c.Logger.Level, f.logLevel)
	setString(&c.Database.Path, f.dbPath)
	setString(&c.Server.Port, f.port)
	setString(&c.Search.IndexPath, f.indexPath)

	if f.seed != "" {
		v, err := strconv.ParseInt(f.seed, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed %q: %w", f.seed, err)
		}
		c.Generation.Seed = v
	}
	if err := setInt(&c.Generation.MaxAttempts, "max-attempts", f.maxAttempts); err != nil {
		return err
	}
	if err := setInt(&c.Generation.YearLimit, "year-limit", f.yearLimit); err != nil {
		return err
	}
	return setInt(&c.Generation.MaxYears, "max-years", f.maxYears)
}

func setString(dst *string, flagValue string) {
	if flagValue != "" {
		*dst = flagValue
	}
}

func setInt(dst *int, name, flagValue string) error {
	if flagValue == "" {
		return nil
	}
	v, err := strconv.Atoi(flagValue)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, flagValue, err)
	}
	*dst = v
	return nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Database.Path == "" {
		return errors.New("database path cannot be empty")
	}
	if c.Search.IndexPath == "" {
		return errors.New("search index path cannot be empty")
	}

	if c.Generation.MaxAttempts < 0 {
		return fmt.Errorf("max attempts cannot be negative: %d", c.Generation.MaxAttempts)
	}
	if c.Generation.YearLimit <= 0 {
		return fmt.Errorf("year limit must be positive: %d", c.Generation.YearLimit)
	}
	if c.Generation.MaxYears <= 0 {
		return fmt.Errorf("max years must be positive: %d", c.Generation.MaxYears)
	}

	if c.RateLimit.GenerationsPerMinute <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("rate limit and burst must be positive")
	}

	if c.App.Environment == "production" && c.Admin.KeyHash == "" {
		return errors.New("ADMIN_KEY_HASH is required in production")
	}

	return nil
}

// expandPath expands ~ and makes the path absolute. Empty stays empty.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=value.
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Remove quotes if present.
		value = strings.Trim(value, `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
