package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/givers/contactform/internal/repository"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is read from the environment, after an optional .env file.
type Config struct {
	HTTPAddr    string `env:"HTTP_ADDR" env-default:":8080"`
	FrontendURL string `env:"FRONTEND_URL" env-default:"http://localhost:8080"`

	StoreBackend string `env:"STORE_BACKEND" env-default:"csv"`
	StorePath    string `env:"STORE_PATH" env-default:"data/submissions.csv"`
	SQLitePath   string `env:"SQLITE_PATH" env-default:"data/submissions.db"`
	DatabaseURL  string `env:"DATABASE_URL"`

	MessageMaxLength   int           `env:"MESSAGE_MAX_LENGTH" env-default:"1000"`
	SubmitDelay        time.Duration `env:"SUBMIT_DELAY" env-default:"500ms"`
	RateLimitPerMinute int           `env:"RATE_LIMIT_PER_MINUTE" env-default:"10"`

	// AdminSecret signs bearer tokens for the CSV export. Empty disables the export route.
	AdminSecret string `env:"ADMIN_SECRET"`

	LegalDocsDir string `env:"LEGAL_DOCS_DIR" env-default:"./legal"`

	LogLevel string `env:"LOG_LEVEL" env-default:"INFO"`
}

// Load reads .env files (missing ones are ignored) and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(repository.Backends, c.StoreBackend) {
		errs = append(errs, fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend))
	}
	if c.StoreBackend == repository.BackendPostgres && c.DatabaseURL == "" {
		errs = append(errs, errors.New("config: DATABASE_URL is required when STORE_BACKEND=postgres"))
	}
	if c.MessageMaxLength <= 0 {
		errs = append(errs, errors.New("config: MESSAGE_MAX_LENGTH must be positive"))
	}
	if c.SubmitDelay < 0 {
		errs = append(errs, errors.New("config: SUBMIT_DELAY must not be negative"))
	}
	if c.RateLimitPerMinute <= 0 {
		errs = append(errs, errors.New("config: RATE_LIMIT_PER_MINUTE must be positive"))
	}
	return errors.Join(errs...)
}
