// Package config loads pawsome settings. Precedence, lowest first:
// defaults, YAML file, environment (after .env), command-line flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile  = "pawsome.yaml"
	DefaultDBPath      = "pawsome.db"
	DefaultBaseURL     = "https://frontend-take-home-service.fetch.com"
	DefaultShareBase   = "https://pawsome.example"
	DefaultPageSize    = 12
	DefaultTimeout     = 30 * time.Second
	DefaultConcurrency = 4
	DefaultLogLevel    = "info"
)

// Config holds every runtime setting
type Config struct {
	BaseURL        string        `yaml:"base_url"`
	ShareBaseURL   string        `yaml:"share_base_url"`
	DBPath         string        `yaml:"db"`
	PageSize       int           `yaml:"page_size"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	Concurrency    int           `yaml:"fetch_concurrency"`
	LogLevel       string        `yaml:"log_level"`
	Name           string        `yaml:"name"`
	Email          string        `yaml:"email"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		ShareBaseURL:   DefaultShareBase,
		DBPath:         DefaultDBPath,
		PageSize:       DefaultPageSize,
		RequestTimeout: DefaultTimeout,
		Concurrency:    DefaultConcurrency,
		LogLevel:       DefaultLogLevel,
	}
}

// Load reads .env (if present), the YAML file at path (if present) and
// the PAWSOME_* environment variables on top of the defaults.
// A missing file is not an error when path is the default name.
func Load(path string) (Config, error) {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultConfigFile
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setString("PAWSOME_BASE_URL", &c.BaseURL)
	setString("PAWSOME_SHARE_BASE", &c.ShareBaseURL)
	setString("PAWSOME_DB", &c.DBPath)
	setString("PAWSOME_LOG_LEVEL", &c.LogLevel)
	setString("PAWSOME_NAME", &c.Name)
	setString("PAWSOME_EMAIL", &c.Email)

	if v := strings.TrimSpace(os.Getenv("PAWSOME_PAGE_SIZE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PAWSOME_PAGE_SIZE value: %q", v)
		}
		c.PageSize = n
	}
	if v := strings.TrimSpace(os.Getenv("PAWSOME_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PAWSOME_TIMEOUT value: %q", v)
		}
		c.RequestTimeout = d
	}
	return nil
}

// Validate rejects settings the app cannot run with
func (c Config) Validate() error {
	for name, raw := range map[string]string{"base URL": c.BaseURL, "share base URL": c.ShareBaseURL} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid %s: %q", name, raw)
		}
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		return fmt.Errorf("page size must be between 1 and 100, got %d", c.PageSize)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("fetch concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.DBPath == "" {
		return errors.New("database path is empty")
	}
	return nil
}
