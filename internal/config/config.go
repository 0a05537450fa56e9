// Package config loads citetrack settings from a YAML file, a .env file
// and the process environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/matsen/citetrack/internal/logging"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "citetrack"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CITETRACK_"
)

// Defaults.
const (
	DefaultAddr            = ":8080"
	DefaultLogLevel        = "info"
	DefaultTopN            = 5
	DefaultMaxUploadBytes  = 32 << 20
	DefaultShutdownTimeout = 10 * time.Second
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all runtime settings.
type Config struct {
	Addr            string        `yaml:"addr"`
	LogLevel        string        `yaml:"log_level"`
	TopN            int           `yaml:"top_n"`
	UploadDir       string        `yaml:"upload_dir,omitempty"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	RateLimit       float64       `yaml:"rate_limit"` // requests per second, 0 disables
	RateBurst       int           `yaml:"rate_burst"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	SeedFiles       []string      `yaml:"seed_files,omitempty"`
}

// Default returns a config with every default applied.
func Default() *Config {
	return &Config{
		Addr:            DefaultAddr,
		LogLevel:        DefaultLogLevel,
		TopN:            DefaultTopN,
		MaxUploadBytes:  DefaultMaxUploadBytes,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// DefaultPath returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/citetrack/config.yml.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load builds the config from defaults, the YAML file at path (DefaultPath
// if empty; a missing file is not an error), a .env file in the working
// directory if present, and CITETRACK_* environment variables.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Expand tilde in paths
	c.UploadDir = ExpandTilde(c.UploadDir)
	for i, f := range c.SeedFiles {
		c.SeedFiles[i] = ExpandTilde(f)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := lookupEnv("ADDR"); ok {
		c.Addr = v
	}
	if v, ok := lookupEnv("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookupEnv("UPLOAD_DIR"); ok {
		c.UploadDir = ExpandTilde(v)
	}
	if v, ok := lookupEnv("TOP_N"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sTOP_N=%q is not an integer", ErrInvalidConfig, EnvPrefix, v)
		}
		c.TopN = n
	}
	if v, ok := lookupEnv("RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %sRATE_LIMIT=%q is not a number", ErrInvalidConfig, EnvPrefix, v)
		}
		c.RateLimit = f
	}
	if v, ok := lookupEnv("RATE_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sRATE_BURST=%q is not an integer", ErrInvalidConfig, EnvPrefix, v)
		}
		c.RateBurst = n
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

// Validate checks value ranges. A zero rate burst with a positive rate
// limit is raised to 1 so the limiter can admit requests.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalidConfig)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.TopN < 1 {
		return fmt.Errorf("%w: top_n must be at least 1, got %d", ErrInvalidConfig, c.TopN)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: max_upload_bytes must be positive", ErrInvalidConfig)
	}
	if c.RateLimit < 0 || c.RateBurst < 0 {
		return fmt.Errorf("%w: rate_limit and rate_burst cannot be negative", ErrInvalidConfig)
	}
	if c.RateLimit > 0 && c.RateBurst == 0 {
		c.RateBurst = 1
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	return nil
}

// ExpandTilde replaces a leading ~ with the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
