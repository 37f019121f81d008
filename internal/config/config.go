// Package config loads ghscout settings from defaults, an optional YAML file,
// and GHSCOUT_* environment variables, in increasing order of precedence.
// CLI flags are applied on top by the cli package.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/rshade/ghscout/internal/logging"
)

// Defaults.
const (
	DefaultBaseURL   = "https://api.github.com"
	DefaultTimeout   = 10 * time.Second
	DefaultCacheTTL  = 5 * time.Minute
	DefaultOutput    = OutputTable
	DefaultLogLevel  = "info"
	DefaultLogFormat = logging.FormatConsole

	dirName       = ".ghscout"
	configFile    = "config.yaml"
	cacheFileName = "cache.json"

	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "GHSCOUT_CONFIG"
)

// Output formats.
const (
	OutputTable = "table"
	OutputJSON  = "json"
	OutputYAML  = "yaml"
)

// Configuration errors.
var (
	ErrInvalidConfigFile = errors.New("invalid config file")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// Config is the full ghscout configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// APIConfig controls the GitHub API client.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"GHSCOUT_API_URL"`
	Timeout time.Duration `yaml:"timeout"  env:"GHSCOUT_TIMEOUT"`
}

// CacheConfig controls the response cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" env:"GHSCOUT_CACHE_ENABLED"`
	File    string        `yaml:"file"    env:"GHSCOUT_CACHE_FILE"`
	TTL     time.Duration `yaml:"ttl"     env:"GHSCOUT_CACHE_TTL"`
}

// LoggingConfig controls diagnostics written to stderr or a file.
type LoggingConfig struct {
	Level  string `yaml:"level"  env:"GHSCOUT_LOG_LEVEL"`
	Format string `yaml:"format" env:"GHSCOUT_LOG_FORMAT"`
	File   string `yaml:"file"   env:"GHSCOUT_LOG_FILE"`
}

// OutputConfig controls result rendering.
type OutputConfig struct {
	Format string `yaml:"format" env:"GHSCOUT_OUTPUT"`
}

// Dir returns the ghscout home directory, ~/.ghscout, falling back to the
// system temp directory when no home directory is known.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), dirName)
	}
	return filepath.Join(home, dirName)
}

// Path returns the config file path, honouring GHSCOUT_CONFIG.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(Dir(), configFile)
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: DefaultBaseURL,
			Timeout: DefaultTimeout,
		},
		Cache: CacheConfig{
			Enabled: true,
			File:    filepath.Join(Dir(), cacheFileName),
			TTL:     DefaultCacheTTL,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Output: OutputConfig{
			Format: DefaultOutput,
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path, and the
// environment. A missing file is not an error. A malformed file returns an
// error wrapping ErrInvalidConfigFile; callers may fall back to FromEnv.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrInvalidConfigFile, path, unmarshalErr)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("%w %s: %w", ErrInvalidConfigFile, path, err)
	}

	if envErr := env.Parse(cfg); envErr != nil {
		return nil, fmt.Errorf("%w: environment: %w", ErrInvalidConfig, envErr)
	}
	return cfg, nil
}

// FromEnv builds the configuration from defaults and the environment only.
func FromEnv() (*Config, error) {
	cfg := Default()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("%w: api.base_url cannot be empty", ErrInvalidConfig)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be > 0, got %s", ErrInvalidConfig, c.API.Timeout)
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("%w: cache.ttl must be > 0, got %s", ErrInvalidConfig, c.Cache.TTL)
		}
		if c.Cache.File == "" {
			return fmt.Errorf("%w: cache.file cannot be empty", ErrInvalidConfig)
		}
	}
	switch c.Output.Format {
	case OutputTable, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("%w: output.format must be table, json, or yaml, got %q",
			ErrInvalidConfig, c.Output.Format)
	}
	switch strings.ToLower(c.Logging.Format) {
	case logging.FormatConsole, logging.FormatJSON, "":
	default:
		return fmt.Errorf("%w: logging.format must be console or json, got %q",
			ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// ToLoggingConfig converts the logging section for the logging package.
// A configured file switches output from stderr to that file.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	output := logging.OutputStderr
	if lc.File != "" {
		output = logging.OutputFile
	}
	return logging.Config{
		Level:  lc.Level,
		Format: strings.ToLower(lc.Format),
		Output: output,
		File:   lc.File,
	}
}

// Save writes cfg as YAML to path, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
