package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the minbar-search service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Typesense TypesenseConfig `yaml:"typesense"`
	Redis     RedisConfig     `yaml:"redis"`
	Search    SearchConfig    `yaml:"search"`
	Stats     StatsConfig     `yaml:"stats"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings. No keys disables auth.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// TypesenseConfig holds document store connection settings.
type TypesenseConfig struct {
	URL              string `yaml:"url"`
	APIKey           string `yaml:"api_key"`
	TimeoutSec       int    `yaml:"timeout_sec"`
	ReadinessTimeout int    `yaml:"readiness_timeout_sec"`
}

// RedisConfig holds the query statistics store settings.
// Empty Addrs disables query statistics.
type RedisConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Enabled reports whether a Redis store is configured.
func (r RedisConfig) Enabled() bool { return len(r.Addrs) > 0 }

// SearchConfig holds paging and facet limits.
type SearchConfig struct {
	DefaultPerPage int `yaml:"default_per_page"`
	MaxPerPage     int `yaml:"max_per_page"`
	BrowsePerPage  int `yaml:"browse_per_page"`
	MaxFacetValues int `yaml:"max_facet_values"`
}

// StatsConfig holds popular-query statistics settings.
type StatsConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
	TTLHours  int    `yaml:"ttl_hours"`
	TopLimit  int    `yaml:"top_limit"`
}

// TTL returns how long a daily counter is kept.
func (s StatsConfig) TTL() time.Duration { return time.Duration(s.TTLHours) * time.Hour }

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Typesense.TimeoutSec <= 0 {
		c.Typesense.TimeoutSec = 5
	}
	if c.Typesense.ReadinessTimeout <= 0 {
		c.Typesense.ReadinessTimeout = 10
	}
	if c.Redis.ReadinessTimeout <= 0 {
		c.Redis.ReadinessTimeout = 10
	}
	if c.Search.DefaultPerPage <= 0 {
		c.Search.DefaultPerPage = 12
	}
	if c.Search.MaxPerPage <= 0 {
		c.Search.MaxPerPage = 51
	}
	if c.Search.BrowsePerPage <= 0 {
		c.Search.BrowsePerPage = 6
	}
	if c.Search.MaxFacetValues <= 0 {
		c.Search.MaxFacetValues = 999
	}
	if c.Stats.KeyPrefix == "" {
		c.Stats.KeyPrefix = "minbar:"
	}
	if c.Stats.TTLHours <= 0 {
		c.Stats.TTLHours = 24 * 30
	}
	if c.Stats.TopLimit <= 0 {
		c.Stats.TopLimit = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Typesense.URL == "" {
		return fmt.Errorf("typesense.url is required")
	}
	if c.Typesense.APIKey == "" {
		return fmt.Errorf("typesense.api_key is required")
	}
	if c.Search.DefaultPerPage < 1 || c.Search.DefaultPerPage > c.Search.MaxPerPage {
		return fmt.Errorf(
			"search.default_per_page must be between 1 and search.max_per_page (%d), got %d",
			c.Search.MaxPerPage, c.Search.DefaultPerPage,
		)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
