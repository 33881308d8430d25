package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/five82/marquee/internal/filter"
)

// Config captures everything marquee reads at startup.
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Search  SearchConfig  `mapstructure:"search"`
	Logging LoggingConfig `mapstructure:"logging"`

	// Path is the config file that was read; empty when defaults were used.
	Path string `mapstructure:"-"`
}

// TMDBConfig holds catalog API connection details.
type TMDBConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SearchConfig tunes the search box behavior.
type SearchConfig struct {
	Debounce     time.Duration `mapstructure:"debounce"`
	DiscardStale bool          `mapstructure:"discard_stale"`
	Filter       string        `mapstructure:"filter"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

const (
	defaultConfigPath = "~/.config/marquee/config.toml"
	defaultLogFile    = "~/.local/state/marquee/marquee.log"
	defaultBaseURL    = "https://api.themoviedb.org/3"
	defaultTimeout    = 10 * time.Second
	defaultDebounce   = 500 * time.Millisecond

	envPrefix = "MARQUEE"
	// apiKeyEnv is the conventional variable name used by other TMDB tools.
	apiKeyEnv = "TMDB_API_KEY"
)

// Load locates and parses the config file, falling back to defaults when it
// is missing. Environment variables (MARQUEE_TMDB_API_KEY, TMDB_API_KEY,
// MARQUEE_SEARCH_DEBOUNCE, ...) override file values.
func Load(path string) (*Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("tmdb.api_key", envPrefix+"_TMDB_API_KEY", apiKeyEnv); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	used := ""
	if _, err := os.Stat(resolved); err == nil {
		v.SetConfigFile(resolved)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		used = resolved
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("open config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Path = used
	cfg.normalize()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Default returns the configuration used when no file or environment is set.
func Default() Config {
	cfg := Config{
		TMDB:    TMDBConfig{BaseURL: defaultBaseURL, Timeout: defaultTimeout},
		Search:  SearchConfig{Debounce: defaultDebounce},
		Logging: LoggingConfig{Level: "info", Format: "console", File: defaultLogFile},
	}
	cfg.normalize()
	return cfg
}

// HasAPIKey reports whether a bearer token is configured.
func (c Config) HasAPIKey() bool {
	return strings.TrimSpace(c.TMDB.APIKey) != ""
}

// LogFilePath returns the expanded log file path.
func (c Config) LogFilePath() string {
	if strings.TrimSpace(c.Logging.File) == "" {
		return mustExpand(defaultLogFile)
	}
	return mustExpand(c.Logging.File)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("tmdb.base_url", defaultBaseURL)
	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.timeout", defaultTimeout)

	v.SetDefault("search.debounce", defaultDebounce)
	v.SetDefault("search.discard_stale", false)
	v.SetDefault("search.filter", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", defaultLogFile)
}

func (c *Config) normalize() {
	c.TMDB.BaseURL = strings.TrimSpace(c.TMDB.BaseURL)
	if c.TMDB.BaseURL == "" {
		c.TMDB.BaseURL = defaultBaseURL
	}
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	c.Search.Filter = strings.TrimSpace(c.Search.Filter)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.File = mustExpand(c.Logging.File)
}

var (
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	validFormats = map[string]bool{"console": true, "json": true}
)

// validate checks if the configuration is valid.
func validate(cfg *Config) error {
	u, err := url.Parse(cfg.TMDB.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("tmdb.base_url %q must be an http(s) URL", cfg.TMDB.BaseURL)
	}
	if cfg.TMDB.Timeout < 0 {
		return fmt.Errorf("tmdb.timeout must not be negative")
	}
	if cfg.Search.Debounce < 0 {
		return fmt.Errorf("search.debounce must not be negative")
	}
	if _, err := filter.Compile(cfg.Search.Filter); err != nil {
		return fmt.Errorf("search.filter: %w", err)
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath expands a leading ~ to the home directory and returns an
// absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
