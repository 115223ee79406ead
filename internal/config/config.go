// Package config loads gitego settings from defaults, an optional TOML file,
// a .env file, and the environment, in increasing order of precedence.
package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/matzehuels/gitego/pkg/cache"
	"github.com/matzehuels/gitego/pkg/errors"
	"github.com/matzehuels/gitego/pkg/github"
	"github.com/matzehuels/gitego/pkg/graphql"
)

const appName = "gitego"

// Cache backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Config holds all runtime settings.
type Config struct {
	// Addr is the server listen address.
	Addr string `toml:"addr"`

	// Token is the GitHub personal access token. It is only read from the
	// environment.
	Token string `toml:"-"`

	GitHub GitHubConfig `toml:"github"`
	Cache  CacheConfig  `toml:"cache"`
}

// GitHubConfig configures the upstream GraphQL client.
type GitHubConfig struct {
	Endpoint string        `toml:"endpoint"`
	Timeout  time.Duration `toml:"timeout"`
	Retries  int           `toml:"retries"`
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	Backend  string        `toml:"backend"`
	TTL      time.Duration `toml:"ttl"`
	Dir      string        `toml:"dir"`
	RedisURL string        `toml:"redis_url"`
	Prefix   string        `toml:"prefix"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Addr: ":8000",
		GitHub: GitHubConfig{
			Endpoint: graphql.DefaultEndpoint,
			Timeout:  graphql.DefaultTimeout,
		},
		Cache: CacheConfig{
			Backend: BackendMemory,
			TTL:     graphql.DefaultTTL,
			Prefix:  appName + ":",
		},
	}
}

// Load builds a Config. path names an optional TOML file; an empty path
// skips it. A missing .env file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
		}
	}

	cfg.Token = firstEnv("GITHUB_PERSONAL_ACCESS_TOKEN", "GITHUB_TOKEN")
	if v := os.Getenv("GITEGO_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("GITEGO_CACHE"); v != "" {
		cfg.Cache.Backend = v
	}
	if v := os.Getenv("GITEGO_REDIS_URL"); v != "" {
		cfg.Cache.RedisURL = v
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = DefaultCacheDir()
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendMemory, BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidInput, "redis cache backend requires a redis URL")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must be positive, got %s", c.Cache.TTL)
	}
	if c.GitHub.Timeout <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "github timeout must be positive, got %s", c.GitHub.Timeout)
	}
	if c.GitHub.Retries < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "github retries must not be negative, got %d", c.GitHub.Retries)
	}
	return errors.ValidateURL(c.GitHub.Endpoint)
}

// OpenCache creates the configured cache backend.
func (c *Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendFile:
		fc, err := cache.NewFileCache(c.Cache.Dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	case BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.Cache.RedisURL, c.Cache.Prefix)
		if err != nil {
			return nil, err
		}
		return rc, nil
	default:
		return cache.NewMemoryCache(), nil
	}
}

// NewGitHubClient builds the GitHub client over cc. Cache keys are scoped
// by endpoint so one cache can serve several GitHub instances.
func (c *Config) NewGitHubClient(cc cache.Cache, logger *log.Logger) (*github.Client, error) {
	scope := cache.Hash([]byte(c.GitHub.Endpoint))[:8] + ":"
	gql, err := graphql.NewClient(c.Token,
		graphql.WithEndpoint(c.GitHub.Endpoint),
		graphql.WithKeyer(cache.NewScopedKeyer(nil, scope)),
		graphql.WithTimeout(c.GitHub.Timeout),
		graphql.WithRetries(c.GitHub.Retries),
		graphql.WithCache(cc),
		graphql.WithTTL(c.Cache.TTL),
		graphql.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	return github.NewClient(gql), nil
}

// DefaultCacheDir follows XDG: $XDG_CACHE_HOME/gitego or ~/.cache/gitego.
func DefaultCacheDir() string {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".cache", appName)
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
