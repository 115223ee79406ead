// Package cli implements the gitego command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitego/internal/config"
	"github.com/matzehuels/gitego/pkg/buildinfo"
	"github.com/matzehuels/gitego/pkg/cache"
	"github.com/matzehuels/gitego/pkg/github"
	"github.com/matzehuels/gitego/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out    io.Writer // command output
	status io.Writer // spinners

	configPath   string
	cacheBackend string
	noCache      bool
}

// New creates a CLI that logs to w at level and prints results to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
		status: w,
	}
}

// SetOutput redirects command output.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "gitego",
		Short:        "gitego shows who starred your GitHub repositories",
		Long:         `gitego looks up a GitHub user through the GraphQL API and lists the stargazers of their repositories, newest first. It serves the lookup as a web page and JSON API, or prints it to the terminal.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			hooks := observability.NewLogHooks(c.Logger)
			observability.SetTagHooks(hooks)
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "path to a TOML config file")
	flags.StringVar(&c.cacheBackend, "cache-backend", "", "cache backend: memory, file, redis or none")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the response cache")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.userCommand())
	root.AddCommand(c.stargazersCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Client Factory
// =============================================================================

// loadConfig applies the persistent flags over the loaded config. One-shot
// commands gain nothing from the in-process cache, so they swap the memory
// default for the file cache.
func (c *CLI) loadConfig(oneShot bool) (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.cacheBackend != "" {
		cfg.Cache.Backend = c.cacheBackend
	}
	if c.noCache {
		cfg.Cache.Backend = config.BackendNone
	}
	if oneShot && cfg.Cache.Backend == config.BackendMemory {
		cfg.Cache.Backend = config.BackendFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newClient builds a GitHub client and its cache. The caller closes the cache.
func (c *CLI) newClient(ctx context.Context, oneShot bool) (*github.Client, cache.Cache, error) {
	cfg, err := c.loadConfig(oneShot)
	if err != nil {
		return nil, nil, err
	}
	cc, err := cfg.OpenCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	client, err := cfg.NewGitHubClient(cc, c.Logger)
	if err != nil {
		_ = cc.Close()
		return nil, nil, err
	}
	c.Logger.Debug("Using cache", "backend", cfg.Cache.Backend, "ttl", cfg.Cache.TTL)
	return client, cc, nil
}
