package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitego/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the lookup page and JSON API",
		Long: `Serve the lookup page and JSON API.

The server stops gracefully on SIGINT or SIGTERM. The listen address comes
from --addr, GITEGO_ADDR or the config file, in that order.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig(false)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			cc, err := cfg.OpenCache(ctx)
			if err != nil {
				return err
			}
			defer cc.Close()

			client, err := cfg.NewGitHubClient(cc, c.Logger)
			if err != nil {
				return err
			}
			srv, err := server.New(client, c.Logger)
			if err != nil {
				return err
			}
			c.Logger.Info("Starting gitego", "cache", cfg.Cache.Backend, "ttl", cfg.Cache.TTL)
			return srv.ListenAndServe(ctx, cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default \":8000\")")
	return cmd
}
