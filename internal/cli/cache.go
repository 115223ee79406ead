package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitego/pkg/cache"
)

// cacheCommand manages the file cache used by one-shot commands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the on-disk response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(true)
			if err != nil {
				return err
			}
			fc, err := cache.NewFileCache(cfg.Cache.Dir)
			if err != nil {
				return fmt.Errorf("open cache dir: %w", err)
			}

			count, err := fc.Clear()
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo(c.out, "Cache is empty")
				return nil
			}
			printSuccess(c.out, "Cleared %d cached entries", count)
			printDetail(c.out, "Directory: %s", fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(true)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, cfg.Cache.Dir)
			return nil
		},
	}
}
