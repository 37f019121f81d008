package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/ghscout/internal/logging"
)

// NewCacheStatsCmd creates the cache stats command.
func NewCacheStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry counts",
		Long: `Shows how many entries the cache file holds and how many of them are still
within the TTL. Expired entries stay on disk until "cache cleanup" or
"cache clear" removes them.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := runtimeFrom(cmd.Context())
			if err != nil {
				return err
			}
			svc := rt.svc
			return newRenderer(cmd.OutOrStdout(), rt.cfg.Output.Format).
				cacheStats(svc.CacheStats(), svc.CachePath(), svc.CacheTTL(), rt.cfg.Cache.Enabled)
		},
	}
}

// NewCacheClearCmd creates the cache clear command.
func NewCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cache entry",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := runtimeFrom(cmd.Context())
			if err != nil {
				return err
			}
			if !rt.cfg.Cache.Enabled {
				cmd.Println("Cache is disabled, nothing to clear.")
				return nil
			}

			before := rt.svc.CacheStats().Total
			if err = rt.svc.ClearCache(); err != nil {
				return err
			}

			logging.FromContext(cmd.Context()).Debug().Ctx(cmd.Context()).
				Str("component", "cli").
				Str("operation", "cache_clear").
				Int("removed", before).
				Msg("cache cleared")
			cmd.Printf("Cleared %d cache entries from %s\n", before, rt.svc.CachePath())
			return nil
		},
	}
}

// NewCacheCleanupCmd creates the cache cleanup command.
func NewCacheCleanupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Remove expired cache entries",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := runtimeFrom(cmd.Context())
			if err != nil {
				return err
			}
			if !rt.cfg.Cache.Enabled {
				cmd.Println("Cache is disabled, nothing to clean up.")
				return nil
			}

			removed, err := rt.svc.CleanupCache()
			if err != nil {
				return err
			}

			logging.FromContext(cmd.Context()).Debug().Ctx(cmd.Context()).
				Str("component", "cli").
				Str("operation", "cache_cleanup").
				Int("removed", removed).
				Msg("cache cleanup finished")
			cmd.Printf("Removed %d expired cache entries\n", removed)
			return nil
		},
	}
}
