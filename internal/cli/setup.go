package cli

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/ghscout/internal/config"
	"github.com/rshade/ghscout/internal/engine"
	"github.com/rshade/ghscout/internal/engine/cache"
	"github.com/rshade/ghscout/internal/github"
	"github.com/rshade/ghscout/internal/logging"
)

// configPath returns the --config flag value or the default location.
func configPath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString(flagConfig); p != "" {
		return p
	}
	return config.Path()
}

// resolveConfig loads the config file and environment, then applies any
// persistent flags the user set explicitly. A malformed config file is
// reported and skipped rather than failing the command.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath(cmd)
	cfg, err := config.Load(path)
	if errors.Is(err, config.ErrInvalidConfigFile) {
		cmd.PrintErrf("Warning: ignoring config file: %v\n", err)
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return nil, err
	}

	if err = applyFlagOverrides(cmd, cfg); err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlagOverrides copies explicitly set flags onto cfg. CLI flags take
// precedence over the environment and the config file.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	if flags.Changed(flagCacheTTL) {
		raw, _ := flags.GetString(flagCacheTTL)
		ttl, err := cache.ParseTTL(raw)
		if err != nil {
			return usagef("invalid --%s: %w", flagCacheTTL, err)
		}
		cfg.Cache.TTL = ttl
	}
	if flags.Changed(flagNoCache) {
		noCache, _ := flags.GetBool(flagNoCache)
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed(flagCacheFile) {
		cfg.Cache.File, _ = flags.GetString(flagCacheFile)
	}
	if flags.Changed(flagAPIURL) {
		cfg.API.BaseURL, _ = flags.GetString(flagAPIURL)
	}
	if flags.Changed(flagTimeout) {
		timeout, _ := flags.GetDuration(flagTimeout)
		if timeout <= 0 {
			return usagef("--%s must be positive, got %s", flagTimeout, timeout)
		}
		cfg.API.Timeout = timeout
	}
	if flags.Changed(flagOutput) {
		output, _ := flags.GetString(flagOutput)
		if err := oneOf(flagOutput, output, config.OutputTable, config.OutputJSON, config.OutputYAML); err != nil {
			return err
		}
		cfg.Output.Format = output
	}
	return nil
}

// buildService wires the cache store and API client into the data service.
func buildService(cfg *config.Config, l zerolog.Logger) *engine.Service {
	var store engine.Cache
	if cfg.Cache.Enabled {
		store = cache.NewStore(cfg.Cache.File,
			cache.WithTTL(cfg.Cache.TTL),
			cache.WithLogger(logging.ComponentLogger(l, "cache")),
		)
	}

	client := github.NewClient(
		github.WithBaseURL(cfg.API.BaseURL),
		github.WithTimeout(cfg.API.Timeout),
	)
	return engine.NewService(store, client)
}
