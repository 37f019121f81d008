package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/ghscout/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// Persistent flag names shared by every command.
const (
	flagDebug     = "debug"
	flagConfig    = "config"
	flagCacheTTL  = "cache-ttl"
	flagNoCache   = "no-cache"
	flagCacheFile = "cache-file"
	flagAPIURL    = "api-url"
	flagTimeout   = "timeout"
	flagOutput    = "output"
)

// NewRootCmd creates the root Cobra command for the ghscout CLI.
// It resolves configuration, wires logging and tracing, and builds the data
// service shared by the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.Result

	cmd := &cobra.Command{
		Use:           "ghscout",
		Short:         "Search and inspect GitHub repositories from the terminal",
		Long:          "ghscout: search, list, and inspect public GitHub repositories and users with a local response cache",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			logResult = setupLogging(cmd, cfg)

			svc := buildService(cfg, logResult.Logger)
			cmd.SetContext(withRuntime(cmd.Context(), &runtime{cfg: cfg, svc: svc}))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
	}

	cmd.SetFlagErrorFunc(flagErrorFunc)

	pf := cmd.PersistentFlags()
	pf.Bool(flagDebug, false, "enable debug logging")
	pf.String(flagConfig, "", "config file (default ~/.ghscout/config.yaml, or $GHSCOUT_CONFIG)")
	pf.String(flagCacheTTL, "",
		"cache TTL as seconds or a duration such as 10m (overrides config file and env var)")
	pf.Bool(flagNoCache, false, "bypass the response cache for this invocation")
	pf.String(flagCacheFile, "", "cache file path (default ~/.ghscout/cache.json)")
	pf.String(flagAPIURL, "", "GitHub API base URL")
	pf.Duration(flagTimeout, 0, "per-request timeout, e.g. 5s (default 10s)")
	pf.StringP(flagOutput, "o", "", "output format: table, json, yaml (default table)")

	cmd.AddCommand(
		NewSearchCmd(), NewReposCmd(), NewRepoCmd(), NewUserCmd(), NewFindCmd(),
		newCacheCmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Search repositories, most starred first
  ghscout search "language:go cli" --sort stars

  # Search and keep only non-archived Go repositories with 100 to 5000 stars
  ghscout search http --language go --min-stars 100 --max-stars 5000 --archived=false

  # List a user's repositories sorted client-side by forks
  ghscout repos octocat --sort-by forks:desc

  # Show one repository as JSON
  ghscout repo octocat/Hello-World -o json

  # Show a user profile
  ghscout user octocat

  # Pick one repository out of a search result by id
  ghscout find "hello world" --id 1296269

  # Inspect and maintain the response cache
  ghscout cache stats
  ghscout cache cleanup

  # Bypass the cache or shorten its TTL
  ghscout search kubernetes --no-cache
  ghscout search kubernetes --cache-ttl 30s`

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Response cache commands"}
	cmd.AddCommand(NewCacheStatsCmd(), NewCacheClearCmd(), NewCacheCleanupCmd())
	return cmd
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
