package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/ghscout/internal/config"
	"github.com/rshade/ghscout/internal/logging"
)

// setupLogging configures logging based on config file, environment, and CLI flags,
// and attaches the logger and a trace ID to the command context.
func setupLogging(cmd *cobra.Command, cfg *config.Config) *logging.Result {
	loggingCfg := cfg.Logging.ToLoggingConfig()

	debug, _ := cmd.Flags().GetBool(flagDebug)
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = logging.FormatConsole
		loggingCfg.Output = logging.OutputStderr
		loggingCfg.File = ""
		loggingCfg.Caller = true
	}

	result := logging.NewLogger(loggingCfg)
	logger = logging.ComponentLogger(result.Logger, "cli")

	if result.FallbackReason != "" {
		logging.PrintFallbackWarning(cmd.ErrOrStderr(), result.FallbackReason)
	}

	ctx := result.Logger.WithContext(cmd.Context())
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).
		Str("command", cmd.Name()).
		Str("api_url", cfg.API.BaseURL).
		Bool("cache_enabled", cfg.Cache.Enabled).
		Dur("cache_ttl", cfg.Cache.TTL).
		Msg("command started")

	return result
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging(_ *cobra.Command, logResult *logging.Result) error {
	if logResult != nil {
		return logResult.Close()
	}
	return nil
}
