package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rshade/ghscout/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Loads the configuration file and GHSCOUT_* environment variables and checks
them for syntax and semantic correctness. Unlike other commands, a malformed
file is reported as an error instead of being skipped.`,
		Example: `  ghscout config validate
  ghscout config validate --config ./ghscout.yaml`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath(cmd)
			cfg, err := config.Load(path)
			if err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}
			if err = cfg.Validate(); err != nil {
				return fmt.Errorf("configuration validation failed: %w", err)
			}

			if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
				cmd.Printf("No configuration file at %s, defaults and environment are valid\n", path)
				return nil
			}
			cmd.Printf("Configuration is valid: %s\n", path)
			return nil
		},
	}
}

// NewConfigShowCmd creates the config show command, which prints the
// configuration as YAML after file, environment, and flag overrides are applied.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		Example: `  ghscout config show
  ghscout config show --cache-ttl 1h --no-cache`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := runtimeFrom(cmd.Context())
			if err != nil {
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err = enc.Encode(rt.cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
