package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewUserCmd creates the user command, which shows a user profile.
func NewUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "user <username>",
		Short:   "Show user details",
		Example: `  ghscout user octocat`,
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])
			if username == "" {
				return usagef("username cannot be empty")
			}

			rt, err := runtimeFrom(cmd.Context())
			if err != nil {
				return err
			}

			user, err := rt.svc.GetUser(cmd.Context(), username)
			if err != nil {
				return err
			}
			return newRenderer(cmd.OutOrStdout(), rt.cfg.Output.Format).user(user)
		},
	}
}
