package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// NewRepoCmd creates the repo command, which shows one repository.
func NewRepoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repo <owner>/<name>",
		Short: "Show repository details",
		Example: `  ghscout repo octocat/Hello-World
  ghscout repo golang go -o yaml`,
		Args: usageArgs(cobra.RangeArgs(1, 2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			owner, name, err := parseRepoRef(args)
			if err != nil {
				return err
			}

			rt, err := runtimeFrom(cmd.Context())
			if err != nil {
				return err
			}

			repo, err := rt.svc.GetRepository(cmd.Context(), owner, name)
			if err != nil {
				return err
			}
			return newRenderer(cmd.OutOrStdout(), rt.cfg.Output.Format).repository(repo)
		},
	}
}

// parseRepoRef accepts either "owner/name" or "owner name".
func parseRepoRef(args []string) (string, string, error) {
	var owner, name string
	if len(args) == 2 { //nolint:mnd // owner and name as separate arguments
		owner, name = args[0], args[1]
	} else {
		var ok bool
		owner, name, ok = strings.Cut(args[0], "/")
		if !ok {
			return "", "", usagef("repository must be given as owner/name, got %q", args[0])
		}
	}

	owner = strings.TrimSpace(owner)
	name = strings.TrimSpace(name)
	if owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", usagef("repository must be given as owner/name, got %q", strings.Join(args, " "))
	}
	return owner, name, nil
}
