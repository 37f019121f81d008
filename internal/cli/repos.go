package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/ghscout/internal/github"
)

// NewReposCmd creates the repos command, which lists an owner's repositories.
func NewReposCmd() *cobra.Command {
	var (
		lf   listFlags
		sort string
	)

	cmd := &cobra.Command{
		Use:   "repos <owner>",
		Short: "List a user's public repositories",
		Example: `  ghscout repos octocat
  ghscout repos torvalds --sort-by stars --limit 5
  ghscout repos octocat --sort pushed -o json`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepos(cmd, args[0], sort, &lf)
		},
	}

	cmd.Flags().StringVar(&sort, "sort", "", "API sort: created, updated, pushed, full_name (default full_name)")
	lf.register(cmd)

	return cmd
}

func runRepos(cmd *cobra.Command, owner, sort string, lf *listFlags) error {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return usagef("owner cannot be empty")
	}
	if err := oneOf("sort", sort, "created", "updated", "pushed", "full_name"); err != nil {
		return err
	}
	params, err := lf.params()
	if err != nil {
		return usageError(err)
	}

	rt, err := runtimeFrom(cmd.Context())
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	repos, err := rt.svc.ListUserRepositories(ctx, github.ListParams{
		Owner:   owner,
		Sort:    sort,
		PerPage: params.PerPage,
	})
	if err != nil {
		return err
	}

	repos, err = ApplyListOptions(ctx, repos, lf.criteria(cmd), params)
	if err != nil {
		return err
	}
	return newRenderer(cmd.OutOrStdout(), rt.cfg.Output.Format).repositories(repos)
}
