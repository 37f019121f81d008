package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/ghscout/internal/cli/pagination"
	"github.com/rshade/ghscout/internal/github"
)

// NewFindCmd creates the find command, which picks one repository out of a
// search result by its numeric id.
func NewFindCmd() *cobra.Command {
	var (
		id      int64
		perPage int
	)

	cmd := &cobra.Command{
		Use:   "find <query> --id <id>",
		Short: "Find a repository by id within search results",
		Long: `Runs a search and shows the repository with the given id from the returned
page. The command fails when the id is not among the results, even if the
repository exists elsewhere.`,
		Example: `  ghscout find "hello world" --id 1296269`,
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.TrimSpace(strings.Join(args, " "))
			if query == "" {
				return usagef("query cannot be empty")
			}
			if id <= 0 {
				return usagef("--id must be a positive repository id")
			}
			p := pagination.Params{PerPage: perPage}
			if err := p.Validate(); err != nil {
				return usageError(err)
			}

			rt, err := runtimeFrom(cmd.Context())
			if err != nil {
				return err
			}

			repo, err := rt.svc.FindInSearch(cmd.Context(), github.SearchParams{
				Query:   query,
				PerPage: perPage,
			}, id)
			if err != nil {
				return err
			}
			return newRenderer(cmd.OutOrStdout(), rt.cfg.Output.Format).repository(repo)
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "repository id to look for (required)")
	cmd.Flags().IntVar(&perPage, "per-page", pagination.DefaultPerPage, "results requested from the API (1-100)")

	return cmd
}
