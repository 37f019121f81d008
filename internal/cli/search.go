package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/ghscout/internal/github"
)

// NewSearchCmd creates the search command.
func NewSearchCmd() *cobra.Command {
	var (
		lf    listFlags
		sort  string
		order string
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search repositories",
		Long: `Searches public repositories using GitHub search syntax.

Multiple arguments are joined into one query. --sort and --order are passed to
the API; the filter, --sort-by, and --limit flags are applied to the returned
page on the client.`,
		Example: `  ghscout search "language:go stars:>1000"
  ghscout search cli --sort stars --order desc --per-page 50
  ghscout search terraform --language hcl --archived=false --limit 10`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, strings.Join(args, " "), sort, order, &lf)
		},
	}

	cmd.Flags().StringVar(&sort, "sort", "", "API sort: stars, forks, help-wanted-issues, updated (default best match)")
	cmd.Flags().StringVar(&order, "order", "", "API sort order: asc or desc")
	lf.register(cmd)

	return cmd
}

func runSearch(cmd *cobra.Command, query, sort, order string, lf *listFlags) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return usagef("query cannot be empty")
	}
	if err := oneOf("sort", sort, "stars", "forks", "help-wanted-issues", "updated"); err != nil {
		return err
	}
	if err := oneOf("order", order, "asc", "desc"); err != nil {
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

	result, err := rt.svc.SearchRepositories(ctx, github.SearchParams{
		Query:   query,
		Sort:    sort,
		Order:   order,
		PerPage: params.PerPage,
	})
	if err != nil {
		return err
	}

	items, err := ApplyListOptions(ctx, result.Items, lf.criteria(cmd), params)
	if err != nil {
		return err
	}
	return newRenderer(cmd.OutOrStdout(), rt.cfg.Output.Format).searchResult(result, items)
}
