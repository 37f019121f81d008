package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/ghscout/internal/cli/pagination"
	"github.com/rshade/ghscout/internal/engine"
	"github.com/rshade/ghscout/internal/github"
	"github.com/rshade/ghscout/internal/logging"
)

// listFlags holds the client-side filter and result shaping flags shared by
// the commands that print repository lists.
type listFlags struct {
	language string
	minStars int
	maxStars int
	archived bool
	sortBy   string
	limit    int
	perPage  int
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.language, "language", "", "keep repositories whose primary language matches (case-insensitive)")
	cmd.Flags().IntVar(&f.minStars, "min-stars", 0, "keep repositories with at least this many stars")
	cmd.Flags().IntVar(&f.maxStars, "max-stars", 0, "keep repositories with at most this many stars")
	cmd.Flags().BoolVar(&f.archived, "archived", false, "keep only archived (true) or non-archived (false) repositories")
	cmd.Flags().StringVar(&f.sortBy, "sort-by", "",
		"sort results client-side: field or field:order (fields: "+strings.Join(engine.ValidSortFields(), ", ")+")")
	cmd.Flags().IntVar(&f.limit, "limit", 0, "show at most this many results (0 = all)")
	cmd.Flags().IntVar(&f.perPage, "per-page", pagination.DefaultPerPage, "results requested from the API (1-100)")
}

// criteria builds filter criteria from the flags the user actually set, so
// that --min-stars 0 and --archived=false are honoured.
func (f *listFlags) criteria(cmd *cobra.Command) engine.FilterCriteria {
	var c engine.FilterCriteria
	if cmd.Flags().Changed("language") {
		lang := f.language
		c.Language = &lang
	}
	if cmd.Flags().Changed("min-stars") {
		minStars := f.minStars
		c.MinStars = &minStars
	}
	if cmd.Flags().Changed("max-stars") {
		maxStars := f.maxStars
		c.MaxStars = &maxStars
	}
	if cmd.Flags().Changed("archived") {
		archived := f.archived
		c.Archived = &archived
	}
	return c
}

// params parses and validates the result shaping flags.
func (f *listFlags) params() (pagination.Params, error) {
	p := *pagination.NewParams()
	p.PerPage = f.perPage
	p.Limit = f.limit

	field, order, err := pagination.ParseSort(f.sortBy)
	if err != nil {
		return p, err
	}
	p.SortField = field
	p.SortOrder = order

	if err = p.Validate(); err != nil {
		return p, err
	}
	if p.HasSort() {
		// Surface an unknown field before any request is made.
		if _, err = engine.SortRepositories(nil, p.SortField, p.SortOrder); err != nil {
			return p, err
		}
	}
	return p, nil
}

// ApplyListOptions filters, sorts, and limits repos in that order and logs
// each step for debugging. The input slice is not modified.
func ApplyListOptions(
	ctx context.Context,
	repos []github.Repository,
	criteria engine.FilterCriteria,
	params pagination.Params,
) ([]github.Repository, error) {
	log := logging.FromContext(ctx)

	result := repos
	if !criteria.IsEmpty() {
		result = engine.FilterRepositories(repos, criteria)
		log.Debug().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "apply_filters").
			Int("before", len(repos)).
			Int("after", len(result)).
			Msg("applied filters")

		if len(result) == 0 && len(repos) > 0 {
			log.Warn().Ctx(ctx).
				Str("component", "cli").
				Str("operation", "apply_filters").
				Int("original_count", len(repos)).
				Msg("no repositories match filter criteria")
		}
	}

	if params.HasSort() {
		sorted, err := engine.SortRepositories(result, params.SortField, params.SortOrder)
		if err != nil {
			return nil, err
		}
		result = sorted
		log.Debug().Ctx(ctx).
			Str("component", "cli").
			Str("operation", "sort").
			Str("field", params.SortField).
			Str("order", params.SortOrder).
			Msg("sorted results")
	}

	return engine.LimitRepositories(result, params.Limit), nil
}
