package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghscout/internal/cli/pagination"
	"github.com/rshade/ghscout/internal/engine"
	"github.com/rshade/ghscout/internal/github"
)

func parseListFlags(t *testing.T, args ...string) (*cobra.Command, *listFlags) {
	t.Helper()
	var lf listFlags
	cmd := &cobra.Command{Use: "test"}
	lf.register(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd, &lf
}

func TestListFlags_CriteriaOnlyFromChangedFlags(t *testing.T) {
	cmd, lf := parseListFlags(t)
	assert.True(t, lf.criteria(cmd).IsEmpty())

	cmd, lf = parseListFlags(t, "--min-stars", "0", "--archived=false")
	c := lf.criteria(cmd)
	require.NotNil(t, c.MinStars)
	assert.Equal(t, 0, *c.MinStars)
	require.NotNil(t, c.Archived)
	assert.False(t, *c.Archived)
	assert.Nil(t, c.MaxStars)
	assert.Nil(t, c.Language)

	cmd, lf = parseListFlags(t, "--language", "Go", "--max-stars", "10")
	c = lf.criteria(cmd)
	require.NotNil(t, c.Language)
	assert.Equal(t, "Go", *c.Language)
	require.NotNil(t, c.MaxStars)
	assert.Equal(t, 10, *c.MaxStars)
}

func TestListFlags_Params(t *testing.T) {
	_, lf := parseListFlags(t)
	p, err := lf.params()
	require.NoError(t, err)
	assert.Equal(t, pagination.DefaultPerPage, p.PerPage)
	assert.False(t, p.HasSort())

	_, lf = parseListFlags(t, "--sort-by", "Stars:ASC", "--limit", "5", "--per-page", "100")
	p, err = lf.params()
	require.NoError(t, err)
	assert.Equal(t, "stars", p.SortField)
	assert.Equal(t, "asc", p.SortOrder)
	assert.Equal(t, 5, p.Limit)
	assert.Equal(t, 100, p.PerPage)

	_, lf = parseListFlags(t, "--sort-by", "size")
	_, err = lf.params()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid sort field")

	_, lf = parseListFlags(t, "--per-page", "0")
	_, err = lf.params()
	require.ErrorIs(t, err, pagination.ErrInvalidPerPage)
}

func TestApplyListOptions(t *testing.T) {
	repos := []github.Repository{
		{ID: 1, Language: "Go", StargazersCount: 50},
		{ID: 2, Language: "Go", StargazersCount: 500},
		{ID: 3, Language: "Rust", StargazersCount: 5000},
		{ID: 4, Language: "go", StargazersCount: 5},
	}
	lang := "go"

	got, err := ApplyListOptions(context.Background(), repos,
		engine.FilterCriteria{Language: &lang},
		pagination.Params{SortField: engine.SortStars, SortOrder: engine.SortOrderDesc, Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
	assert.Equal(t, int64(1), repos[0].ID, "input must not be reordered")

	got, err = ApplyListOptions(context.Background(), repos, engine.FilterCriteria{}, pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, repos, got)

	_, err = ApplyListOptions(context.Background(), repos, engine.FilterCriteria{},
		pagination.Params{SortField: "size", SortOrder: "asc"})
	require.Error(t, err)
}

func TestParseRepoRef(t *testing.T) {
	owner, name, err := parseRepoRef([]string{"octocat/Hello-World"})
	require.NoError(t, err)
	assert.Equal(t, "octocat", owner)
	assert.Equal(t, "Hello-World", name)

	owner, name, err = parseRepoRef([]string{"golang", "go"})
	require.NoError(t, err)
	assert.Equal(t, "golang", owner)
	assert.Equal(t, "go", name)

	for _, bad := range [][]string{{"octocat"}, {"/x"}, {"x/"}, {"a/b/c"}, {"a", "b/c"}, {" ", "x"}} {
		_, _, err = parseRepoRef(bad)
		var usageErr *UsageError
		assert.ErrorAs(t, err, &usageErr, "%v", bad)
	}
}

func TestOneOf(t *testing.T) {
	require.NoError(t, oneOf("sort", "", "stars"))
	require.NoError(t, oneOf("sort", "stars", "stars", "forks"))

	err := oneOf("sort", "name", "stars", "forks")
	require.Error(t, err)
	assert.Equal(t, `invalid --sort "name" (valid: stars, forks)`, err.Error())
}

func TestRenderHelpers(t *testing.T) {
	assert.Equal(t, "-", orDash("  "))
	assert.Equal(t, "x", orDash("x"))
	assert.Equal(t, "-", truncate("", 10))
	assert.Equal(t, "a b", truncate("a\n  b", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ÄÖÜ", truncate("ÄÖÜ", 3))
}

func TestRenderer_Table(t *testing.T) {
	var buf bytes.Buffer
	r := newRenderer(&buf, "table")
	assert.False(t, r.styled)

	err := r.repositories([]github.Repository{
		{ID: 7, FullName: "o/a", StargazersCount: 1234567, Language: "Go", Description: "demo"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "1,234,567")
	assert.Contains(t, lines[1], "demo")
	assert.True(t, strings.HasPrefix(lines[1], "7 "))
}

func TestRenderer_EmptyStructuredListIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, newRenderer(&buf, "json").repositories(nil))
	assert.JSONEq(t, `[]`, buf.String())
}
