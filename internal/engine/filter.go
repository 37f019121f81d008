package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rshade/ghscout/internal/github"
)

// FilterCriteria selects repositories client-side. Nil fields are not applied.
type FilterCriteria struct {
	// Language matches case-insensitively and exactly.
	Language *string

	// MinStars is an inclusive lower bound on stargazers.
	MinStars *int

	// MaxStars is an inclusive upper bound on stargazers.
	MaxStars *int

	// Archived matches the archived flag exactly.
	Archived *bool
}

// IsEmpty reports whether no criterion is set.
func (c FilterCriteria) IsEmpty() bool {
	return c.Language == nil && c.MinStars == nil && c.MaxStars == nil && c.Archived == nil
}

// Matches reports whether repo satisfies every set criterion.
func (c FilterCriteria) Matches(repo github.Repository) bool {
	if c.Language != nil && !strings.EqualFold(repo.Language, *c.Language) {
		return false
	}
	if c.MinStars != nil && repo.StargazersCount < *c.MinStars {
		return false
	}
	if c.MaxStars != nil && repo.StargazersCount > *c.MaxStars {
		return false
	}
	if c.Archived != nil && repo.Archived != *c.Archived {
		return false
	}
	return true
}

// FilterRepositories returns the repositories matching every set criterion,
// in their original order. The input slice is not modified.
func FilterRepositories(repos []github.Repository, criteria FilterCriteria) []github.Repository {
	result := make([]github.Repository, 0, len(repos))
	for _, repo := range repos {
		if criteria.Matches(repo) {
			result = append(result, repo)
		}
	}
	return result
}

// FindRepositoryByID returns the first repository with the given id.
// The boolean is false when none matches, including for an empty list.
func FindRepositoryByID(repos []github.Repository, id int64) (github.Repository, bool) {
	for _, repo := range repos {
		if repo.ID == id {
			return repo, true
		}
	}
	return github.Repository{}, false
}

// Sort fields accepted by SortRepositories.
const (
	SortStars   = "stars"
	SortForks   = "forks"
	SortName    = "name"
	SortUpdated = "updated"
	SortIssues  = "issues"

	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// ValidSortFields returns the accepted sort fields in a stable order.
func ValidSortFields() []string {
	fields := []string{SortStars, SortForks, SortName, SortUpdated, SortIssues}
	sort.Strings(fields)
	return fields
}

// IsValidSortField reports whether field can be passed to SortRepositories.
func IsValidSortField(field string) bool {
	for _, f := range ValidSortFields() {
		if f == field {
			return true
		}
	}
	return false
}

// SortRepositories returns a stably sorted copy of repos.
func SortRepositories(repos []github.Repository, field, order string) ([]github.Repository, error) {
	if !IsValidSortField(field) {
		return nil, fmt.Errorf("invalid sort field %q (valid: %s)", field, strings.Join(ValidSortFields(), ", "))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return nil, fmt.Errorf("invalid sort order %q (must be asc or desc)", order)
	}

	sorted := make([]github.Repository, len(repos))
	copy(sorted, repos)

	sort.SliceStable(sorted, func(i, j int) bool {
		// For descending order, swap i and j to keep the sort stable
		if order == SortOrderDesc {
			i, j = j, i
		}
		switch field {
		case SortStars:
			return sorted[i].StargazersCount < sorted[j].StargazersCount
		case SortForks:
			return sorted[i].ForksCount < sorted[j].ForksCount
		case SortName:
			return strings.ToLower(sorted[i].FullName) < strings.ToLower(sorted[j].FullName)
		case SortUpdated:
			return sorted[i].UpdatedAt.Before(sorted[j].UpdatedAt)
		case SortIssues:
			return sorted[i].OpenIssuesCount < sorted[j].OpenIssuesCount
		default:
			return false
		}
	})
	return sorted, nil
}

// LimitRepositories returns at most n repositories. n <= 0 means no limit.
func LimitRepositories(repos []github.Repository, n int) []github.Repository {
	if n <= 0 || n >= len(repos) {
		return repos
	}
	return repos[:n]
}
