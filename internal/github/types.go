package github

import "time"

// Owner is the account that owns a repository.
type Owner struct {
	Login   string `json:"login"    yaml:"login"`
	ID      int64  `json:"id"       yaml:"id"`
	HTMLURL string `json:"html_url" yaml:"html_url"`
	Type    string `json:"type"     yaml:"type"`
}

// Repository is the subset of the repository schema ghscout reads.
type Repository struct {
	ID              int64     `json:"id"                yaml:"id"`
	Name            string    `json:"name"              yaml:"name"`
	FullName        string    `json:"full_name"         yaml:"full_name"`
	Owner           *Owner    `json:"owner"             yaml:"owner,omitempty"`
	Description     string    `json:"description"       yaml:"description,omitempty"`
	HTMLURL         string    `json:"html_url"          yaml:"html_url"`
	Homepage        string    `json:"homepage"          yaml:"homepage,omitempty"`
	Language        string    `json:"language"          yaml:"language,omitempty"`
	StargazersCount int       `json:"stargazers_count"  yaml:"stargazers_count"`
	ForksCount      int       `json:"forks_count"       yaml:"forks_count"`
	OpenIssuesCount int       `json:"open_issues_count" yaml:"open_issues_count"`
	Archived        bool      `json:"archived"          yaml:"archived"`
	Fork            bool      `json:"fork"              yaml:"fork"`
	DefaultBranch   string    `json:"default_branch"    yaml:"default_branch,omitempty"`
	Topics          []string  `json:"topics"            yaml:"topics,omitempty"`
	CreatedAt       time.Time `json:"created_at"        yaml:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"        yaml:"updated_at"`
	PushedAt        time.Time `json:"pushed_at"         yaml:"pushed_at"`
}

// SearchResult is a page of repository search results.
type SearchResult struct {
	TotalCount        int          `json:"total_count"        yaml:"total_count"`
	IncompleteResults bool         `json:"incomplete_results" yaml:"incomplete_results"`
	Items             []Repository `json:"items"              yaml:"items"`
}

// User is the subset of the user schema ghscout reads.
type User struct {
	Login       string    `json:"login"        yaml:"login"`
	ID          int64     `json:"id"           yaml:"id"`
	HTMLURL     string    `json:"html_url"     yaml:"html_url"`
	Name        string    `json:"name"         yaml:"name,omitempty"`
	Company     string    `json:"company"      yaml:"company,omitempty"`
	Blog        string    `json:"blog"         yaml:"blog,omitempty"`
	Location    string    `json:"location"     yaml:"location,omitempty"`
	Bio         string    `json:"bio"          yaml:"bio,omitempty"`
	Type        string    `json:"type"         yaml:"type"`
	PublicRepos int       `json:"public_repos" yaml:"public_repos"`
	Followers   int       `json:"followers"    yaml:"followers"`
	Following   int       `json:"following"    yaml:"following"`
	CreatedAt   time.Time `json:"created_at"   yaml:"created_at"`
}

// SearchParams are the inputs to the repository search endpoint.
type SearchParams struct {
	Query   string
	Sort    string
	Order   string
	PerPage int
}

// ListParams are the inputs to the per-owner repository listing endpoint.
type ListParams struct {
	Owner   string
	Sort    string
	PerPage int
}
