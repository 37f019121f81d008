// Package github is a minimal client for the read-only GitHub REST endpoints
// ghscout uses: repository search, per-owner listing, repository detail, and
// user detail.
//
// Every method returns the raw JSON body after checking its shape. All
// failures are *apierr.Error values; nothing is retried.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rshade/ghscout/internal/apierr"
	"github.com/rshade/ghscout/internal/logging"
	"github.com/rshade/ghscout/internal/validate"
	"github.com/rshade/ghscout/internal/version"
)

// Client defaults.
const (
	DefaultBaseURL = "https://api.github.com"
	DefaultTimeout = 10 * time.Second

	acceptHeader = "application/vnd.github+json"
	apiVersion   = "2022-11-28"

	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 32 << 20
)

// Client issues unauthenticated GET requests against the GitHub API.
type Client struct {
	// BaseURL is the API root, without a trailing slash.
	BaseURL string

	// HTTPClient performs requests.
	HTTPClient *http.Client

	// Timeout bounds each request and is quoted in timeout errors.
	Timeout time.Duration

	// UserAgent is sent with every request.
	UserAgent string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root, such as a test server.
func WithBaseURL(raw string) Option {
	return func(c *Client) { c.BaseURL = strings.TrimRight(raw, "/") }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.HTTPClient = h }
}

// WithTimeout sets the per-request timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// NewClient creates a client for the public GitHub API.
func NewClient(opts ...Option) *Client {
	c := &Client{
		BaseURL:   DefaultBaseURL,
		Timeout:   DefaultTimeout,
		UserAgent: version.UserAgent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.Timeout}
	}
	return c
}

// Params returns the query parameters sent for p. Empty values are omitted.
func (p SearchParams) Params() map[string]string {
	params := map[string]string{"q": strings.TrimSpace(p.Query)}
	setIfNotEmpty(params, "sort", p.Sort)
	setIfNotEmpty(params, "order", p.Order)
	if p.PerPage > 0 {
		params["per_page"] = strconv.Itoa(p.PerPage)
	}
	return params
}

// Params returns the query parameters sent for p, plus the owner so that
// listings for different owners never share a cache key.
func (p ListParams) Params() map[string]string {
	params := map[string]string{"owner": p.Owner}
	setIfNotEmpty(params, "sort", p.Sort)
	if p.PerPage > 0 {
		params["per_page"] = strconv.Itoa(p.PerPage)
	}
	return params
}

func setIfNotEmpty(m map[string]string, key, value string) {
	if value != "" {
		m[key] = value
	}
}

// SearchRepositories calls GET /search/repositories.
func (c *Client) SearchRepositories(ctx context.Context, p SearchParams) (json.RawMessage, error) {
	if strings.TrimSpace(p.Query) == "" {
		return nil, apierr.Validation("search query cannot be empty")
	}
	query := p.Params()
	body, err := c.get(ctx, "/search/repositories", query)
	if err != nil {
		return nil, err
	}
	if err = validate.Search(body); err != nil {
		return nil, err
	}
	return body, nil
}

// ListUserRepositories calls GET /users/{owner}/repos.
func (c *Client) ListUserRepositories(ctx context.Context, p ListParams) (json.RawMessage, error) {
	if strings.TrimSpace(p.Owner) == "" {
		return nil, apierr.Validation("owner cannot be empty")
	}
	query := p.Params()
	delete(query, "owner")
	body, err := c.get(ctx, "/users/"+url.PathEscape(p.Owner)+"/repos", query)
	if err != nil {
		return nil, err
	}
	if err = validate.Array(body); err != nil {
		return nil, err
	}
	return body, nil
}

// GetRepository calls GET /repos/{owner}/{name}.
func (c *Client) GetRepository(ctx context.Context, owner, name string) (json.RawMessage, error) {
	if strings.TrimSpace(owner) == "" || strings.TrimSpace(name) == "" {
		return nil, apierr.Validation("repository owner and name are required")
	}
	body, err := c.get(ctx, "/repos/"+url.PathEscape(owner)+"/"+url.PathEscape(name), nil)
	if err != nil {
		return nil, err
	}
	if err = validate.Object(body, validate.RepositoryFields...); err != nil {
		return nil, err
	}
	return body, nil
}

// GetUser calls GET /users/{username}.
func (c *Client) GetUser(ctx context.Context, username string) (json.RawMessage, error) {
	if strings.TrimSpace(username) == "" {
		return nil, apierr.Validation("username cannot be empty")
	}
	body, err := c.get(ctx, "/users/"+url.PathEscape(username), nil)
	if err != nil {
		return nil, err
	}
	if err = validate.Object(body, validate.UserFields...); err != nil {
		return nil, err
	}
	return body, nil
}

// get performs one GET and returns the body of a 2xx response.
func (c *Client) get(ctx context.Context, path string, query map[string]string) ([]byte, error) {
	log := logging.FromContext(ctx)

	u := c.BaseURL + path
	if len(query) > 0 {
		values := url.Values{}
		for k, v := range query {
			values.Set(k, v)
		}
		u += "?" + values.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apierr.Normalize(fmt.Errorf("building request: %w", err), c.Timeout)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		apiErr := apierr.Normalize(err, c.Timeout)
		log.Debug().Ctx(ctx).
			Str("component", "github").
			Str("operation", "get").
			Str("url", u).
			Str("kind", apiErr.Kind.String()).
			Err(err).
			Msg("request failed")
		return nil, apiErr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apierr.Normalize(fmt.Errorf("reading response body: %w", err), c.Timeout)
	}

	log.Debug().Ctx(ctx).
		Str("component", "github").
		Str("operation", "get").
		Str("url", u).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, apierr.FromResponse(resp.StatusCode, resp.Header, body)
	}
	return body, nil
}
