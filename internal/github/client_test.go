package github

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghscout/internal/apierr"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(WithBaseURL(server.URL+"/"), WithHTTPClient(server.Client()))
}

func TestSearchRepositories(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/repositories", r.URL.Path)
		assert.Equal(t, "language:go", r.URL.Query().Get("q"))
		assert.Equal(t, "stars", r.URL.Query().Get("sort"))
		assert.Equal(t, "desc", r.URL.Query().Get("order"))
		assert.Equal(t, "5", r.URL.Query().Get("per_page"))
		assert.Equal(t, acceptHeader, r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_count":1,"incomplete_results":false,"items":[{"id":1,"name":"a"}]}`))
	})

	body, err := client.SearchRepositories(context.Background(), SearchParams{
		Query: "language:go", Sort: "stars", Order: "desc", PerPage: 5,
	})
	require.NoError(t, err)
	assert.Contains(t, string(body), `"total_count":1`)
}

func TestSearchRepositories_EmptyQuery(t *testing.T) {
	client := NewClient(WithBaseURL("http://127.0.0.1:1"))
	_, err := client.SearchRepositories(context.Background(), SearchParams{Query: "  "})
	require.Error(t, err)
	assert.True(t, apierr.IsKind(err, apierr.KindValidation))
}

func TestSearchRepositories_InvalidShape(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	_, err := client.SearchRepositories(context.Background(), SearchParams{Query: "x"})
	require.Error(t, err)
	assert.True(t, apierr.IsKind(err, apierr.KindValidation))
	assert.Contains(t, err.Error(), "total_count")
	assert.Zero(t, apierr.StatusCode(err))
}

func TestListUserRepositories(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/octo cat/repos", r.URL.Path)
		assert.Equal(t, "updated", r.URL.Query().Get("sort"))
		assert.Empty(t, r.URL.Query().Get("owner"))
		_, _ = w.Write([]byte(`[{"id":1},{"id":2}]`))
	})

	body, err := client.ListUserRepositories(context.Background(), ListParams{Owner: "octo cat", Sort: "updated"})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1},{"id":2}]`, string(body))
}

func TestListUserRepositories_NotArray(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message":"odd"}`))
	})

	_, err := client.ListUserRepositories(context.Background(), ListParams{Owner: "octocat"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected an array")
}

func TestGetRepository(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octocat/hello-world", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":1,"name":"hello-world","full_name":"octocat/hello-world","owner":null}`))
	})

	body, err := client.GetRepository(context.Background(), "octocat", "hello-world")
	require.NoError(t, err)
	assert.Contains(t, string(body), "hello-world")

	_, err = client.GetRepository(context.Background(), "octocat", "")
	assert.True(t, apierr.IsKind(err, apierr.KindValidation))
}

func TestGetUser_MissingField(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"login":"octocat","id":1}`))
	})

	_, err := client.GetUser(context.Background(), "octocat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required field 'html_url'")
}

func TestGet_StatusErrors(t *testing.T) {
	tests := []struct {
		status  int
		message string
	}{
		{http.StatusForbidden, apierr.MsgRateLimited},
		{http.StatusNotFound, apierr.MsgNotFound},
		{http.StatusInternalServerError, apierr.MsgServerUnavailable},
		{http.StatusTeapot, "HTTP error 418"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			})

			_, err := client.GetUser(context.Background(), "octocat")
			require.Error(t, err)

			var apiErr *apierr.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, apierr.KindHTTPStatus, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Message)
			assert.JSONEq(t, `{"message":"nope"}`, string(apiErr.RawBody))
			assert.True(t, apiErr.RateLimit.Exhausted())
		})
	}
}

func TestGet_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	client := NewClient(
		WithBaseURL(server.URL),
		WithHTTPClient(server.Client()),
		WithTimeout(50*time.Millisecond),
	)

	_, err := client.GetUser(context.Background(), "octocat")
	require.Error(t, err)
	assert.True(t, apierr.IsKind(err, apierr.KindTimeout))
	assert.Contains(t, err.Error(), "50ms")
}

func TestGet_Unreachable(t *testing.T) {
	// Grab a free port and close it so nothing is listening.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	client := NewClient(WithBaseURL("http://" + addr))
	_, err = client.GetUser(context.Background(), "octocat")
	require.Error(t, err)
	assert.True(t, apierr.IsKind(err, apierr.KindConnectivity))
	assert.Equal(t, apierr.MsgUnreachable, err.Error())
}

func TestParams(t *testing.T) {
	assert.Equal(t, map[string]string{"q": "go"}, SearchParams{Query: "go"}.Params())
	assert.Equal(t, SearchParams{Query: "hello world"}.Params(), SearchParams{Query: " hello world "}.Params())
	assert.Equal(t,
		map[string]string{"q": "go", "sort": "stars", "order": "asc", "per_page": "10"},
		SearchParams{Query: "go", Sort: "stars", Order: "asc", PerPage: 10}.Params())
	assert.Equal(t,
		map[string]string{"owner": "octocat", "per_page": "3"},
		ListParams{Owner: "octocat", PerPage: 3}.Params())
}
