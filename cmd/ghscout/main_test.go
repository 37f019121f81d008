package main

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghscout/internal/apierr"
	"github.com/rshade/ghscout/internal/cli"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitOK},
		{"plain error", errors.New("boom"), exitError},
		{"usage", &cli.UsageError{Err: errors.New("bad flag")}, exitUsage},
		{"wrapped usage", fmt.Errorf("outer: %w", &cli.UsageError{Err: errors.New("x")}), exitUsage},
		{"http 404", apierr.FromResponse(http.StatusNotFound, nil, nil), exitNotFound},
		{"not found in result", apierr.NotFoundInResult("no repository with id %d", 1), exitNotFound},
		{"http 403", apierr.FromResponse(http.StatusForbidden, nil, nil), exitRateLimited},
		{"http 401", apierr.FromResponse(http.StatusUnauthorized, nil, nil), exitRateLimited},
		{"http 500", apierr.FromResponse(http.StatusInternalServerError, nil, nil), exitError},
		{"timeout", &apierr.Error{Kind: apierr.KindTimeout}, exitNetwork},
		{"connectivity", &apierr.Error{Kind: apierr.KindConnectivity}, exitNetwork},
		{"network", &apierr.Error{Kind: apierr.KindNetwork}, exitNetwork},
		{"validation", apierr.Validation("invalid response"), exitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRun(t *testing.T) {
	t.Setenv("GHSCOUT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/ghost" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		_, _ = w.Write([]byte(`{"login":"octocat","id":1,"html_url":"https://github.com/octocat"}`))
	}))
	t.Cleanup(server.Close)

	base := []string{"--api-url", server.URL, "--no-cache"}

	t.Run("success", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(append(base, "user", "octocat"), &stdout, &stderr)
		assert.Equal(t, exitOK, code, stderr.String())
		assert.Contains(t, stdout.String(), "octocat")
	})

	t.Run("not found", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(append(base, "user", "ghost"), &stdout, &stderr)
		assert.Equal(t, exitNotFound, code)
		assert.Contains(t, stderr.String(), "Error: Resource not found")
	})

	t.Run("usage", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"user"}, &stdout, &stderr)
		require.Equal(t, exitUsage, code)
		assert.Contains(t, stderr.String(), "--help")
	})

	t.Run("unknown flag", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run([]string{"search", "go", "--bogus"}, &stdout, &stderr)
		assert.Equal(t, exitUsage, code)
	})
}
