// Command ghscout searches and inspects GitHub repositories from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/ghscout/internal/apierr"
	"github.com/rshade/ghscout/internal/cli"
	"github.com/rshade/ghscout/internal/version"
)

// Process exit codes.
const (
	exitOK          = 0
	exitError       = 1
	exitUsage       = 2
	exitNotFound    = 3
	exitRateLimited = 4
	exitNetwork     = 5
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	var usageErr *cli.UsageError
	if errors.As(err, &usageErr) {
		_, _ = fmt.Fprintf(stderr, "Run '%s --help' for usage.\n", root.Name())
	}
	return exitCode(err)
}

// exitCode maps an error to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}

	var usageErr *cli.UsageError
	if errors.As(err, &usageErr) {
		return exitUsage
	}

	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		return exitError
	}

	switch apiErr.Kind {
	case apierr.KindNotFoundInResult:
		return exitNotFound
	case apierr.KindHTTPStatus:
		switch apiErr.StatusCode {
		case http.StatusNotFound:
			return exitNotFound
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusTooManyRequests:
			return exitRateLimited
		default:
			return exitError
		}
	case apierr.KindTimeout, apierr.KindConnectivity, apierr.KindNetwork:
		return exitNetwork
	default:
		return exitError
	}
}
