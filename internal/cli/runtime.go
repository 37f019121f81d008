package cli

import (
	"context"
	"errors"

	"github.com/rshade/ghscout/internal/config"
	"github.com/rshade/ghscout/internal/engine"
)

// runtime is the per-invocation state built by the root command.
type runtime struct {
	cfg *config.Config
	svc *engine.Service
}

type runtimeKey struct{}

// errNoRuntime means a command ran without the root pre-run.
var errNoRuntime = errors.New("command initialised without runtime")

func withRuntime(ctx context.Context, rt *runtime) context.Context {
	return context.WithValue(ctx, runtimeKey{}, rt)
}

func runtimeFrom(ctx context.Context) (*runtime, error) {
	if ctx == nil {
		return nil, errNoRuntime
	}
	rt, ok := ctx.Value(runtimeKey{}).(*runtime)
	if !ok || rt == nil {
		return nil, errNoRuntime
	}
	return rt, nil
}
