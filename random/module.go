package random

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module provides the generator pool and closes it on shutdown.
func Module(config Config) fx.Option {
	return fx.Module(
		"random",
		// provide pool config
		fx.Supply(config),
		// provide pool
		fx.Provide(NewLifecyclePool),
	)
}

func NewLifecyclePool(config Config, log *zap.Logger, lc fx.Lifecycle) (*Pool, error) {
	pool, err := New(PoolParams{
		Config: config,
		Log:    log,
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			pool.Close()
			return nil
		},
	})

	return pool, nil
}
