package conf

import (
	"context"
	"errors"
)

var (
	// ErrNoConfigInContext is returned when the context carries
	// no config at all.
	ErrNoConfigInContext = errors.New("config not found in context")

	// ErrConfigType is returned when the context carries a config
	// of a different type than requested.
	ErrConfigType = errors.New("invalid config type in context")
)

type contextKey struct{}

// ConfigFromContext returns the config stored by ContextWithConfig.
func ConfigFromContext[C any](ctx context.Context) (C, error) {
	var c C

	value := ctx.Value(contextKey{})
	if value == nil {
		return c, ErrNoConfigInContext
	}

	config, ok := value.(C)
	if !ok {
		return c, ErrConfigType
	}

	return config, nil
}

func ContextWithConfig[C any](ctx context.Context, config C) context.Context {
	return context.WithValue(ctx, contextKey{}, config)
}
