package runtime

import "go.uber.org/fx"

// Module provides a runtime module.
func Module(config Config) fx.Option {
	return fx.Module(
		"runtime",

		// provide runtime config
		fx.Supply(config),

		// provide runtime
		fx.Provide(func(config Config) *Runtime {
			return New(config)
		}),
	)
}
