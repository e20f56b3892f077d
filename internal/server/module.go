package server

import "go.uber.org/fx"

// RouterModule provides the router over all grouped routes.
func RouterModule() fx.Option {
	return fx.Module("router",
		fx.Provide(NewRouter),
	)
}

func Module(config HttpConfig) fx.Option {
	return fx.Module("server",
		// provide config
		fx.Supply(config),
		// provide router
		RouterModule(),
		// provide server
		fx.Provide(NewLifecycleServer),
		// invoke server
		fx.Invoke(func(*HttpServer) {}),
	)
}
