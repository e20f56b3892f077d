package standalone

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lambda-feedback/simpleserver/handler"
	"github.com/lambda-feedback/simpleserver/internal/server"
	"github.com/lambda-feedback/simpleserver/runtime"
	"github.com/lambda-feedback/simpleserver/util/logging"
)

func Module(config server.HttpConfig) fx.Option {
	return fx.Module(
		"serve",
		// rename logger for module
		logging.DecorateLogger("serve"),
		// provide handlers
		handler.Module(),
		// provide server
		server.Module(config),
		// announce the environment once on startup
		fx.Invoke(func(rt *runtime.Runtime, log *zap.Logger) {
			log.Info("starting server",
				zap.Int("port", config.Port),
				zap.String("environment", rt.Environment()),
			)
		}),
	)
}
