package lambda

import (
	"go.uber.org/fx"

	"github.com/lambda-feedback/simpleserver/handler"
	"github.com/lambda-feedback/simpleserver/internal/server"
	"github.com/lambda-feedback/simpleserver/util/logging"
)

func Module(config Config) fx.Option {
	return fx.Module(
		"lambda",
		// provide lambda config
		fx.Supply(config),
		// rename logger for module
		logging.DecorateLogger("lambda"),
		// provide handlers
		handler.Module(),
		// provide router
		server.RouterModule(),
		// provide lambda handler
		fx.Provide(NewLifecycleHandler),
		// invoke lambda handler
		fx.Invoke(func(*LambdaHandler) {}),
	)
}
