package app

import (
	"github.com/lambda-feedback/simpleserver/config"
	"github.com/lambda-feedback/simpleserver/internal/shell"
	"github.com/lambda-feedback/simpleserver/random"
	"github.com/lambda-feedback/simpleserver/runtime"
	"github.com/lambda-feedback/simpleserver/util/conf"
	"github.com/lambda-feedback/simpleserver/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/fx"
)

func New(ctx *cli.Context) (*shell.Shell, error) {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return nil, err
	}

	config, err := conf.ConfigFromContext[config.Config](ctx.Context)
	if err != nil {
		return nil, err
	}

	return shell.New(log, SharedModule(config)), nil
}

// SharedModule provides everything both transports need.
func SharedModule(config config.Config) fx.Option {
	return fx.Module(
		"shared",
		// provide global config
		fx.Supply(config),
		// provide runtime info
		runtime.Module(config.Runtime),
		// provide random generator pool
		random.Module(config.Random),
	)
}
