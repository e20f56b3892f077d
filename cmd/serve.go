package cmd

import (
	"github.com/lambda-feedback/simpleserver/app"
	"github.com/lambda-feedback/simpleserver/app/standalone"
	"github.com/lambda-feedback/simpleserver/internal/server"
	"github.com/urfave/cli/v2"
)

var (
	serveCmdDescription = `The serve command starts a http server and serves the demo
routes until it is terminated.

The command will launch the http server and blocks indefin-
itely, processing incoming http requests. On SIGINT or SIG-
TERM, in-flight requests are drained before exiting.`
	serveCmd = &cli.Command{
		Name:        "serve",
		Usage:       "Start a http server and listen for requests.",
		Description: serveCmdDescription,
		Action:      serveAction,
		Flags:       serveFlags(),
	}
)

// serveFlags returns the http listener flags.
func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "host",
			Aliases:  []string{"H"},
			Usage:    "The host to listen on.",
			Value:    "0.0.0.0",
			Category: "http",
			EnvVars:  []string{"HTTP_HOST"},
		},
		&cli.IntFlag{
			Name:     "port",
			Aliases:  []string{"P"},
			Usage:    "The port to listen on.",
			Value:    3000,
			Category: "http",
			EnvVars:  []string{"PORT", "HTTP_PORT"},
		},
		&cli.BoolFlag{
			Name:     "h2c",
			Usage:    "Enable HTTP/2 cleartext upgrade.",
			Value:    false,
			Category: "http",
			EnvVars:  []string{"HTTP_H2C"},
		},
	}
}

func serveAction(ctx *cli.Context) error {
	app, err := app.New(ctx)
	if err != nil {
		return err
	}

	httpConfig := server.HttpConfig{
		Host: ctx.String("host"),
		Port: ctx.Int("port"),
		H2c:  ctx.Bool("h2c"),
	}

	return app.Run(ctx.Context, standalone.Module(httpConfig))
}

func init() {
	rootApp.Commands = append(rootApp.Commands, serveCmd)
}
