package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lambda-feedback/simpleserver/config"
	"github.com/lambda-feedback/simpleserver/internal/shell"
	"github.com/lambda-feedback/simpleserver/util/conf"
	"github.com/lambda-feedback/simpleserver/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	appName  = "simpleserver"
	appUsage = `A minimal HTTP demonstration server, serving a handful of
JSON routes over plain HTTP or AWS Lambda.`
	rootApp = &cli.App{
		Name:            appName,
		Usage:           appUsage,
		HideHelpCommand: true,
		Flags:           rootFlags(),
		Before:          before,
		After:           after,
	}
)

// rootFlags returns the global flags. A fresh set is built per
// app, urfave/cli keeps parse state on the flag values.
func rootFlags() []cli.Flag {
	return []cli.Flag{
		// general flags
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "set the log level. Options: debug, info, warn, error, panic, fatal.",
			EnvVars: []string{"LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:    "log-format",
			Usage:   "set the log format. Options: production, development.",
			EnvVars: []string{"LOG_FORMAT"},
		},
		&cli.StringFlag{
			Name:     "config",
			Usage:    "load configuration from a json or .env file.",
			Aliases:  []string{"C"},
			EnvVars:  []string{"CONFIG_FILE"},
			Category: "config",
		},
		// app flags
		&cli.StringFlag{
			Name:     "environment",
			Usage:    "the name of the deployment environment.",
			Aliases:  []string{"E"},
			EnvVars:  []string{"ENVIRONMENT", "NODE_ENV"},
			Category: "app",
		},
		&cli.BoolFlag{
			Name:     "validate-responses",
			Usage:    "validate responses against their schema and log mismatches.",
			EnvVars:  []string{"VALIDATE_RESPONSES"},
			Category: "app",
		},
	}
}

// before creates the logger and parses the configuration, both
// are stored in the cli context for the commands.
func before(ctx *cli.Context) error {
	// create the logger
	log, err := createLogger(ctx)
	if err != nil {
		return err
	}

	// inject logger into cli context
	ctx.Context = logging.ContextWithLogger(ctx.Context, log)

	// parse config from defaults, file, env and flags
	cfg, err := conf.Parse[config.Config](conf.ParseOptions{
		Cli:      ctx,
		Defaults: config.DefaultConfig,
		FileName: ctx.String("config"),
		Log:      log,
	})
	if err != nil {
		return err
	}

	// inject the config into the cli context
	ctx.Context = conf.ContextWithConfig(ctx.Context, cfg)

	return nil
}

func after(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	log.Sync()

	return nil
}

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:               "version",
		Usage:              "print the version",
		DisableDefaultText: true,
	}
}

type ExecuteParams struct {
	Version  string
	Compiled time.Time
}

// Execute runs the root app with the process arguments and
// returns the exit code.
func Execute(params ExecuteParams) int {
	rootApp.Version = params.Version
	rootApp.Compiled = params.Compiled

	return run(context.Background(), os.Args)
}

// run runs the cli app and returns the process exit code.
func run(ctx context.Context, args []string) int {
	err := rootApp.RunContext(ctx, args)

	// if app exited without error, return
	if err == nil {
		return 0
	}

	// if app exited with ExitError, exit with given exit code
	if exitErr, ok := shell.AsExitError(err); ok {
		return exitErr.ExitCode
	}

	// otherwise, exit with exit code 1
	fmt.Fprintf(os.Stderr, "exit error: %s\n", err.Error())

	return 1
}

func createLogger(ctx *cli.Context) (*zap.Logger, error) {
	level := getLogLevelFromCLI(ctx)
	format := getLogFormatFromCLI(ctx)

	var config zap.Config
	if format == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
	}

	config.InitialFields = map[string]any{
		"app": appName,
	}

	config.Level = level

	return config.Build()
}

func getLogFormatFromCLI(ctx *cli.Context) string {
	format := ctx.String("log-format")
	if format != "" {
		return format
	}

	return "production"
}

func getLogLevelFromCLI(ctx *cli.Context) zap.AtomicLevel {
	lvl := ctx.String("log-level")

	if atom, err := zap.ParseAtomicLevel(lvl); err == nil {
		return atom
	}

	return zap.NewAtomicLevelAt(zap.InfoLevel)
}
