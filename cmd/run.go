package cmd

import (
	"os"

	"github.com/lambda-feedback/simpleserver/util/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

var (
	runCmdDescription = `The run command detects the execution environment from the
environment variables and starts the matching transport, so
the same binary can be deployed as a container or a lambda.

If the AWS_LAMBDA_RUNTIME_API environment variable is set,
the AWS Lambda handler is started, matching the behaviour of
the lambda command. Otherwise, the http server is started.`
	runCmd = &cli.Command{
		Name:        "run",
		Usage:       "Detect execution environment and start the server.",
		Description: runCmdDescription,
		Action:      runAction,
	}
)

// lambdaRuntimeAPIEnv is set by the AWS Lambda execution environment.
const lambdaRuntimeAPIEnv = "AWS_LAMBDA_RUNTIME_API"

func runAction(ctx *cli.Context) error {
	log, err := logging.LoggerFromContext(ctx.Context)
	if err != nil {
		return err
	}

	if api, ok := lambdaRuntimeAPI(); ok {
		log.Info("detected AWS Lambda environment", zap.String("runtime_api", api))
		return lambdaAction(ctx)
	}

	log.Info("detected standalone environment")
	return serveAction(ctx)
}

func lambdaRuntimeAPI() (string, bool) {
	api := os.Getenv(lambdaRuntimeAPIEnv)
	return api, api != ""
}

func init() {
	runCmd.Flags = append(runCmd.Flags, serveCmd.Flags...)
	runCmd.Flags = append(runCmd.Flags, lambdaCmd.Flags...)

	rootApp.Commands = append(rootApp.Commands, runCmd)
}
