package config

import (
	"github.com/lambda-feedback/simpleserver/random"
	"github.com/lambda-feedback/simpleserver/runtime"
	"github.com/lambda-feedback/simpleserver/util/conf"
)

type Config struct {
	// LogLevel is the log level for the application
	LogLevel string `conf:"log_level"`

	// LogFormat is the log format for the application
	LogFormat string `conf:"log_format"`

	// ValidateResponses enables validation of every outgoing
	// response against the schema of its route. Mismatches are
	// logged, the response itself is never altered.
	ValidateResponses bool `conf:"validate_responses"`

	// Runtime is the runtime configuration
	Runtime runtime.Config `conf:",squash"`

	// Random is the configuration of the random generator pool
	Random random.Config `conf:"random"`
}

// DefaultConfig contains the default values for Config.
var DefaultConfig = conf.DefaultConfig{
	"log_level":          "info",
	"log_format":         "production",
	"validate_responses": false,
	"environment":        runtime.DefaultEnvironment,
}.Merge(
	conf.Namespaced("random", random.DefaultConfig),
)
