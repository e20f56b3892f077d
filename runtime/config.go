package runtime

// DefaultEnvironment is the environment name reported when
// none is configured.
const DefaultEnvironment = "development"

type Config struct {
	// Environment is the name of the deployment environment,
	// e.g. development or production.
	Environment string `conf:"environment"`
}
