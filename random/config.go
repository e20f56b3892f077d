package random

// DefaultConfig contains the default values for Config.
var DefaultConfig = map[string]any{
	"pool_size": 8,
}

type Config struct {
	// PoolSize is the maximum number of generators that may be
	// in use concurrently.
	PoolSize int `conf:"pool_size"`
}
