package cache

// Config selects the cache backend.
type Config struct {
	// RedisURL points to a Redis instance. Empty keeps state in process memory.
	RedisURL string `mapstructure:"redis_url" default:""`
}
