package redis

import "time"

type Config struct {
	ConnectionURL  string        `env:"PREMIUM_REDIS_URL"`                              // empty disables the placement cache; format "redis://:password@localhost:6379/0"
	KeyPrefix      string        `env:"PREMIUM_REDIS_PREFIX" envDefault:"premium:"`     // prepended to every storage key
	TTL            time.Duration `env:"PREMIUM_REDIS_TTL" envDefault:"24h"`             // zero means no expiration
	RetryAttempts  int           `env:"PREMIUM_REDIS_RETRY_ATTEMPTS" envDefault:"3"`    // connection attempts
	RetryInterval  time.Duration `env:"PREMIUM_REDIS_RETRY_INTERVAL" envDefault:"2s"`   // delay between connection attempts
	ConnectTimeout time.Duration `env:"PREMIUM_REDIS_CONNECT_TIMEOUT" envDefault:"30s"` // overall connection deadline
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
