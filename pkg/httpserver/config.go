package httpserver

import "time"

type Config struct {
	Addr            string        `env:"PREMIUM_HTTP_ADDR" envDefault:":8080"`
	ReadTimeout     time.Duration `env:"PREMIUM_HTTP_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"PREMIUM_HTTP_WRITE_TIMEOUT" envDefault:"60s"` // covers a full products fetch with retries
	IdleTimeout     time.Duration `env:"PREMIUM_HTTP_IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout time.Duration `env:"PREMIUM_HTTP_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = 5 * time.Second
	}
	return c
}
