package paddle

import "time"

// Config configures the Paddle provider. The API key is passed to Start.
type Config struct {
	Environment   string `env:"PADDLE_ENVIRONMENT" envDefault:"sandbox"`
	WebhookSecret string `env:"PADDLE_WEBHOOK_SECRET"`
	CustomerID    string `env:"PADDLE_CUSTOMER_ID"`
	SuccessURL    string `env:"PADDLE_SUCCESS_URL"`

	RetryBase        time.Duration `env:"PADDLE_RETRY_BASE" envDefault:"200ms"`
	BreakerFailures  uint32        `env:"PADDLE_BREAKER_FAILURES" envDefault:"5"`
	BreakerOpenFor   time.Duration `env:"PADDLE_BREAKER_OPEN_FOR" envDefault:"30s"`
	BreakerHalfOpenN uint32        `env:"PADDLE_BREAKER_HALF_OPEN_REQUESTS" envDefault:"1"`
}
