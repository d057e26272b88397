package premium

// Config holds the values the Manager needs at startup.
// It is set once through Manager.Configure and never mutated afterwards.
type Config struct {
	APIKey    string `env:"PREMIUM_API_KEY,required"`
	DebugMode bool   `env:"PREMIUM_DEBUG_MODE" envDefault:"false"`
}

// Validate reports whether the config can be used to start a provider.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}
