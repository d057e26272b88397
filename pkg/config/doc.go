// Package config loads typed configuration from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// an optional `.env` file is read into the process environment, then the
// environment is parsed into any struct annotated with `env` tags.
//
// Each configuration type is parsed once per process and cached by type.
// A failed parse is not cached, so a later Load can succeed once the
// environment is fixed.
//
// # Usage
//
//	type Config struct {
//	    APIKey    string `env:"PREMIUM_API_KEY,required"`
//	    DebugMode bool   `env:"PREMIUM_DEBUG_MODE" envDefault:"false"`
//	}
//
//	func main() {
//	    if err := config.LoadEnv("./deploy/.env"); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    var cfg Config
//	    config.MustLoad(&cfg)
//	}
//
// # Error Handling
//
// Errors wrap one of the package sentinels and can be matched with errors.Is:
//
//   - ErrParsingConfig: env vars could not be parsed into the struct.
//   - ErrLoadingEnvFile: an explicit .env file could not be read.
//   - ErrConfigNotLoaded: a cached entry holds no value.
//   - ErrNilPointer: nil pointer passed to Load or MustLoad.
//
// # Testing
//
// Reset clears the cache between tests that change the environment.
package config
