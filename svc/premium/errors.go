package premium

import "errors"

var (
	ErrNotConfigured     = errors.New("premium: manager is not configured")
	ErrAlreadyConfigured = errors.New("premium: manager is already configured")
	ErrMissingAPIKey     = errors.New("premium: provider API key is required")
	ErrProviderStart     = errors.New("premium: failed to start billing provider")
	ErrProductNotFound   = errors.New("premium: product not found")
)
