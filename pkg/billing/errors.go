package billing

import "errors"

var (
	ErrNotStarted       = errors.New("billing provider not started")
	ErrAlreadyStarted   = errors.New("billing provider already started")
	ErrMissingAPIKey    = errors.New("billing provider API key is required")
	ErrUnsupported      = errors.New("operation not supported by billing provider")
	ErrProductNotFound  = errors.New("product not found")
	ErrPurchaseFailed   = errors.New("purchase failed")
	ErrPurchaseCanceled = errors.New("purchase canceled")
	ErrRestoreFailed    = errors.New("restore failed")

	ErrInvalidSignature    = errors.New("invalid notification signature")
	ErrUnknownNotification = errors.New("unknown notification")
)
