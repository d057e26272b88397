package paddle

import "errors"

var (
	ErrInvalidEnvironment = errors.New("paddle: invalid environment")
	ErrMissingCustomerID  = errors.New("paddle: customer id is required")
	ErrNoCheckoutURL      = errors.New("paddle: no checkout url returned")
	ErrCircuitOpen        = errors.New("paddle: circuit breaker is open")
)
