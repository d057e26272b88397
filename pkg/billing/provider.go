package billing

import "context"

// Provider is the contract for billing/entitlement backends.
// A Provider owns purchase execution, receipt validation and the canonical
// premium-status truth; callers only sequence its operations.
//
// Implementations should use official provider SDKs and hide provider-specific
// quirks (retry budgets, id mapping, webhook formats) behind this interface.
type Provider interface {
	// Start performs one-time initialization. It must be called before any other method.
	Start(ctx context.Context, apiKey string) error

	// FetchPlacements returns the remotely configured placements.
	// It is best-effort: after up to maxAttempts tries it returns whatever it has,
	// possibly an empty slice. It never returns an error.
	FetchPlacements(ctx context.Context, maxAttempts int) []Placement

	// HasPremiumAccess reports the provider's current, locally known entitlement.
	// It must not block on network I/O.
	HasPremiumAccess() bool

	// Purchase starts a purchase of the given product.
	// Failures are reported through PurchaseResult.Err.
	Purchase(ctx context.Context, product Product) PurchaseResult

	// Restore asks the provider to restore previous purchases.
	// Failures are reported through RestoreResult.Err.
	Restore(ctx context.Context) RestoreResult

	// SubmitPushToken forwards a device push token to the provider.
	SubmitPushToken(ctx context.Context, token []byte) error

	// HandlePushNotification passes an incoming notification to the provider.
	// It reports whether the provider recognised the notification.
	HandlePushNotification(ctx context.Context, n Notification) (bool, error)
}

// Notifier is implemented by providers that push entitlement changes
// (webhooks, store transaction listeners) instead of waiting to be polled.
type Notifier interface {
	// OnEntitlementsChanged registers fn to be called after the provider's
	// entitlement view changed. The returned function removes the listener.
	OnEntitlementsChanged(fn func()) (remove func())
}

// PurchaseResult is the outcome of a purchase attempt.
type PurchaseResult struct {
	ProductID     string `json:"product_id"`
	TransactionID string `json:"transaction_id,omitempty"`
	CheckoutURL   string `json:"checkout_url,omitempty"` // hosted checkout for web providers
	Err           error  `json:"-"`
}

// Failed reports whether the provider signalled an error.
func (r PurchaseResult) Failed() bool {
	return r.Err != nil
}

// RestoreResult is the outcome of a restore attempt.
// Callers only rely on its completion; the payload is informational.
type RestoreResult struct {
	Subscriptions []string `json:"subscriptions,omitempty"`
	Purchases     []string `json:"purchases,omitempty"`
	Err           error    `json:"-"`
}

// Notification is an incoming push or webhook delivery.
type Notification struct {
	Payload   []byte            `json:"payload"`
	Signature string            `json:"signature,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
}
