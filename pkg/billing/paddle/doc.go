// Package paddle implements billing.Provider on top of the Paddle Billing API.
//
// Paywalls are modelled in the Paddle catalog. A product tagged with a
// "placement" custom data key becomes the paywall of that placement, and its
// remaining custom data is the paywall's remote config, so a product with
//
//	{"placement": "main", "paywall": 1}
//
// resolves to the first-product variant. Each active price of the product is
// a paywall product; its "product_id" custom data names the store product and
// "position" orders it.
//
// Premium access is the presence of an active or trialing subscription for
// the configured customer. It is cached and refreshed on Start, Restore and
// on verified webhooks, so HasPremiumAccess never calls the API.
//
// API calls go through a circuit breaker; catalog reads are also retried with
// exponential backoff.
//
//	p, err := paddle.New(cfg, paddle.WithLogger(log))
//	manager := premium.New(p)
package paddle
