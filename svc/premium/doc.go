// Package premium coordinates client-side subscription entitlement state.
//
// A Manager wraps a billing.Provider and owns an entitlement.Store. After
// Configure it can fetch placements and publish the resolved paywall variant,
// the annotated products and the default product; purchase and restore
// products; and re-check premium access. Every path that can change premium
// access ends in the same status check, which reads the provider's answer and
// publishes it.
//
// Operations called before Configure return ErrNotConfigured and change
// nothing. Provider failures are reported inside the provider's result values,
// never as Manager errors.
//
// In debug mode products carry fixed prices and RestorePurchases grants
// premium without calling the provider.
//
// Basic use:
//
//	m := premium.New(provider, premium.WithLogger(log))
//	if err := m.Configure(ctx, premium.Config{APIKey: key}); err != nil {
//	    return err
//	}
//	stop := m.Entitlements().IsPremium().Subscribe(func(v bool) { render(v) })
//	defer stop()
//	_ = m.FetchProducts(ctx)
//
// Handler exposes the same operations over HTTP as JSON.
package premium
