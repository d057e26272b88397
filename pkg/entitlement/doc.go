// Package entitlement holds the observable entitlement state: the premium flag,
// the product list, the active paywall variant and the preselected product.
//
// The Store is created once at application start and passed by reference to
// the components that update it. Consumers get the read-only Reader view and
// observe values through observable.Readable:
//
//	stop := store.IsPremium().Subscribe(func(premium bool) {
//		toggleAds(!premium)
//	})
//	defer stop()
package entitlement
