// Package async provides generic futures for work that completes on another goroutine.
//
// Provider calls (placement fetches, purchases, restores) are started with Async or Go and
// awaited later, so the caller can keep serving its own loop while the work is in flight:
//
//	f := async.Go(ctx, func(ctx context.Context) ([]billing.Placement, error) {
//		return provider.FetchPlacements(ctx, 10), nil
//	})
//
//	// do other work …
//	placements, err := f.Await()
//
// AwaitContext and AwaitWithTimeout bound the wait without cancelling the work itself.
// Resolved builds a Future that is already complete, which is how short-circuited
// operations (for example debug-mode restores) keep the same asynchronous shape.
package async
