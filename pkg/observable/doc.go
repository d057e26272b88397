// Package observable provides a small, type-safe publish/subscribe value holder.
//
// A Value keeps the latest value of type T and pushes every write to its
// subscribers synchronously, on the writer's goroutine, in write order.
// Subscribers receive the current value as soon as they subscribe, so a late
// subscriber never misses the state, only the history.
//
// Basic usage:
//
//	premium := observable.NewValue(false)
//	defer premium.Close()
//
//	stop := premium.Subscribe(func(v bool) {
//		fmt.Println("premium:", v)
//	})
//	defer stop()
//
//	premium.Set(true)
//
// Channel consumers use Watch, which keeps only the latest value for slow readers:
//
//	for v := range premium.Watch(ctx) {
//		render(v)
//	}
//
// Map derives a read-only view without copying state:
//
//	label := observable.Map[bool, string](premium, func(v bool) string {
//		if v {
//			return "premium"
//		}
//		return "free"
//	})
package observable
