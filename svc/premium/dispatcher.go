package premium

import "sync"

// Dispatcher runs state publications on the caller's logical thread.
// Implementations must run fn exactly once and return after it finished.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(fn func())

func (f DispatcherFunc) Dispatch(fn func()) { f(fn) }

// serialDispatcher runs fn inline, one at a time.
// Subscribers invoked from fn must not call back into Manager operations.
type serialDispatcher struct {
	mu sync.Mutex
}

func (d *serialDispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn()
}
