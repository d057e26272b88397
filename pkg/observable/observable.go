package observable

import (
	"context"
	"sync"
)

// Readable is the read side of an observable value.
// Implementations must be safe for concurrent use.
type Readable[T any] interface {
	// Get returns the most recently written value.
	Get() T

	// Subscribe registers fn and immediately calls it with the current value.
	// Every later write is delivered synchronously, in write order, on the
	// goroutine that performed the write, also when writers race. fn must
	// not write to or subscribe to the same value. The returned function
	// removes the subscription; calling it more than once is safe.
	Subscribe(fn func(T)) (unsubscribe func())

	// Watch returns a channel that always holds the latest value only.
	// Intermediate values are dropped for slow readers rather than queued.
	// The channel is closed when ctx is done or the value is closed.
	Watch(ctx context.Context) <-chan T
}

type subscription[T any] struct {
	id uint64
	fn func(T)
}

// Value holds a single value and fans every write out to its subscribers.
// Most recent write wins: there is no buffering or coalescing of writes.
type Value[T any] struct {
	// notify is held from a write until its fan-out returns, so subscribers
	// observe writes in the order they were stored.
	notify sync.Mutex

	mu      sync.RWMutex
	current T
	subs    []subscription[T]
	nextID  uint64
	closed  bool
	onClose []func()
}

// NewValue creates a Value holding initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{current: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set replaces the current value and notifies all current subscribers.
// Set on a closed Value still stores the value but notifies nobody.
func (v *Value[T]) Set(val T) {
	v.Update(func(T) T { return val })
}

// Update computes the next value from the current one under the write lock,
// stores it and notifies subscribers. It returns the stored value.
func (v *Value[T]) Update(fn func(old T) T) T {
	v.notify.Lock()
	defer v.notify.Unlock()

	v.mu.Lock()
	next := fn(v.current)
	v.current = next
	var subs []subscription[T]
	if !v.closed {
		subs = make([]subscription[T], len(v.subs))
		copy(subs, v.subs)
	}
	v.mu.Unlock()

	for _, s := range subs {
		s.fn(next)
	}
	return next
}

// Subscribe implements Readable.
// Subscribing to a closed Value delivers the current value once and returns a no-op unsubscribe.
func (v *Value[T]) Subscribe(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}

	v.notify.Lock()
	defer v.notify.Unlock()

	v.mu.Lock()
	current := v.current
	if v.closed {
		v.mu.Unlock()
		fn(current)
		return func() {}
	}
	v.nextID++
	id := v.nextID
	v.subs = append(v.subs, subscription[T]{id: id, fn: fn})
	v.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() { v.unsubscribe(id) })
	}
}

// Watch implements Readable.
func (v *Value[T]) Watch(ctx context.Context) <-chan T {
	return watch(ctx, v.Subscribe, v.registerClose)
}

// Subscribers returns the number of active subscriptions.
func (v *Value[T]) Subscribers() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.subs)
}

// Close drops every subscription and closes all Watch channels.
// It is safe to call Close multiple times.
func (v *Value[T]) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.subs = nil
	hooks := v.onClose
	v.onClose = nil
	v.mu.Unlock()

	for _, h := range hooks {
		h()
	}
}

func (v *Value[T]) unsubscribe(id uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for i, s := range v.subs {
		if s.id == id {
			v.subs = append(v.subs[:i:i], v.subs[i+1:]...)
			return
		}
	}
}

// registerClose runs fn when the value is closed, or right away if it already is.
func (v *Value[T]) registerClose(fn func()) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		fn()
		return
	}
	v.onClose = append(v.onClose, fn)
	v.mu.Unlock()
}

// watch adapts a subscribe function to a latest-value channel.
func watch[T any](ctx context.Context, subscribe func(func(T)) func(), onClose func(func())) <-chan T {
	ch := make(chan T, 1)

	var (
		mu     sync.Mutex
		closed bool
	)

	deliver := func(val T) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- val:
		default:
			// Replace the stale value with the latest one.
			select {
			case <-ch:
			default:
			}
			ch <- val
		}
	}

	stop := make(chan struct{})
	var stopOnce sync.Once
	shutdown := func() { stopOnce.Do(func() { close(stop) }) }

	unsubscribe := subscribe(deliver)
	onClose(shutdown)

	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
		}
		unsubscribe()
		mu.Lock()
		closed = true
		close(ch)
		mu.Unlock()
	}()

	return ch
}
