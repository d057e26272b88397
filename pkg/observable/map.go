package observable

import "context"

type closeNotifier interface {
	registerClose(fn func())
}

type mapped[A, B any] struct {
	src Readable[A]
	fn  func(A) B
}

// Map returns a read-only view of src transformed by fn.
// fn runs on every Get and on every delivery, so it should be cheap and pure.
func Map[A, B any](src Readable[A], fn func(A) B) Readable[B] {
	return &mapped[A, B]{src: src, fn: fn}
}

func (m *mapped[A, B]) Get() B {
	return m.fn(m.src.Get())
}

func (m *mapped[A, B]) Subscribe(fn func(B)) func() {
	if fn == nil {
		return func() {}
	}
	return m.src.Subscribe(func(a A) { fn(m.fn(a)) })
}

func (m *mapped[A, B]) Watch(ctx context.Context) <-chan B {
	return watch(ctx, m.Subscribe, m.registerClose)
}

func (m *mapped[A, B]) registerClose(fn func()) {
	if cn, ok := m.src.(closeNotifier); ok {
		cn.registerClose(fn)
	}
}
