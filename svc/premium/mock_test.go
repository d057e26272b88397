package premium_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/premiumkit/pkg/billing"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) Start(ctx context.Context, apiKey string) error {
	args := m.Called(ctx, apiKey)
	return args.Error(0)
}

func (m *mockProvider) FetchPlacements(ctx context.Context, maxAttempts int) []billing.Placement {
	args := m.Called(ctx, maxAttempts)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]billing.Placement)
}

func (m *mockProvider) HasPremiumAccess() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockProvider) Purchase(ctx context.Context, product billing.Product) billing.PurchaseResult {
	args := m.Called(ctx, product)
	return args.Get(0).(billing.PurchaseResult)
}

func (m *mockProvider) Restore(ctx context.Context) billing.RestoreResult {
	args := m.Called(ctx)
	return args.Get(0).(billing.RestoreResult)
}

func (m *mockProvider) SubmitPushToken(ctx context.Context, token []byte) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockProvider) HandlePushNotification(ctx context.Context, n billing.Notification) (bool, error) {
	args := m.Called(ctx, n)
	return args.Bool(0), args.Error(1)
}

// notifyingProvider adds billing.Notifier to the mock.
type notifyingProvider struct {
	*mockProvider

	mu        sync.Mutex
	listeners []func()
}

func (p *notifyingProvider) OnEntitlementsChanged(fn func()) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
	idx := len(p.listeners) - 1
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.listeners[idx] = nil
	}
}

func (p *notifyingProvider) notify() {
	p.mu.Lock()
	listeners := append([]func(){}, p.listeners...)
	p.mu.Unlock()
	for _, fn := range listeners {
		if fn != nil {
			fn()
		}
	}
}

func placements(code any, ids ...string) []billing.Placement {
	products := make([]billing.Product, len(ids))
	for i, id := range ids {
		products[i] = billing.Product{
			ID:    id,
			Store: &billing.StoreProduct{Price: "3.49", CurrencyCode: "USD"},
		}
	}
	raw := map[string]any{}
	if code != nil {
		raw[billing.PaywallVariantKey] = code
	}
	return []billing.Placement{{
		ID:      "main",
		Paywall: &billing.Paywall{ID: "pw_main", JSON: raw, Products: products},
	}}
}
