package paddle_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/premiumkit/pkg/billing"
	"github.com/dmitrymomot/premiumkit/pkg/billing/paddle"
	"github.com/dmitrymomot/premiumkit/pkg/logger"
)

type fakeAPI struct {
	mu            sync.Mutex
	catalog       []paddle.CatalogProduct
	catalogErrs   int // first N catalog calls fail
	catalogCalls  int
	subscriptions []string
	subsErr       error
	checkout      paddle.Checkout
	checkoutErr   error
	checkoutPrice string
}

func (f *fakeAPI) ListCatalog(ctx context.Context) ([]paddle.CatalogProduct, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalogCalls++
	if f.catalogCalls <= f.catalogErrs {
		return nil, errors.New("paddle unavailable")
	}
	return f.catalog, nil
}

func (f *fakeAPI) ActiveSubscriptions(ctx context.Context, customerID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subscriptions, f.subsErr
}

func (f *fakeAPI) CreateCheckout(ctx context.Context, priceID, customerID, successURL string) (paddle.Checkout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkoutPrice = priceID
	return f.checkout, f.checkoutErr
}

func (f *fakeAPI) setSubscriptions(ids ...string) {
	f.mu.Lock()
	f.subscriptions = ids
	f.mu.Unlock()
}

type fakeVerifier struct {
	valid bool
	got   string
}

func (v *fakeVerifier) Verify(req *http.Request) (bool, error) {
	v.got = req.Header.Get("Paddle-Signature")
	return v.valid, nil
}

func testConfig() paddle.Config {
	return paddle.Config{
		Environment:     "sandbox",
		CustomerID:      "ctm_1",
		RetryBase:       time.Millisecond,
		BreakerFailures: 100,
		BreakerOpenFor:  time.Minute,
	}
}

func newProvider(t *testing.T, cfg paddle.Config, api *fakeAPI, opts ...paddle.Option) *paddle.Provider {
	t.Helper()
	opts = append([]paddle.Option{
		paddle.WithLogger(logger.Nop()),
		paddle.WithAPIFactory(func(string) (paddle.API, error) { return api, nil }),
	}, opts...)
	p, err := paddle.New(cfg, opts...)
	require.NoError(t, err)
	return p
}

func TestNew_InvalidEnvironment(t *testing.T) {
	t.Parallel()

	_, err := paddle.New(paddle.Config{Environment: "staging"})
	assert.ErrorIs(t, err, paddle.ErrInvalidEnvironment)
}

func TestProvider_Start(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{subscriptions: []string{"sub_1"}}
	p := newProvider(t, testConfig(), api)

	assert.ErrorIs(t, p.Start(context.Background(), ""), billing.ErrMissingAPIKey)
	assert.False(t, p.HasPremiumAccess())

	require.NoError(t, p.Start(context.Background(), "key"))
	assert.True(t, p.HasPremiumAccess(), "start reads subscriptions")
	assert.ErrorIs(t, p.Start(context.Background(), "key"), billing.ErrAlreadyStarted)
}

func TestProvider_FetchPlacements(t *testing.T) {
	t.Parallel()

	catalog := []paddle.CatalogProduct{{
		ID:         "pro_1",
		CustomData: map[string]any{"placement": "main", "paywall": float64(1)},
		Prices:     []paddle.CatalogPrice{{ID: "pri_1", Amount: "499", CurrencyCode: "USD"}},
	}}

	t.Run("not started", func(t *testing.T) {
		p := newProvider(t, testConfig(), &fakeAPI{catalog: catalog})
		assert.Empty(t, p.FetchPlacements(context.Background(), 3))
	})

	t.Run("retries transient failures", func(t *testing.T) {
		api := &fakeAPI{catalog: catalog, catalogErrs: 2}
		p := newProvider(t, testConfig(), api)
		require.NoError(t, p.Start(context.Background(), "key"))

		placements := p.FetchPlacements(context.Background(), 5)
		require.Len(t, placements, 1)
		assert.Equal(t, "4.99", placements[0].Paywall.Products[0].Store.Price)
		assert.Equal(t, 3, api.catalogCalls)
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		api := &fakeAPI{catalog: catalog, catalogErrs: 100}
		p := newProvider(t, testConfig(), api)
		require.NoError(t, p.Start(context.Background(), "key"))

		assert.Empty(t, p.FetchPlacements(context.Background(), 4))
		assert.Equal(t, 4, api.catalogCalls)
	})

	t.Run("open breaker stops retrying", func(t *testing.T) {
		cfg := testConfig()
		cfg.BreakerFailures = 2
		api := &fakeAPI{catalog: catalog, catalogErrs: 100}
		p := newProvider(t, cfg, api)
		require.NoError(t, p.Start(context.Background(), "key"))

		assert.Empty(t, p.FetchPlacements(context.Background(), 10))
		assert.Equal(t, 2, api.catalogCalls)
	})
}

func TestProvider_Purchase(t *testing.T) {
	t.Parallel()

	t.Run("returns checkout", func(t *testing.T) {
		api := &fakeAPI{checkout: paddle.Checkout{TransactionID: "txn_1", URL: "https://pay.example.com/txn_1"}}
		p := newProvider(t, testConfig(), api)
		require.NoError(t, p.Start(context.Background(), "key"))

		res := p.Purchase(context.Background(), billing.Product{ID: "com.app.weekly", ProviderRef: "pri_weekly"})
		require.NoError(t, res.Err)
		assert.Equal(t, "pri_weekly", api.checkoutPrice)
		assert.Equal(t, "txn_1", res.TransactionID)
		assert.Equal(t, "https://pay.example.com/txn_1", res.CheckoutURL)
		assert.False(t, p.HasPremiumAccess(), "access waits for the webhook")
	})

	t.Run("api error", func(t *testing.T) {
		api := &fakeAPI{checkoutErr: errors.New("declined")}
		p := newProvider(t, testConfig(), api)
		require.NoError(t, p.Start(context.Background(), "key"))

		res := p.Purchase(context.Background(), billing.Product{ID: "pri_1"})
		assert.ErrorIs(t, res.Err, billing.ErrPurchaseFailed)
	})

	t.Run("no customer", func(t *testing.T) {
		cfg := testConfig()
		cfg.CustomerID = ""
		p := newProvider(t, cfg, &fakeAPI{})
		require.NoError(t, p.Start(context.Background(), "key"))

		res := p.Purchase(context.Background(), billing.Product{ID: "pri_1"})
		assert.ErrorIs(t, res.Err, paddle.ErrMissingCustomerID)
	})

	t.Run("not started", func(t *testing.T) {
		p := newProvider(t, testConfig(), &fakeAPI{})
		res := p.Purchase(context.Background(), billing.Product{ID: "pri_1"})
		assert.ErrorIs(t, res.Err, billing.ErrNotStarted)
	})
}

func TestProvider_Restore(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	p := newProvider(t, testConfig(), api)
	require.NoError(t, p.Start(context.Background(), "key"))
	assert.False(t, p.HasPremiumAccess())

	api.setSubscriptions("sub_1", "sub_2")
	res := p.Restore(context.Background())
	require.NoError(t, res.Err)
	assert.Equal(t, []string{"sub_1", "sub_2"}, res.Subscriptions)
	assert.True(t, p.HasPremiumAccess())

	api.mu.Lock()
	api.subsErr = errors.New("boom")
	api.mu.Unlock()
	res = p.Restore(context.Background())
	assert.ErrorIs(t, res.Err, billing.ErrRestoreFailed)
	assert.True(t, p.HasPremiumAccess(), "failed refresh keeps the cached value")
}

func TestProvider_Webhook(t *testing.T) {
	t.Parallel()

	t.Run("no secret", func(t *testing.T) {
		p := newProvider(t, testConfig(), &fakeAPI{})
		_, err := p.HandlePushNotification(context.Background(), billing.Notification{Payload: []byte(`{}`)})
		assert.ErrorIs(t, err, billing.ErrUnsupported)
	})

	t.Run("invalid signature", func(t *testing.T) {
		p := newProvider(t, testConfig(), &fakeAPI{}, paddle.WithWebhookVerifier(&fakeVerifier{valid: false}))
		_, err := p.HandlePushNotification(context.Background(), billing.Notification{Payload: []byte(`{}`), Signature: "ts=1;h1=x"})
		assert.ErrorIs(t, err, billing.ErrInvalidSignature)
	})

	t.Run("subscription event refreshes and notifies", func(t *testing.T) {
		api := &fakeAPI{}
		verifier := &fakeVerifier{valid: true}
		p := newProvider(t, testConfig(), api, paddle.WithWebhookVerifier(verifier))
		require.NoError(t, p.Start(context.Background(), "key"))

		calls := 0
		stop := p.OnEntitlementsChanged(func() { calls++ })
		defer stop()

		api.setSubscriptions("sub_1")
		handled, err := p.HandlePushNotification(context.Background(), billing.Notification{
			Payload:   []byte(`{"event_id":"evt_1","event_type":"subscription.activated"}`),
			Signature: "ts=1;h1=abc",
		})
		require.NoError(t, err)
		assert.True(t, handled)
		assert.Equal(t, "ts=1;h1=abc", verifier.got)
		assert.True(t, p.HasPremiumAccess())
		assert.Equal(t, 1, calls)
	})

	t.Run("other events are not handled", func(t *testing.T) {
		p := newProvider(t, testConfig(), &fakeAPI{}, paddle.WithWebhookVerifier(&fakeVerifier{valid: true}))
		handled, err := p.HandlePushNotification(context.Background(), billing.Notification{
			Payload: []byte(`{"event_type":"customer.updated"}`),
		})
		require.NoError(t, err)
		assert.False(t, handled)
	})

	t.Run("malformed payload", func(t *testing.T) {
		p := newProvider(t, testConfig(), &fakeAPI{}, paddle.WithWebhookVerifier(&fakeVerifier{valid: true}))
		_, err := p.HandlePushNotification(context.Background(), billing.Notification{Payload: []byte(`nope`)})
		assert.ErrorIs(t, err, billing.ErrUnknownNotification)
	})
}

func TestProvider_SubmitPushToken(t *testing.T) {
	t.Parallel()

	p := newProvider(t, testConfig(), &fakeAPI{})
	assert.ErrorIs(t, p.SubmitPushToken(context.Background(), []byte("tok")), billing.ErrUnsupported)
}
