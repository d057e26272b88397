package paddle

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"
	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker/v2"

	"github.com/dmitrymomot/premiumkit/pkg/billing"
	"github.com/dmitrymomot/premiumkit/pkg/logger"
)

// WebhookVerifier checks the signature of a webhook request.
type WebhookVerifier interface {
	Verify(req *http.Request) (bool, error)
}

// Provider is a billing.Provider backed by the Paddle API.
//
// Placements are read from the product catalog, premium access is the
// presence of an active or trialing subscription for the configured customer,
// and purchases return a hosted checkout URL. Webhooks about subscriptions and
// completed transactions refresh the premium status.
type Provider struct {
	cfg      Config
	factory  APIFactory
	verifier WebhookVerifier
	log      *slog.Logger
	breaker  *gobreaker.CircuitBreaker[any]

	api     atomic.Pointer[apiHolder]
	premium atomic.Bool

	mu        sync.Mutex
	listeners map[uint64]func()
	nextID    uint64
}

type apiHolder struct{ API }

var (
	_ billing.Provider = (*Provider)(nil)
	_ billing.Notifier = (*Provider)(nil)
)

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.log = l
		}
	}
}

// WithAPIFactory replaces the SDK-backed API client.
func WithAPIFactory(f APIFactory) Option {
	return func(p *Provider) {
		if f != nil {
			p.factory = f
		}
	}
}

// WithWebhookVerifier replaces the verifier built from Config.WebhookSecret.
func WithWebhookVerifier(v WebhookVerifier) Option {
	return func(p *Provider) {
		if v != nil {
			p.verifier = v
		}
	}
}

// New creates a Provider. The API client is created by Start.
func New(cfg Config, opts ...Option) (*Provider, error) {
	p := &Provider{
		cfg:       cfg,
		log:       slog.Default(),
		listeners: map[uint64]func(){},
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.factory == nil {
		f, err := SDKFactory(cfg.Environment)
		if err != nil {
			return nil, err
		}
		p.factory = f
	}
	if p.verifier == nil && cfg.WebhookSecret != "" {
		p.verifier = paddle.NewWebhookVerifier(cfg.WebhookSecret)
	}

	p.log = p.log.With(logger.Provider("paddle"))
	p.breaker = gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "paddle",
		MaxRequests: max(cfg.BreakerHalfOpenN, 1),
		Timeout:     cfg.BreakerOpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= max(cfg.BreakerFailures, 1)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			p.log.Warn("paddle circuit breaker state changed",
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
	return p, nil
}

func (p *Provider) Start(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return billing.ErrMissingAPIKey
	}
	if p.api.Load() != nil {
		return billing.ErrAlreadyStarted
	}

	api, err := p.factory(apiKey)
	if err != nil {
		return err
	}
	if !p.api.CompareAndSwap(nil, &apiHolder{api}) {
		return billing.ErrAlreadyStarted
	}

	if p.cfg.CustomerID != "" {
		if _, err := p.refresh(ctx); err != nil {
			p.log.WarnContext(ctx, "initial subscription check failed", logger.Error(err))
		}
	}
	return nil
}

// FetchPlacements lists the catalog, retrying with exponential backoff up to
// maxAttempts times. It returns nil when every attempt failed.
func (p *Provider) FetchPlacements(ctx context.Context, maxAttempts int) []billing.Placement {
	api := p.client()
	if api == nil {
		return nil
	}

	var products []CatalogProduct
	attempts := 0
	backoff := retry.WithMaxRetries(uint64(max(maxAttempts-1, 0)), retry.NewExponential(p.retryBase()))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempts++
		res, err := p.call(func() (any, error) { return api.ListCatalog(ctx) })
		if err != nil {
			if errors.Is(err, ErrCircuitOpen) || ctx.Err() != nil {
				return err
			}
			return retry.RetryableError(err)
		}
		products, _ = res.([]CatalogProduct)
		return nil
	})
	if err != nil {
		p.log.WarnContext(ctx, "failed to fetch paddle catalog", logger.Attempts(attempts), logger.Error(err))
		return nil
	}
	return MapPlacements(products)
}

func (p *Provider) HasPremiumAccess() bool {
	return p.premium.Load()
}

// Purchase creates a checkout transaction for the product's price. Access is
// granted once Paddle reports the completed transaction by webhook.
func (p *Provider) Purchase(ctx context.Context, product billing.Product) billing.PurchaseResult {
	res := billing.PurchaseResult{ProductID: product.ID}
	api := p.client()
	if api == nil {
		res.Err = billing.ErrNotStarted
		return res
	}
	if p.cfg.CustomerID == "" {
		res.Err = errors.Join(billing.ErrPurchaseFailed, ErrMissingCustomerID)
		return res
	}

	out, err := p.call(func() (any, error) {
		return api.CreateCheckout(ctx, product.Ref(), p.cfg.CustomerID, p.cfg.SuccessURL)
	})
	if err != nil {
		res.Err = errors.Join(billing.ErrPurchaseFailed, err)
		return res
	}
	checkout, _ := out.(Checkout)
	res.TransactionID = checkout.TransactionID
	res.CheckoutURL = checkout.URL
	return res
}

// Restore re-reads the customer's active subscriptions.
func (p *Provider) Restore(ctx context.Context) billing.RestoreResult {
	if p.client() == nil {
		return billing.RestoreResult{Err: billing.ErrNotStarted}
	}
	if p.cfg.CustomerID == "" {
		return billing.RestoreResult{Err: errors.Join(billing.ErrRestoreFailed, ErrMissingCustomerID)}
	}

	ids, err := p.refresh(ctx)
	if err != nil {
		return billing.RestoreResult{Err: errors.Join(billing.ErrRestoreFailed, err)}
	}
	return billing.RestoreResult{Subscriptions: ids}
}

// SubmitPushToken is not supported: Paddle delivers changes by webhook.
func (p *Provider) SubmitPushToken(ctx context.Context, token []byte) error {
	return billing.ErrUnsupported
}

// webhookEvent is the part of a Paddle webhook the provider reads.
type webhookEvent struct {
	EventID   string `json:"event_id"`
	EventType string `json:"event_type"`
}

// HandlePushNotification verifies a Paddle webhook and, for subscription and
// completed transaction events, refreshes premium access and notifies
// listeners. Other event types are acknowledged as not handled.
func (p *Provider) HandlePushNotification(ctx context.Context, n billing.Notification) (bool, error) {
	if p.verifier == nil {
		return false, billing.ErrUnsupported
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "/", bytes.NewReader(n.Payload))
	if err != nil {
		return false, fmt.Errorf("failed to build webhook request: %w", err)
	}
	for k, v := range n.Headers {
		req.Header.Set(k, v)
	}
	if n.Signature != "" {
		req.Header.Set("Paddle-Signature", n.Signature)
	}

	valid, err := p.verifier.Verify(req)
	if err != nil || !valid {
		return false, errors.Join(billing.ErrInvalidSignature, err)
	}

	var event webhookEvent
	if err := json.Unmarshal(n.Payload, &event); err != nil {
		return false, errors.Join(billing.ErrUnknownNotification, err)
	}
	if !affectsAccess(event.EventType) {
		p.log.DebugContext(ctx, "paddle webhook ignored", slog.String("event_type", event.EventType))
		return false, nil
	}

	if p.client() != nil && p.cfg.CustomerID != "" {
		if _, err := p.refresh(ctx); err != nil {
			return true, err
		}
	}
	p.notify()
	return true, nil
}

func (p *Provider) OnEntitlementsChanged(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.listeners, id)
			p.mu.Unlock()
		})
	}
}

// refresh reloads the subscription list and updates the cached access flag.
func (p *Provider) refresh(ctx context.Context) ([]string, error) {
	api := p.client()
	out, err := p.call(func() (any, error) { return api.ActiveSubscriptions(ctx, p.cfg.CustomerID) })
	if err != nil {
		return nil, err
	}
	ids, _ := out.([]string)
	p.premium.Store(len(ids) > 0)
	p.log.DebugContext(ctx, "paddle subscriptions refreshed", slog.Int("active", len(ids)))
	return ids, nil
}

func (p *Provider) call(fn func() (any, error)) (any, error) {
	out, err := p.breaker.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errors.Join(ErrCircuitOpen, err)
	}
	return out, err
}

func (p *Provider) notify() {
	p.mu.Lock()
	listeners := make([]func(), 0, len(p.listeners))
	for _, fn := range p.listeners {
		listeners = append(listeners, fn)
	}
	p.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

func (p *Provider) client() API {
	h := p.api.Load()
	if h == nil {
		return nil
	}
	return h.API
}

func (p *Provider) retryBase() time.Duration {
	if p.cfg.RetryBase > 0 {
		return p.cfg.RetryBase
	}
	return 200 * time.Millisecond
}

func affectsAccess(eventType string) bool {
	return strings.HasPrefix(eventType, "subscription.") || eventType == "transaction.completed"
}
