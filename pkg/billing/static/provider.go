package static

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dmitrymomot/premiumkit/pkg/billing"
	"github.com/dmitrymomot/premiumkit/pkg/logger"
)

// Provider is a deterministic billing.Provider backed by a Catalog.
// Purchases always succeed unless the product is listed in FailProducts;
// a successful purchase grants premium access and notifies listeners.
type Provider struct {
	catalog Catalog
	log     *slog.Logger

	started atomic.Bool
	premium atomic.Bool

	mu        sync.Mutex
	owned     map[string]string // product ID -> transaction ID
	tokens    [][]byte
	listeners map[uint64]func()
	nextID    uint64
}

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

// New creates a Provider serving c.
func New(c Catalog, opts ...Option) *Provider {
	p := &Provider{
		catalog:   c,
		log:       slog.Default(),
		owned:     map[string]string{},
		listeners: map[uint64]func(){},
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(logger.Provider("static"))
	p.premium.Store(c.Premium)
	return p
}

func (p *Provider) Start(ctx context.Context, apiKey string) error {
	if apiKey == "" {
		return billing.ErrMissingAPIKey
	}
	if !p.started.CompareAndSwap(false, true) {
		return billing.ErrAlreadyStarted
	}
	p.log.DebugContext(ctx, "static provider started", slog.Int("placements", len(p.catalog.Placements)))
	return nil
}

// FetchPlacements returns a copy of the catalog placements. The catalog is
// local, so one attempt is always enough.
func (p *Provider) FetchPlacements(ctx context.Context, maxAttempts int) []billing.Placement {
	if !p.started.Load() || ctx.Err() != nil {
		return nil
	}
	return clonePlacements(p.catalog.Placements)
}

func (p *Provider) HasPremiumAccess() bool {
	return p.premium.Load()
}

func (p *Provider) Purchase(ctx context.Context, product billing.Product) billing.PurchaseResult {
	res := billing.PurchaseResult{ProductID: product.ID}
	if !p.started.Load() {
		res.Err = billing.ErrNotStarted
		return res
	}

	known, ok := p.catalog.product(product.Ref())
	if !ok {
		known, ok = p.catalog.product(product.ID)
	}
	if !ok {
		res.Err = fmt.Errorf("%w: %s", billing.ErrProductNotFound, product.ID)
		return res
	}
	res.ProductID = known.ID
	if slices.Contains(p.catalog.FailProducts, known.ID) {
		res.Err = fmt.Errorf("%w: %s is configured to fail", billing.ErrPurchaseFailed, known.ID)
		return res
	}

	res.TransactionID = "txn_" + uuid.NewString()
	p.mu.Lock()
	p.owned[known.ID] = res.TransactionID
	p.mu.Unlock()

	p.log.InfoContext(ctx, "static purchase granted", logger.ProductID(known.ID))
	p.setPremium(true)
	return res
}

// Restore reports the products bought through this provider.
func (p *Provider) Restore(ctx context.Context) billing.RestoreResult {
	if !p.started.Load() {
		return billing.RestoreResult{Err: billing.ErrNotStarted}
	}

	p.mu.Lock()
	purchases := make([]string, 0, len(p.owned))
	for id := range p.owned {
		purchases = append(purchases, id)
	}
	p.mu.Unlock()
	sort.Strings(purchases)

	return billing.RestoreResult{Purchases: purchases}
}

// SubmitPushToken records the token.
func (p *Provider) SubmitPushToken(ctx context.Context, token []byte) error {
	if len(token) == 0 {
		return errors.New("static: empty push token")
	}
	p.mu.Lock()
	p.tokens = append(p.tokens, slices.Clone(token))
	p.mu.Unlock()
	return nil
}

// Tokens returns the submitted push tokens.
func (p *Provider) Tokens() [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.tokens)
}

// notification is the payload HandlePushNotification understands:
//
//	{"premium": true}
type notification struct {
	Premium *bool `json:"premium"`
}

// HandlePushNotification applies {"premium": bool} payloads.
// Other JSON objects are not recognised; invalid JSON is an error.
func (p *Provider) HandlePushNotification(ctx context.Context, n billing.Notification) (bool, error) {
	var msg notification
	if err := json.Unmarshal(n.Payload, &msg); err != nil {
		return false, errors.Join(billing.ErrUnknownNotification, err)
	}
	if msg.Premium == nil {
		return false, nil
	}
	p.setPremium(*msg.Premium)
	return true, nil
}

// Grant sets premium access and notifies listeners.
func (p *Provider) Grant() { p.setPremium(true) }

// Revoke clears premium access and notifies listeners.
func (p *Provider) Revoke() { p.setPremium(false) }

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

func (p *Provider) setPremium(v bool) {
	p.premium.Store(v)

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

func clonePlacements(src []billing.Placement) []billing.Placement {
	out := make([]billing.Placement, len(src))
	for i, pl := range src {
		out[i] = billing.Placement{ID: pl.ID}
		if pl.Paywall == nil {
			continue
		}
		pw := *pl.Paywall
		pw.JSON = maps.Clone(pw.JSON)
		pw.Products = slices.Clone(pw.Products)
		out[i].Paywall = &pw
	}
	return out
}
