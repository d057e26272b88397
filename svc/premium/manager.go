package premium

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/premiumkit/pkg/async"
	"github.com/dmitrymomot/premiumkit/pkg/billing"
	"github.com/dmitrymomot/premiumkit/pkg/entitlement"
	"github.com/dmitrymomot/premiumkit/pkg/logger"
	"github.com/dmitrymomot/premiumkit/pkg/paywall"
	"github.com/dmitrymomot/premiumkit/pkg/product"
)

// Operation names used in logs and metrics.
const (
	OpConfigure     = "configure"
	OpFetchProducts = "fetch_products"
	OpPurchase      = "purchase"
	OpRestore       = "restore"
	OpStatus        = "status"
	OpNotification  = "notification"
	OpPushToken     = "push_token"
)

// Manager coordinates entitlement state against a billing provider.
//
// Every state change is published through the Manager's Dispatcher.
// Provider calls happen outside of it, on the calling goroutine.
// Concurrent calls of the same operation are not de-duplicated; the last one
// to complete wins.
type Manager struct {
	provider    billing.Provider
	store       *entitlement.Store
	log         *slog.Logger
	dispatcher  Dispatcher
	maxAttempts int
	metrics     *Metrics

	mu       sync.RWMutex
	cfg      *Config
	unlisten func()
}

// New creates a Manager around provider. Panics if provider is nil.
// The Manager is unusable until Configure succeeds.
func New(provider billing.Provider, opts ...Option) *Manager {
	if provider == nil {
		panic("premium: billing provider is required")
	}

	m := &Manager{
		provider:    provider,
		store:       entitlement.NewStore(),
		log:         slog.Default(),
		dispatcher:  &serialDispatcher{},
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(logger.Component("premium"))
	return m
}

// Configure stores cfg, starts the provider and runs the first status check.
// It succeeds once; later calls return ErrAlreadyConfigured.
// A provider start failure leaves the Manager unconfigured.
func (m *Manager) Configure(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx = withOperationID(ctx)
	if err := m.start(ctx, cfg); err != nil {
		return err
	}

	m.log.InfoContext(ctx, "premium manager configured",
		logger.Operation(OpConfigure),
		slog.Bool("debug_mode", cfg.DebugMode),
	)
	m.metrics.operation(OpConfigure, outcomeOK)

	m.refreshStatus(ctx, OpConfigure)
	return nil
}

func (m *Manager) start(ctx context.Context, cfg Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cfg != nil {
		return ErrAlreadyConfigured
	}

	if err := m.provider.Start(ctx, cfg.APIKey); err != nil {
		m.log.ErrorContext(ctx, "billing provider failed to start", logger.Operation(OpConfigure), logger.Error(err))
		m.metrics.operation(OpConfigure, outcomeError)
		return errors.Join(ErrProviderStart, err)
	}

	m.cfg = &cfg
	if n, ok := m.provider.(billing.Notifier); ok {
		m.unlisten = n.OnEntitlementsChanged(func() {
			m.refreshStatus(withOperationID(context.Background()), OpNotification)
		})
	}
	return nil
}

// Configured reports whether Configure succeeded.
func (m *Manager) Configured() bool {
	_, ok := m.config()
	return ok
}

// Entitlements returns the read-only view of the entitlement state.
func (m *Manager) Entitlements() entitlement.Reader {
	return m.store
}

// Snapshot returns a consistent copy of the current entitlement state.
func (m *Manager) Snapshot() entitlement.State {
	return m.store.Snapshot()
}

// FetchProducts fetches placements, resolves the paywall variant and publishes
// the variant, then the product list together with its default product.
// Re-invocation re-resolves and republishes from scratch.
//
// Before Configure it returns ErrNotConfigured and leaves the state untouched.
// Otherwise it never fails: whatever the provider returned, even after ctx
// was cancelled, is published as the best-effort result.
func (m *Manager) FetchProducts(ctx context.Context) error {
	ctx = withOperationID(ctx)
	cfg, err := m.require(ctx, OpFetchProducts)
	if err != nil {
		return err
	}

	placements := m.provider.FetchPlacements(ctx, m.maxAttempts)
	res := paywall.Resolve(placements)
	products := product.AnnotateAll(res.Products, cfg.DebugMode)

	m.dispatcher.Dispatch(func() {
		m.store.SetPaywallVariant(res.Variant)
		// the selector reads the variant that was just published
		def := paywall.SelectDefault(m.store.PaywallVariant().Get(), products)
		m.store.SetCatalog(products, def)
		m.metrics.variant(res.Variant)
	})

	outcome := outcomeOK
	if ctx.Err() != nil {
		outcome = outcomeCanceled
	}
	m.metrics.operation(OpFetchProducts, outcome)
	m.log.DebugContext(ctx, "products fetched",
		logger.Operation(OpFetchProducts),
		logger.Variant(res.Variant),
		slog.Int("placements", len(placements)),
		slog.Int("products", len(products)),
	)
	return nil
}

// Purchase asks the provider to buy p. A nil product is a no-op.
// When the provider reports an error the premium status is re-checked, since
// a failed purchase may still have granted access. On success the status is
// refreshed by the provider's notifications, not inferred here.
//
// The provider's failure travels in the returned result; the error is only
// ErrNotConfigured.
func (m *Manager) Purchase(ctx context.Context, p *product.Product) (billing.PurchaseResult, error) {
	ctx = withOperationID(ctx)
	if _, err := m.require(ctx, OpPurchase); err != nil {
		return billing.PurchaseResult{}, err
	}
	if p == nil {
		return billing.PurchaseResult{}, nil
	}

	src := p.Source
	if src.ID == "" {
		src.ID = p.ID
	}

	result := m.provider.Purchase(ctx, src)
	if result.Failed() {
		m.log.WarnContext(ctx, "purchase failed",
			logger.Operation(OpPurchase),
			logger.ProductID(p.ID),
			logger.Error(result.Err),
		)
		m.metrics.operation(OpPurchase, outcomeError)
		m.refreshStatus(ctx, OpPurchase)
		return result, nil
	}

	m.log.InfoContext(ctx, "purchase completed",
		logger.Operation(OpPurchase),
		logger.ProductID(p.ID),
		slog.String("transaction_id", result.TransactionID),
	)
	m.metrics.operation(OpPurchase, outcomeOK)
	return result, nil
}

// PurchaseByID purchases the product with the given ID from the current
// product list. It returns ErrProductNotFound if the list does not contain it.
func (m *Manager) PurchaseByID(ctx context.Context, id string) (billing.PurchaseResult, error) {
	if !m.Configured() {
		return m.Purchase(ctx, nil)
	}
	products := m.store.Products().Get()
	for i := range products {
		if products[i].ID == id {
			return m.Purchase(ctx, &products[i])
		}
	}
	return billing.PurchaseResult{}, ErrProductNotFound
}

// RestorePurchases restores previous purchases and re-checks premium status
// whatever the provider reports. In debug mode it sets premium to true without
// calling the provider.
func (m *Manager) RestorePurchases(ctx context.Context) (billing.RestoreResult, error) {
	ctx = withOperationID(ctx)
	cfg, err := m.require(ctx, OpRestore)
	if err != nil {
		return billing.RestoreResult{}, err
	}

	if cfg.DebugMode {
		m.dispatcher.Dispatch(func() {
			m.store.SetPremium(true)
			m.metrics.premium(true)
		})
		m.metrics.operation(OpRestore, outcomeSimulated)
		m.log.DebugContext(ctx, "restore simulated", logger.Operation(OpRestore))
		return billing.RestoreResult{}, nil
	}

	result := m.provider.Restore(ctx)
	if result.Err != nil {
		m.log.WarnContext(ctx, "restore failed", logger.Operation(OpRestore), logger.Error(result.Err))
		m.metrics.operation(OpRestore, outcomeError)
	} else {
		m.metrics.operation(OpRestore, outcomeOK)
	}

	m.refreshStatus(ctx, OpRestore)
	return result, nil
}

// RefreshStatus re-reads premium access from the provider and publishes it.
func (m *Manager) RefreshStatus(ctx context.Context) (bool, error) {
	ctx = withOperationID(ctx)
	if _, err := m.require(ctx, OpStatus); err != nil {
		return false, err
	}
	return m.refreshStatus(ctx, OpStatus), nil
}

// FetchProductsAsync runs FetchProducts in the background. The future resolves
// to the state published by that call.
func (m *Manager) FetchProductsAsync(ctx context.Context) *async.Future[entitlement.State] {
	return async.Go(ctx, func(ctx context.Context) (entitlement.State, error) {
		if err := m.FetchProducts(ctx); err != nil {
			return entitlement.State{}, err
		}
		return m.store.Snapshot(), nil
	})
}

// PurchaseAsync runs Purchase in the background.
func (m *Manager) PurchaseAsync(ctx context.Context, p *product.Product) *async.Future[billing.PurchaseResult] {
	return async.Async(ctx, p, m.Purchase)
}

// RestorePurchasesAsync runs RestorePurchases in the background.
func (m *Manager) RestorePurchasesAsync(ctx context.Context) *async.Future[billing.RestoreResult] {
	return async.Go(ctx, m.RestorePurchases)
}

// SubmitPushToken forwards a device push token to the provider.
func (m *Manager) SubmitPushToken(ctx context.Context, token []byte) error {
	ctx = withOperationID(ctx)
	if err := m.provider.SubmitPushToken(ctx, token); err != nil {
		m.log.WarnContext(ctx, "push token rejected", logger.Operation(OpPushToken), logger.Error(err))
		m.metrics.operation(OpPushToken, outcomeError)
		return err
	}
	m.metrics.operation(OpPushToken, outcomeOK)
	return nil
}

// HandlePushNotification passes n to the provider and reports whether the
// provider recognised it.
func (m *Manager) HandlePushNotification(ctx context.Context, n billing.Notification) (bool, error) {
	ctx = withOperationID(ctx)
	handled, err := m.provider.HandlePushNotification(ctx, n)
	if err != nil {
		m.log.WarnContext(ctx, "push notification rejected", logger.Operation(OpNotification), logger.Error(err))
		m.metrics.operation(OpNotification, outcomeError)
		return false, err
	}
	m.metrics.operation(OpNotification, outcomeOK)
	return handled, nil
}

// Close stops listening to provider notifications and releases subscribers.
func (m *Manager) Close() {
	m.mu.Lock()
	unlisten := m.unlisten
	m.unlisten = nil
	m.mu.Unlock()

	if unlisten != nil {
		unlisten()
	}
	m.store.Close()
}

// refreshStatus is the single path that publishes premium status.
func (m *Manager) refreshStatus(ctx context.Context, op string) bool {
	status := m.provider.HasPremiumAccess()
	m.dispatcher.Dispatch(func() {
		m.store.SetPremium(status)
		m.metrics.premium(status)
	})
	m.log.DebugContext(ctx, "premium status refreshed", logger.Operation(op), slog.Bool("premium", status))
	return status
}

func (m *Manager) config() (Config, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.cfg == nil {
		return Config{}, false
	}
	return *m.cfg, true
}

func (m *Manager) require(ctx context.Context, op string) (Config, error) {
	cfg, ok := m.config()
	if !ok {
		m.log.WarnContext(ctx, "premium manager is not configured, call Configure first", logger.Operation(op))
		m.metrics.operation(op, outcomeNotConfigured)
		return Config{}, ErrNotConfigured
	}
	return cfg, nil
}

func withOperationID(ctx context.Context) context.Context {
	if _, ok := logger.OperationIDFrom(ctx); ok {
		return ctx
	}
	return logger.WithOperationID(ctx, uuid.NewString())
}
