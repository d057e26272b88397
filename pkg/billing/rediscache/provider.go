package rediscache

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dmitrymomot/premiumkit/pkg/billing"
	"github.com/dmitrymomot/premiumkit/pkg/logger"
)

// DefaultKey is the storage key of the cached placements.
const DefaultKey = "placements"

// Cache stores raw values by key. *redis.Storage satisfies it.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte) error
}

// Provider wraps a billing.Provider and remembers the last non-empty
// placements it returned. When the wrapped provider comes back empty the
// cached placements are served instead. Every other method is delegated.
type Provider struct {
	billing.Provider
	cache Cache
	key   string
	log   *slog.Logger
}

var (
	_ billing.Provider = (*Provider)(nil)
	_ billing.Notifier = (*Provider)(nil)
)

// Option configures a Provider.
type Option func(*Provider)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(p *Provider) {
		if key != "" {
			p.key = key
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.log = l
		}
	}
}

// New wraps next with cache. Panics if either is nil.
func New(next billing.Provider, cache Cache, opts ...Option) *Provider {
	if next == nil {
		panic("rediscache: billing provider is required")
	}
	if cache == nil {
		panic("rediscache: cache is required")
	}
	p := &Provider{Provider: next, cache: cache, key: DefaultKey, log: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(logger.Component("placement_cache"))
	return p
}

// FetchPlacements returns fresh placements and stores them, or the last
// stored placements when the wrapped provider returned none. Cache errors
// are logged and never surface.
func (p *Provider) FetchPlacements(ctx context.Context, maxAttempts int) []billing.Placement {
	placements := p.Provider.FetchPlacements(ctx, maxAttempts)
	if len(placements) > 0 {
		p.store(ctx, placements)
		return placements
	}
	if ctx.Err() != nil {
		return placements
	}

	cached, ok := p.load(ctx)
	if !ok {
		return placements
	}
	p.log.InfoContext(ctx, "serving cached placements", slog.Int("placements", len(cached)))
	return cached
}

// OnEntitlementsChanged forwards to the wrapped provider when it is a
// billing.Notifier.
func (p *Provider) OnEntitlementsChanged(fn func()) func() {
	if n, ok := p.Provider.(billing.Notifier); ok {
		return n.OnEntitlementsChanged(fn)
	}
	return func() {}
}

func (p *Provider) store(ctx context.Context, placements []billing.Placement) {
	data, err := json.Marshal(placements)
	if err != nil {
		p.log.WarnContext(ctx, "failed to encode placements", logger.Error(err))
		return
	}
	if err := p.cache.Set(ctx, p.key, data); err != nil {
		p.log.WarnContext(ctx, "failed to cache placements", logger.Error(err))
	}
}

func (p *Provider) load(ctx context.Context) ([]billing.Placement, bool) {
	data, err := p.cache.Get(ctx, p.key)
	if err != nil {
		p.log.WarnContext(ctx, "failed to read cached placements", logger.Error(err))
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}

	var placements []billing.Placement
	if err := json.Unmarshal(data, &placements); err != nil {
		p.log.WarnContext(ctx, "cached placements are corrupt", logger.Error(err))
		return nil, false
	}
	return placements, len(placements) > 0
}
