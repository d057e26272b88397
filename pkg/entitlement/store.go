package entitlement

import (
	"slices"

	"github.com/dmitrymomot/premiumkit/pkg/observable"
	"github.com/dmitrymomot/premiumkit/pkg/paywall"
	"github.com/dmitrymomot/premiumkit/pkg/product"
)

// Catalog pairs the product list with the preselected product.
// The pair is always replaced as a whole so observers never see a default
// product that belongs to another list.
type Catalog struct {
	Products       []product.Product
	DefaultProduct *product.Product // nil or an element of Products
}

// State is a consistent copy of everything the Store holds.
type State struct {
	IsPremium      bool              `json:"is_premium"`
	Products       []product.Product `json:"products"`
	PaywallVariant paywall.Variant   `json:"paywall_variant"`
	DefaultProduct *product.Product  `json:"default_product"`
}

// Reader is the read-only view of the Store handed to consumers.
type Reader interface {
	IsPremium() observable.Readable[bool]
	Products() observable.Readable[[]product.Product]
	PaywallVariant() observable.Readable[paywall.Variant]
	DefaultProduct() observable.Readable[*product.Product]
	Snapshot() State
}

// Store is the single source of truth for entitlement state.
// Every setter publishes synchronously to current subscribers on the caller's
// goroutine; the most recent write wins. Writers are expected to be serialised
// by their owner.
type Store struct {
	premium *observable.Value[bool]
	variant *observable.Value[paywall.Variant]
	catalog *observable.Value[Catalog]

	products       observable.Readable[[]product.Product]
	defaultProduct observable.Readable[*product.Product]
}

var _ Reader = (*Store)(nil)

// NewStore creates a Store with defaults: not premium, no products,
// Fallback variant and no default product.
func NewStore() *Store {
	s := &Store{
		premium: observable.NewValue(false),
		variant: observable.NewValue(paywall.Fallback),
		catalog: observable.NewValue(Catalog{Products: []product.Product{}}),
	}
	s.products = observable.Map[Catalog, []product.Product](s.catalog, func(c Catalog) []product.Product {
		return c.Products
	})
	s.defaultProduct = observable.Map[Catalog, *product.Product](s.catalog, func(c Catalog) *product.Product {
		return c.DefaultProduct
	})
	return s
}

func (s *Store) IsPremium() observable.Readable[bool]                  { return s.premium }
func (s *Store) Products() observable.Readable[[]product.Product]      { return s.products }
func (s *Store) PaywallVariant() observable.Readable[paywall.Variant]  { return s.variant }
func (s *Store) DefaultProduct() observable.Readable[*product.Product] { return s.defaultProduct }
func (s *Store) Catalog() observable.Readable[Catalog]                 { return s.catalog }

// SetPremium publishes the premium flag.
func (s *Store) SetPremium(v bool) {
	s.premium.Set(v)
}

// SetPaywallVariant publishes the variant. Values outside the closed set are
// stored as paywall.Fallback.
func (s *Store) SetPaywallVariant(v paywall.Variant) {
	if !v.IsValid() {
		v = paywall.Fallback
	}
	s.variant.Set(v)
}

// SetProducts replaces the product list. The current default product is kept
// only if a product with the same ID is in the new list, and then points at
// that element.
func (s *Store) SetProducts(products []product.Product) {
	products = normalize(products)
	s.catalog.Update(func(old Catalog) Catalog {
		next := Catalog{Products: products}
		if old.DefaultProduct != nil {
			next.DefaultProduct = find(products, old.DefaultProduct.ID)
		}
		return next
	})
}

// SetDefaultProduct sets the preselected product. nil clears it.
// A pointer into the current list is used as is; otherwise the first product
// with the same ID is chosen. A product that is not in the list is ignored.
func (s *Store) SetDefaultProduct(p *product.Product) {
	s.catalog.Update(func(old Catalog) Catalog {
		if p == nil {
			return Catalog{Products: old.Products}
		}
		match := element(old.Products, p)
		if match == nil {
			match = find(old.Products, p.ID)
		}
		if match == nil {
			return old
		}
		return Catalog{Products: old.Products, DefaultProduct: match}
	})
}

// SetCatalog replaces products and the default product in one publication.
// def must be nil or point into products; anything else is dropped.
func (s *Store) SetCatalog(products []product.Product, def *product.Product) {
	products = normalize(products)
	next := Catalog{Products: products}
	next.DefaultProduct = element(products, def)
	s.catalog.Set(next)
}

// Snapshot returns a consistent copy of the current state.
func (s *Store) Snapshot() State {
	c := s.catalog.Get()
	return State{
		IsPremium:      s.premium.Get(),
		Products:       slices.Clone(c.Products),
		PaywallVariant: s.variant.Get(),
		DefaultProduct: c.DefaultProduct,
	}
}

// Close drops all subscribers and closes watch channels.
func (s *Store) Close() {
	s.premium.Close()
	s.variant.Close()
	s.catalog.Close()
}

func normalize(products []product.Product) []product.Product {
	if products == nil {
		return []product.Product{}
	}
	return products
}

// element returns p if it points at an element of products.
// Products may share an ID, so identity is what selects the element.
func element(products []product.Product, p *product.Product) *product.Product {
	if p == nil {
		return nil
	}
	for i := range products {
		if &products[i] == p {
			return p
		}
	}
	return nil
}

func find(products []product.Product, id string) *product.Product {
	for i := range products {
		if products[i].ID == id {
			return &products[i]
		}
	}
	return nil
}
