package static

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/premiumkit/pkg/billing"
)

// Catalog is the content of a static provider file.
//
//	premium: false
//	fail_products: [com.app.broken]
//	placements:
//	  - id: main
//	    paywall:
//	      id: pw_main
//	      json: {paywall: 1}
//	      products:
//	        - id: com.app.weekly
//	          store: {price: "4.99", currency_code: USD}
type Catalog struct {
	Premium      bool                `yaml:"premium"`
	FailProducts []string            `yaml:"fail_products"`
	Placements   []billing.Placement `yaml:"placements"`
}

// Parse decodes a YAML catalog.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Catalog{}, errors.Join(ErrInvalidCatalog, err)
	}
	if err := c.validate(); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// Load reads and decodes the YAML catalog at path.
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read static catalog: %w", err)
	}
	return Parse(data)
}

func (c Catalog) validate() error {
	seen := map[string]bool{}
	for _, pl := range c.Placements {
		if pl.ID == "" {
			return fmt.Errorf("%w: placement without id", ErrInvalidCatalog)
		}
		if pl.Paywall == nil {
			continue
		}
		for _, p := range pl.Paywall.Products {
			if p.ID == "" {
				return fmt.Errorf("%w: product without id in placement %q", ErrInvalidCatalog, pl.ID)
			}
			seen[p.ID] = true
		}
	}
	for _, id := range c.FailProducts {
		if !seen[id] {
			return fmt.Errorf("%w: fail_products references unknown product %q", ErrInvalidCatalog, id)
		}
	}
	return nil
}

// product looks a product up by ID or provider reference.
func (c Catalog) product(ref string) (billing.Product, bool) {
	for _, pl := range c.Placements {
		if pl.Paywall == nil {
			continue
		}
		for _, p := range pl.Paywall.Products {
			if p.ID == ref || p.Ref() == ref {
				return p, true
			}
		}
	}
	return billing.Product{}, false
}
