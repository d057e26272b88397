package paddle

import (
	"context"
	"fmt"
	"strings"

	paddle "github.com/PaddleHQ/paddle-go-sdk/v4"

	"github.com/dmitrymomot/premiumkit/pkg/billing"
)

// CatalogProduct is a Paddle product with its prices.
type CatalogProduct struct {
	ID         string
	Name       string
	CustomData map[string]any
	Prices     []CatalogPrice
}

// CatalogPrice is a Paddle price. Amount is in minor units.
type CatalogPrice struct {
	ID           string
	Name         string
	Amount       string
	CurrencyCode string
	Trial        *billing.Period
	CustomData   map[string]any
	Archived     bool
}

// Checkout is a created checkout transaction.
type Checkout struct {
	TransactionID string
	URL           string
}

// API is the part of Paddle the provider talks to.
type API interface {
	ListCatalog(ctx context.Context) ([]CatalogProduct, error)
	ActiveSubscriptions(ctx context.Context, customerID string) ([]string, error)
	CreateCheckout(ctx context.Context, priceID, customerID, successURL string) (Checkout, error)
}

// APIFactory creates an API client for an API key.
type APIFactory func(apiKey string) (API, error)

// SDKFactory returns an APIFactory backed by the official Paddle SDK.
func SDKFactory(environment string) (APIFactory, error) {
	switch strings.ToLower(environment) {
	case "sandbox":
		return func(key string) (API, error) {
			client, err := paddle.NewSandbox(key)
			if err != nil {
				return nil, fmt.Errorf("failed to create paddle client: %w", err)
			}
			return &sdkAPI{client: client}, nil
		}, nil
	case "production", "":
		return func(key string) (API, error) {
			client, err := paddle.New(key)
			if err != nil {
				return nil, fmt.Errorf("failed to create paddle client: %w", err)
			}
			return &sdkAPI{client: client}, nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidEnvironment, environment)
	}
}

type sdkAPI struct {
	client *paddle.SDK
}

func (a *sdkAPI) ListCatalog(ctx context.Context) ([]CatalogProduct, error) {
	res, err := a.client.ProductsClient.ListProducts(ctx, &paddle.ListProductsRequest{
		IncludePrices: true,
		Status:        []string{"active"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list paddle products: %w", err)
	}

	var out []CatalogProduct
	err = res.Iter(ctx, func(p *paddle.Product) (bool, error) {
		out = append(out, catalogProduct(p))
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate paddle products: %w", err)
	}
	return out, nil
}

func (a *sdkAPI) ActiveSubscriptions(ctx context.Context, customerID string) ([]string, error) {
	res, err := a.client.SubscriptionsClient.ListSubscriptions(ctx, &paddle.ListSubscriptionsRequest{
		CustomerID: []string{customerID},
		Status: []string{
			string(paddle.SubscriptionStatusActive),
			string(paddle.SubscriptionStatusTrialing),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list paddle subscriptions: %w", err)
	}

	var ids []string
	err = res.Iter(ctx, func(s *paddle.Subscription) (bool, error) {
		ids = append(ids, s.ID)
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate paddle subscriptions: %w", err)
	}
	return ids, nil
}

func (a *sdkAPI) CreateCheckout(ctx context.Context, priceID, customerID, successURL string) (Checkout, error) {
	item := paddle.NewCreateTransactionItemsTransactionItemFromCatalog(&paddle.TransactionItemFromCatalog{
		PriceID:  priceID,
		Quantity: 1,
	})

	req := &paddle.CreateTransactionRequest{
		Items: []paddle.CreateTransactionItems{*item},
		CustomData: paddle.CustomData{
			"customer_id": customerID,
		},
	}
	if successURL != "" {
		req.Checkout = &paddle.TransactionCheckout{URL: paddle.PtrTo(successURL)}
	}

	txn, err := a.client.TransactionsClient.CreateTransaction(ctx, req)
	if err != nil {
		return Checkout{}, fmt.Errorf("failed to create paddle transaction: %w", err)
	}
	if txn.Checkout == nil || txn.Checkout.URL == nil {
		return Checkout{}, ErrNoCheckoutURL
	}
	return Checkout{TransactionID: txn.ID, URL: *txn.Checkout.URL}, nil
}

func catalogProduct(p *paddle.Product) CatalogProduct {
	out := CatalogProduct{
		ID:         p.ID,
		Name:       p.Name,
		CustomData: p.CustomData,
		Prices:     make([]CatalogPrice, 0, len(p.Prices)),
	}
	for _, pr := range p.Prices {
		cp := CatalogPrice{
			ID:           pr.ID,
			Name:         pr.Description,
			Amount:       pr.UnitPrice.Amount,
			CurrencyCode: string(pr.UnitPrice.CurrencyCode),
			CustomData:   pr.CustomData,
			Archived:     string(pr.Status) == "archived",
		}
		if pr.Name != nil && *pr.Name != "" {
			cp.Name = *pr.Name
		}
		if pr.TrialPeriod != nil {
			cp.Trial = &billing.Period{
				Unit:  billing.PeriodUnit(string(pr.TrialPeriod.Interval)),
				Count: pr.TrialPeriod.Frequency,
			}
		}
		out.Prices = append(out.Prices, cp)
	}
	return out
}
