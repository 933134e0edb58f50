// Package payments creates Stripe payment intents with each store's own secret key.
package payments

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/01moynul/fitshop-api/internal/config"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

var (
	// ErrNotConfigured means the store has no Stripe secret.
	ErrNotConfigured = errors.New("payment is not configured for this store")
	// ErrInvalidAmount rejects non-positive amounts before calling Stripe.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrProvider wraps Stripe failures.
	ErrProvider = errors.New("payment provider error")
)

// Intent is what the storefront needs to confirm a card payment.
type Intent struct {
	ID           string `json:"paymentIntentId"`
	ClientSecret string `json:"clientSecret"`
}

// Client resolves the store's secret on every call; no key is shared between stores.
type Client struct {
	Stores   config.StoreLookup
	backends *stripe.Backends
}

// NewClient builds a client with a bounded timeout and no automatic retries.
// An empty baseURL means Stripe's production API.
func NewClient(stores config.StoreLookup, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	cfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		MaxNetworkRetries: stripe.Int64(0),
	}
	if baseURL != "" {
		cfg.URL = stripe.String(baseURL)
	}
	return &Client{
		Stores:   stores,
		backends: &stripe.Backends{API: stripe.GetBackendWithConfig(stripe.APIBackend, cfg)},
	}
}

// CreateIntent creates a payment intent for amount minor units of currency.
func (c *Client) CreateIntent(ctx context.Context, storeID string, amount int64, currency, receiptEmail string) (*Intent, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	cfg, ok := c.Stores.Store(storeID)
	if !ok || cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("%w: %s", ErrNotConfigured, storeID)
	}

	sc := &client.API{}
	sc.Init(cfg.StripeSecretKey, c.backends)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if receiptEmail != "" {
		params.ReceiptEmail = stripe.String(receiptEmail)
	}
	params.Context = ctx
	params.AddMetadata("store_id", storeID)

	pi, err := sc.PaymentIntents.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			return nil, fmt.Errorf("%w: %s", ErrProvider, stripeErr.Msg)
		}
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	return &Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
