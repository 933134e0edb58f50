// Package handlers holds the gin controllers. Each one binds and validates
// its input, calls exactly one service and maps the service's errors to an
// HTTP status with a fixed message.
package handlers

import (
	"context"

	"github.com/01moynul/fitshop-api/internal/auth"
	"github.com/01moynul/fitshop-api/internal/models"
	"github.com/01moynul/fitshop-api/internal/orders"
	"github.com/01moynul/fitshop-api/internal/payments"
	"github.com/01moynul/fitshop-api/internal/printify"
	"github.com/goccy/go-json"
)

type AuthService interface {
	Register(ctx context.Context, username, password, email, site string) (*models.User, error)
	Authenticate(ctx context.Context, username, password, site string) (*auth.Result, error)
}

type OrderService interface {
	Submit(ctx context.Context, in orders.SubmitInput) (*orders.SubmitResult, error)
	Status(ctx context.Context, orderNumber, email string) (*orders.Status, error)
}

// Catalog is the read side of the fulfillment provider.
type Catalog interface {
	GetProducts(ctx context.Context, storeID string) (json.RawMessage, error)
	GetShippingRates(ctx context.Context, storeID string, req printify.ShippingRequest) ([]models.ShippingQuote, error)
}

type PaymentService interface {
	CreateIntent(ctx context.Context, storeID string, amount int64, currency, receiptEmail string) (*payments.Intent, error)
}

// PostStore is shared by blogs and articles.
type PostStore interface {
	List(ctx context.Context, site string, publishedOnly bool) ([]models.Post, error)
	GetBySlug(ctx context.Context, site, slug string) (*models.Post, error)
	GetByID(ctx context.Context, site string, id int64) (*models.Post, error)
	Create(ctx context.Context, p *models.Post) error
	Update(ctx context.Context, p *models.Post) error
	Delete(ctx context.Context, site string, id int64) error
}

type MetricStore interface {
	Upsert(ctx context.Context, m *models.DailyMetric) error
	List(ctx context.Context, userID int64, from, to string) ([]models.DailyMetric, error)
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Auth     AuthService
	Orders   OrderService
	Catalog  Catalog
	Payments PaymentService
	Blogs    PostStore
	Articles PostStore
	Metrics  MetricStore
}
