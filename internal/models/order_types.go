package models

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

const (
	PaymentStatusPaid  = "paid"
	OrderStatusPending = "pending"
)

// Address is the customer's shipping address as sent by the storefront.
type Address struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Country   string `json:"country" binding:"required"`
	Region    string `json:"region,omitempty"`
	Address1  string `json:"address1" binding:"required"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city" binding:"required"`
	Zip       string `json:"zip" binding:"required"`
}

// LineItem is one purchased variant. Price is per item, in minor currency units.
type LineItem struct {
	ProductID    string `json:"product_id" binding:"required"`
	VariantID    int64  `json:"variant_id" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,gt=0"`
	Price        int64  `json:"price" binding:"gte=0"`
	Title        string `json:"title"`
	VariantLabel string `json:"variant_label"`
}

// LineItems is stored as a JSON column.
type LineItems []LineItem

// Order is a row of the 'orders' table. Money fields are integer minor units.
// ProviderOrderID stays NULL until the fulfillment provider accepts the order.
type Order struct {
	ID              int64          `json:"id" db:"id"`
	OrderNumber     string         `json:"orderNumber" db:"order_number"`
	StoreID         string         `json:"storeId" db:"store_id"`
	Email           string         `json:"email" db:"email"`
	TotalPrice      int64          `json:"totalPrice" db:"total_price"`
	Currency        string         `json:"currency" db:"currency"`
	ShippingMethod  string         `json:"shippingMethod" db:"shipping_method"`
	ShippingCost    int64          `json:"shippingCost" db:"shipping_cost"`
	ShippingAddress Address        `json:"shippingAddress" db:"shipping_address"`
	Items           LineItems      `json:"items" db:"items"`
	StripePaymentID string         `json:"stripePaymentId" db:"stripe_payment_id"`
	PaymentStatus   string         `json:"paymentStatus" db:"payment_status"`
	OrderStatus     string         `json:"orderStatus" db:"order_status"`
	ProviderOrderID sql.NullString `json:"providerOrderId,omitempty" db:"printify_order_id"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`
}

// Linked reports whether the provider has accepted the order.
func (o *Order) Linked() bool {
	return o.ProviderOrderID.Valid && o.ProviderOrderID.String != ""
}

func (a Address) Value() (driver.Value, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (a *Address) Scan(src any) error {
	return scanJSON(src, a)
}

func (l LineItems) Value() (driver.Value, error) {
	if l == nil {
		l = LineItems{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *LineItems) Scan(src any) error {
	return scanJSON(src, l)
}

func scanJSON(src any, dest any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
}
