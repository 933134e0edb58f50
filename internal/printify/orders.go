package printify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/01moynul/fitshop-api/internal/models"
)

// PlaceholderPhone is sent when the customer gave no phone number; the
// provider rejects orders without one.
const PlaceholderPhone = "0000000000"

// Provider shipping_method values.
const (
	methodStandard = 1
	methodPriority = 2
	methodExpress  = 3
	methodEconomy  = 4
)

// SubmitRequest is the local order data needed to place a provider order.
type SubmitRequest struct {
	Email          string
	ShippingMethod models.ShippingCode
	Address        models.Address
	LineItems      []models.LineItem
}

// SubmitResult is the provider's answer to an order submission.
type SubmitResult struct {
	ID string `json:"id"`
}

type Recipient struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
	Region    string `json:"region"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
}

type orderLineItem struct {
	ProductID string `json:"product_id"`
	VariantID int64  `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

type orderPayload struct {
	ExternalID               string          `json:"external_id"`
	Label                    string          `json:"label"`
	LineItems                []orderLineItem `json:"line_items"`
	ShippingMethod           int             `json:"shipping_method"`
	IsPrintifyExpress        bool            `json:"is_printify_express"`
	IsEconomyShipping        bool            `json:"is_economy_shipping"`
	SendShippingNotification bool            `json:"send_shipping_notification"`
	AddressTo                Recipient       `json:"address_to"`
}

// buildOrderPayload shapes a provider order. The order number is the
// external_id, and the provider's own notification email is disabled.
func buildOrderPayload(orderNumber string, req SubmitRequest) orderPayload {
	a := req.Address
	email := a.Email
	if email == "" {
		email = req.Email
	}
	phone := a.Phone
	if phone == "" {
		phone = PlaceholderPhone
	}

	p := orderPayload{
		ExternalID:               orderNumber,
		Label:                    orderNumber,
		ShippingMethod:           methodStandard,
		SendShippingNotification: false,
		AddressTo: Recipient{
			FirstName: a.FirstName,
			LastName:  a.LastName,
			Email:     email,
			Phone:     phone,
			Country:   a.Country,
			Region:    a.Region,
			Address1:  a.Address1,
			Address2:  a.Address2,
			City:      a.City,
			Zip:       a.Zip,
		},
	}

	switch req.ShippingMethod {
	case models.ShippingPriority:
		p.ShippingMethod = methodPriority
	case models.ShippingExpress:
		p.ShippingMethod = methodExpress
		p.IsPrintifyExpress = true
	case models.ShippingEconomy:
		p.ShippingMethod = methodEconomy
		p.IsEconomyShipping = true
	}

	p.LineItems = make([]orderLineItem, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		p.LineItems = append(p.LineItems, orderLineItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
		})
	}
	return p
}

// SubmitOrder places the order with the provider.
func (c *Client) SubmitOrder(ctx context.Context, storeID, orderNumber string, req SubmitRequest) (*SubmitResult, error) {
	var out SubmitResult
	path := fmt.Sprintf("/v1/shops/%s/orders.json", url.PathEscape(storeID))
	if err := c.do(ctx, http.MethodPost, path, buildOrderPayload(orderNumber, req), &out, "submit", ErrOrderSubmission); err != nil {
		return nil, err
	}
	if out.ID == "" {
		return nil, &Error{Op: "submit", Message: "provider returned no order id", kind: ErrOrderSubmission}
	}
	return &out, nil
}

// OrderDetails is the subset of a provider order used for status lookups.
type OrderDetails struct {
	ID                string          `json:"id"`
	Status            string          `json:"status"`
	ShippingMethod    int             `json:"shipping_method"`
	IsPrintifyExpress bool            `json:"is_printify_express"`
	IsEconomyShipping bool            `json:"is_economy_shipping"`
	TotalPrice        int64           `json:"total_price"`
	TotalShipping     int64           `json:"total_shipping"`
	CreatedAt         string          `json:"created_at"`
	AddressTo         Recipient       `json:"address_to"`
	LineItems         []OrderLineItem `json:"line_items"`
	Metadata          map[string]any  `json:"metadata"`
	Shipments         []Shipment      `json:"shipments"`
	PrintifyConnect   *Connect        `json:"printify_connect,omitempty"`
}

// OrderLineItem is a provider line item with its production timestamps.
type OrderLineItem struct {
	ProductID          string           `json:"product_id"`
	VariantID          int64            `json:"variant_id"`
	Quantity           int              `json:"quantity"`
	Status             string           `json:"status"`
	SentToProductionAt string           `json:"sent_to_production_at,omitempty"`
	FulfilledAt        string           `json:"fulfilled_at,omitempty"`
	Metadata           LineItemMetadata `json:"metadata"`
}

type LineItemMetadata struct {
	Title        string `json:"title"`
	Price        int64  `json:"price"`
	VariantLabel string `json:"variant_label"`
	SKU          string `json:"sku"`
	Country      string `json:"country"`
}

// Shipment is carrier tracking for part or all of an order.
type Shipment struct {
	Carrier     string `json:"carrier"`
	Number      string `json:"number"`
	URL         string `json:"url"`
	DeliveredAt string `json:"delivered_at,omitempty"`
}

type Connect struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// GetOrder reads a provider order.
func (c *Client) GetOrder(ctx context.Context, storeID, providerOrderID string) (*OrderDetails, error) {
	var out OrderDetails
	path := fmt.Sprintf("/v1/shops/%s/orders/%s.json", url.PathEscape(storeID), url.PathEscape(providerOrderID))
	if err := c.do(ctx, http.MethodGet, path, nil, &out, "fetch", ErrOrderFetch); err != nil {
		return nil, err
	}
	return &out, nil
}
