package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/01moynul/fitshop-api/internal/database"
	"github.com/01moynul/fitshop-api/internal/models"
	"github.com/01moynul/fitshop-api/internal/printify"
)

// Customer is the buyer as recorded locally.
type Customer struct {
	Email   string         `json:"email"`
	Address models.Address `json:"address"`
}

// StatusItem is a line item with live production state.
type StatusItem struct {
	ProductID          string `json:"product_id"`
	VariantID          int64  `json:"variant_id"`
	Quantity           int    `json:"quantity"`
	Title              string `json:"title"`
	VariantLabel       string `json:"variant_label"`
	Price              int64  `json:"price"`
	Status             string `json:"status"`
	SentToProductionAt string `json:"sent_to_production_at,omitempty"`
	FulfilledAt        string `json:"fulfilled_at,omitempty"`
}

// Status is the merged view returned to the customer. Money fields come from
// the local order, fulfillment and tracking fields from the provider.
type Status struct {
	Success           bool                `json:"success"`
	OrderStatus       string              `json:"order_status"`
	TrackingNumber    string              `json:"tracking_number"`
	TrackingURL       string              `json:"tracking_url"`
	TotalPrice        int64               `json:"total_price"`
	TotalShipping     int64               `json:"total_shipping"`
	Currency          string              `json:"currency"`
	CreatedAt         string              `json:"created_at"`
	Customer          Customer            `json:"customer"`
	Items             []StatusItem        `json:"items"`
	Metadata          map[string]any      `json:"metadata"`
	ShippingMethod    int                 `json:"shipping_method"`
	IsPrintifyExpress bool                `json:"is_printify_express"`
	IsEconomyShipping bool                `json:"is_economy_shipping"`
	Shipments         []printify.Shipment `json:"shipments"`
	PrintifyConnect   *printify.Connect   `json:"printify_connect"`
}

// Status looks up an order by number and email; both must match.
func (s *Service) Status(ctx context.Context, orderNumber, email string) (*Status, error) {
	// 1. --- Find Local Order ---
	order, err := s.Store.FindByNumberAndEmail(ctx, nil, orderNumber, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrLookup, err)
	}

	// 2. --- Require Provider Link ---
	if !order.Linked() {
		return nil, ErrNotLinked
	}

	// 3. --- Fetch Live Status ---
	live, err := s.Fulfillment.GetOrder(ctx, order.StoreID, order.ProviderOrderID.String)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLookup, err)
	}

	return mergeStatus(order, live), nil
}

func mergeStatus(order *models.Order, live *printify.OrderDetails) *Status {
	st := &Status{
		Success:           true,
		OrderStatus:       live.Status,
		TotalPrice:        order.TotalPrice,
		TotalShipping:     order.ShippingCost,
		Currency:          order.Currency,
		CreatedAt:         order.CreatedAt.UTC().Format(time.RFC3339),
		Customer:          Customer{Email: order.Email, Address: order.ShippingAddress},
		Metadata:          live.Metadata,
		ShippingMethod:    live.ShippingMethod,
		IsPrintifyExpress: live.IsPrintifyExpress,
		IsEconomyShipping: live.IsEconomyShipping,
		Shipments:         live.Shipments,
		PrintifyConnect:   live.PrintifyConnect,
		Items:             make([]StatusItem, 0, len(live.LineItems)),
	}
	if st.Metadata == nil {
		st.Metadata = map[string]any{}
	}
	if st.Shipments == nil {
		st.Shipments = []printify.Shipment{}
	}
	if len(live.Shipments) > 0 {
		st.TrackingNumber = live.Shipments[0].Number
		st.TrackingURL = live.Shipments[0].URL
	}

	for _, li := range live.LineItems {
		st.Items = append(st.Items, StatusItem{
			ProductID:          li.ProductID,
			VariantID:          li.VariantID,
			Quantity:           li.Quantity,
			Title:              li.Metadata.Title,
			VariantLabel:       li.Metadata.VariantLabel,
			Price:              li.Metadata.Price,
			Status:             li.Status,
			SentToProductionAt: li.SentToProductionAt,
			FulfilledAt:        li.FulfilledAt,
		})
	}
	return st
}
