// Package email builds order confirmation mail and hands it to a transport.
package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/01moynul/fitshop-api/internal/config"
	"github.com/01moynul/fitshop-api/internal/models"
)

var (
	// ErrNoStoreConfig means no email configuration exists for the store.
	ErrNoStoreConfig = errors.New("no email configuration for store")
	// ErrNoSender means the store configuration has no sender address.
	ErrNoSender = errors.New("store email configuration has no sender")
)

// Mail is a rendered message ready for a transport.
type Mail struct {
	From     string
	FromName string
	To       string
	Subject  string
	Text     string
	HTML     string
}

// SummaryItem is one line of the confirmation. Price is per item, in minor units.
type SummaryItem struct {
	Title        string
	VariantLabel string
	Quantity     int
	Price        int64
}

// OrderSummary is everything the confirmation needs to know about an order.
type OrderSummary struct {
	Address        models.Address
	Items          []SummaryItem
	ShippingMethod string
	TotalPrice     int64
	Currency       string
}

// Composer renders confirmation mail from per-store configuration.
type Composer struct {
	Stores config.StoreLookup
}

func NewComposer(stores config.StoreLookup) *Composer {
	return &Composer{Stores: stores}
}

type htmlLine struct {
	Title        string
	VariantLabel string
	Quantity     int
	Price        string
	LineTotal    string
}

type htmlData struct {
	StoreName   string
	OrderID     string
	Address     models.Address
	Lines       []htmlLine
	Shipping    string
	Total       string
	TrackingURL string
}

var confirmationHTML = template.Must(template.New("confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #222;">
<h2>Thank you for your order!</h2>
<p>Your order <strong>{{.OrderID}}</strong> from {{.StoreName}} has been received and is being prepared.</p>
<h3>Shipping to</h3>
<p>
{{.Address.FirstName}} {{.Address.LastName}}<br>
{{.Address.Address1}}<br>
{{if .Address.Address2}}{{.Address.Address2}}<br>
{{end}}{{.Address.City}}{{if .Address.Region}}, {{.Address.Region}}{{end}} {{.Address.Zip}}<br>
{{.Address.Country}}
</p>
<table cellpadding="6" cellspacing="0" border="1" style="border-collapse: collapse;">
<tr><th align="left">Item</th><th align="left">Variant</th><th>Qty</th><th align="right">Price</th><th align="right">Total</th></tr>
{{range .Lines}}<tr><td>{{.Title}}</td><td>{{.VariantLabel}}</td><td align="center">{{.Quantity}}</td><td align="right">{{.Price}}</td><td align="right">{{.LineTotal}}</td></tr>
{{end}}</table>
<p>Shipping: {{.Shipping}}</p>
<p><strong>Total: {{.Total}}</strong></p>
<p><a href="{{.TrackingURL}}">Track your order</a></p>
</body>
</html>
`))

// Compose renders the confirmation for orderID. It is pure: nothing is sent.
func (c *Composer) Compose(storeID, toEmail, orderID string, summary OrderSummary) (*Mail, error) {
	// 1. --- Resolve Store Config ---
	cfg, ok := c.Stores.Store(storeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoStoreConfig, storeID)
	}
	if cfg.SMTP.From == "" {
		return nil, fmt.Errorf("%w: %s", ErrNoSender, storeID)
	}
	storeName := cfg.DisplayName
	if storeName == "" {
		storeName = "our store"
	}

	// 2. --- Tracking Link ---
	trackingURL := fmt.Sprintf("%s/order-status?orderId=%s&email=%s",
		strings.TrimRight(cfg.FrontendURL, "/"), url.QueryEscape(orderID), url.QueryEscape(toEmail))

	// 3. --- Lines ---
	data := htmlData{
		StoreName:   storeName,
		OrderID:     orderID,
		Address:     summary.Address,
		Shipping:    summary.ShippingMethod,
		Total:       FormatMoney(summary.TotalPrice, summary.Currency),
		TrackingURL: trackingURL,
	}
	var text strings.Builder
	fmt.Fprintf(&text, "Thank you for your order!\n\nOrder: %s\n\nItems:\n", orderID)
	for _, item := range summary.Items {
		lineTotal := item.Price * int64(item.Quantity)
		data.Lines = append(data.Lines, htmlLine{
			Title:        item.Title,
			VariantLabel: item.VariantLabel,
			Quantity:     item.Quantity,
			Price:        FormatMoney(item.Price, summary.Currency),
			LineTotal:    FormatMoney(lineTotal, summary.Currency),
		})
		label := item.Title
		if item.VariantLabel != "" {
			label += " (" + item.VariantLabel + ")"
		}
		fmt.Fprintf(&text, "- %s x%d: %s\n", label, item.Quantity, FormatMoney(lineTotal, summary.Currency))
	}

	a := summary.Address
	fmt.Fprintf(&text, "\nShipping: %s\nTotal: %s\n\nShipping to:\n%s %s\n%s\n",
		summary.ShippingMethod, data.Total, a.FirstName, a.LastName, a.Address1)
	if a.Address2 != "" {
		fmt.Fprintf(&text, "%s\n", a.Address2)
	}
	fmt.Fprintf(&text, "%s %s %s\n%s\n\nTrack your order: %s\n", a.City, a.Region, a.Zip, a.Country, trackingURL)

	// 4. --- Render HTML ---
	var html bytes.Buffer
	if err := confirmationHTML.Execute(&html, data); err != nil {
		return nil, fmt.Errorf("render confirmation: %w", err)
	}

	return &Mail{
		From:     cfg.SMTP.From,
		FromName: cfg.DisplayName,
		To:       toEmail,
		Subject:  fmt.Sprintf("Your %s order %s", storeName, orderID),
		Text:     text.String(),
		HTML:     html.String(),
	}, nil
}
