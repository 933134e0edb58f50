package printify

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/01moynul/fitshop-api/internal/models"
	"github.com/goccy/go-json"
)

// rawShippingFields maps the provider's response fields to canonical codes.
// The legacy "express" field is priority-speed shipping; "printify_express"
// is what is now called express.
var rawShippingFields = map[string]models.ShippingCode{
	"economy":          models.ShippingEconomy,
	"standard":         models.ShippingStandard,
	"express":          models.ShippingPriority,
	"printify_express": models.ShippingExpress,
	"priority":         models.ShippingPriority,
}

// ShippingLineItem identifies a variant to quote.
type ShippingLineItem struct {
	ProductID string `json:"product_id" binding:"required"`
	VariantID int64  `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// ShippingAddress is the destination to quote.
type ShippingAddress struct {
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Country   string `json:"country" binding:"required"`
	Region    string `json:"region"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	Zip       string `json:"zip" binding:"required"`
}

// ShippingRequest is the provider's shipping-cost request body.
type ShippingRequest struct {
	LineItems []ShippingLineItem `json:"line_items" binding:"required,min=1,dive"`
	AddressTo ShippingAddress    `json:"address_to" binding:"required"`
}

// GetShippingRates quotes the request and returns canonical, sorted quotes.
func (c *Client) GetShippingRates(ctx context.Context, storeID string, req ShippingRequest) ([]models.ShippingQuote, error) {
	raw := map[string]json.RawMessage{}
	path := fmt.Sprintf("/v1/shops/%s/orders/shipping.json", url.PathEscape(storeID))
	if err := c.do(ctx, http.MethodPost, path, req, &raw, "shipping", ErrUnavailable); err != nil {
		return nil, err
	}
	return NormalizeShippingRates(raw), nil
}

// NormalizeShippingRates reduces the provider's raw fields to one quote per
// canonical code, keeping the cheapest price on collision. The result is sorted
// by price, then by models.ShippingDisplayOrder. Prices are integer minor
// units; unknown fields, negative, fractional and out-of-range values are
// ignored.
func NormalizeShippingRates(raw map[string]json.RawMessage) []models.ShippingQuote {
	best := map[models.ShippingCode]int64{}
	for field, value := range raw {
		code, ok := rawShippingFields[field]
		if !ok {
			continue
		}
		price, ok := parsePrice(value)
		if !ok {
			continue
		}
		if current, seen := best[code]; !seen || price < current {
			best[code] = price
		}
	}

	quotes := make([]models.ShippingQuote, 0, len(best))
	for _, code := range models.ShippingDisplayOrder {
		if price, ok := best[code]; ok {
			quotes = append(quotes, models.ShippingQuote{Code: code, Price: price})
		}
	}
	// SliceStable keeps display order for equal prices.
	sort.SliceStable(quotes, func(i, j int) bool { return quotes[i].Price < quotes[j].Price })
	return quotes
}

// maxShippingPrice is the largest integer a float64 holds exactly.
const maxShippingPrice = 1 << 53

func parsePrice(value json.RawMessage) (int64, bool) {
	var n json.Number
	if err := json.Unmarshal(value, &n); err != nil {
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return 0, false
		}
		n = json.Number(s)
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil || math.IsNaN(f) || f < 0 || f > maxShippingPrice || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}
