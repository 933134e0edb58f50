package models

// ShippingCode is the stable shipping vocabulary used regardless of the provider's field names.
type ShippingCode string

const (
	ShippingEconomy  ShippingCode = "economy"
	ShippingStandard ShippingCode = "standard"
	ShippingExpress  ShippingCode = "express"
	ShippingPriority ShippingCode = "priority"
)

// ShippingDisplayOrder is the tie-break order for quotes with equal prices.
var ShippingDisplayOrder = []ShippingCode{ShippingEconomy, ShippingStandard, ShippingExpress, ShippingPriority}

// Valid reports whether c is one of the canonical codes.
func (c ShippingCode) Valid() bool {
	for _, code := range ShippingDisplayOrder {
		if c == code {
			return true
		}
	}
	return false
}

// ShippingQuote is a canonical shipping option. Price is in minor currency units.
type ShippingQuote struct {
	Code  ShippingCode `json:"code"`
	Price int64        `json:"price"`
}
