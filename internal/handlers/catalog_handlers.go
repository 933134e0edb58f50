package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/01moynul/fitshop-api/internal/printify"
	"github.com/gin-gonic/gin"
)

type ShippingInput struct {
	StoreID   string                      `json:"storeId" binding:"required"`
	LineItems []printify.ShippingLineItem `json:"line_items" binding:"required,min=1,dive"`
	AddressTo printify.ShippingAddress    `json:"address_to"`
}

// providerMessage returns the provider's own message, which is safe to show.
func providerMessage(err error) string {
	var perr *printify.Error
	if errors.As(err, &perr) && perr.Message != "" {
		return perr.Message
	}
	return "Unknown error"
}

// --- Products (Public) ---
func (h *Handlers) GetProducts(c *gin.Context) {
	storeID := c.Query("storeId")
	if storeID == "" {
		badRequest(c, "storeId is required")
		return
	}

	products, err := h.Catalog.GetProducts(c.Request.Context(), storeID)
	if err != nil {
		log.Printf("ERROR: products for store %s: %v", storeID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch products",
			"details": providerMessage(err),
		})
		return
	}
	c.JSON(http.StatusOK, products)
}

// --- Shipping Quotes (Public) ---
func (h *Handlers) GetShippingRates(c *gin.Context) {
	var input ShippingInput
	if !bindJSON(c, &input) {
		return
	}

	rates, err := h.Catalog.GetShippingRates(c.Request.Context(), input.StoreID, printify.ShippingRequest{
		LineItems: input.LineItems,
		AddressTo: input.AddressTo,
	})
	if err != nil {
		log.Printf("ERROR: shipping rates for store %s: %v", input.StoreID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch shipping rates",
			"details": providerMessage(err),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "rates": rates})
}
