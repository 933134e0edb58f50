package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/01moynul/fitshop-api/internal/payments"
	"github.com/gin-gonic/gin"
)

type PaymentIntentInput struct {
	StoreID  string `json:"storeId" binding:"required"`
	Amount   int64  `json:"amount" binding:"required,gt=0"`
	Currency string `json:"currency" binding:"required,len=3"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// CreatePaymentIntent starts a Stripe payment with the store's own secret.
func (h *Handlers) CreatePaymentIntent(c *gin.Context) {
	var input PaymentIntentInput
	if !bindJSON(c, &input) {
		return
	}

	intent, err := h.Payments.CreateIntent(c.Request.Context(), input.StoreID, input.Amount, input.Currency, input.Email)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrNotConfigured):
			log.Printf("ERROR: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment is not configured for this store"})
		case errors.Is(err, payments.ErrInvalidAmount):
			badRequest(c, "amount must be greater than 0")
		default:
			log.Printf("ERROR: payment intent for store %s: %v", input.StoreID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create payment intent"})
		}
		return
	}
	c.JSON(http.StatusOK, intent)
}
