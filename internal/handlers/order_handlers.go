package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/01moynul/fitshop-api/internal/models"
	"github.com/01moynul/fitshop-api/internal/orders"
	"github.com/gin-gonic/gin"
)

type OrderCustomer struct {
	Email   string         `json:"email" binding:"required,email"`
	Address models.Address `json:"address"`
}

// OrderDetails is the cart as priced and paid on the storefront. Money is in minor units.
type OrderDetails struct {
	TotalPrice     int64               `json:"total_price" binding:"gte=0"`
	Currency       string              `json:"currency" binding:"required,len=3"`
	ShippingMethod models.ShippingCode `json:"shipping_method" binding:"required"`
	ShippingCost   int64               `json:"shipping_cost" binding:"gte=0"`
	Customer       OrderCustomer       `json:"customer"`
	LineItems      []models.LineItem   `json:"line_items" binding:"required,min=1,dive"`
}

type SubmitOrderInput struct {
	StoreID         string       `json:"storeId" binding:"required"`
	Order           OrderDetails `json:"order"`
	StripePaymentID string       `json:"stripe_payment_id" binding:"required"`
}

type OrderStatusInput struct {
	OrderID string `json:"orderId" binding:"required"`
	Email   string `json:"email" binding:"required"`
}

// --- Submit Order ---
// SubmitOrder persists a paid order, hands it to the provider and emails the customer.
func (h *Handlers) SubmitOrder(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input SubmitOrderInput
	if !bindJSON(c, &input) {
		return
	}
	if !input.Order.ShippingMethod.Valid() {
		badRequest(c, "order.shipping_method must be one of economy, standard, express, priority")
		return
	}

	// 2. --- Run the Pipeline ---
	result, err := h.Orders.Submit(c.Request.Context(), orders.SubmitInput{
		StoreID:         input.StoreID,
		Email:           input.Order.Customer.Email,
		TotalPrice:      input.Order.TotalPrice,
		Currency:        input.Order.Currency,
		ShippingMethod:  input.Order.ShippingMethod,
		ShippingCost:    input.Order.ShippingCost,
		Address:         input.Order.Customer.Address,
		Items:           input.Order.LineItems,
		StripePaymentID: input.StripePaymentID,
	})

	// 3. --- Map Errors ---
	if err != nil {
		var unlinked *orders.UnlinkedError
		switch {
		case errors.As(err, &unlinked):
			log.Printf("ERROR: order %s accepted by provider as %s but not linked: %v",
				unlinked.OrderID, unlinked.ProviderOrderID, unlinked.Err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":           "Order submitted but could not be linked",
				"code":            "order_unlinked",
				"orderId":         unlinked.OrderID,
				"providerOrderId": unlinked.ProviderOrderID,
			})
		case errors.Is(err, orders.ErrSubmission):
			log.Printf("ERROR: submit order for store %s: %v", input.StoreID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit order to fulfillment provider"})
		default:
			log.Printf("ERROR: save order for store %s: %v", input.StoreID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save order"})
		}
		return
	}

	if result.EmailErr != nil {
		log.Printf("WARN: confirmation email for order %s not sent: %v", result.OrderID, result.EmailErr)
	}

	// 4. --- Send Success Response ---
	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"orderId":         result.OrderID,
		"providerOrderId": result.ProviderOrderID,
	})
}

// --- Order Status ---
// OrderStatus needs both the order number and the email it was placed with.
func (h *Handlers) OrderStatus(c *gin.Context) {
	var input OrderStatusInput
	if !bindJSON(c, &input) {
		return
	}

	status, err := h.Orders.Status(c.Request.Context(), input.OrderID, input.Email)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		case errors.Is(err, orders.ErrNotLinked):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Order is not yet available for tracking"})
		default:
			log.Printf("ERROR: order status %s: %v", input.OrderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order status"})
		}
		return
	}

	c.JSON(http.StatusOK, status)
}
