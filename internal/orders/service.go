// Package orders sequences order submission and status lookups across the
// order store, the fulfillment provider and the mail transport.
package orders

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/01moynul/fitshop-api/internal/database"
	"github.com/01moynul/fitshop-api/internal/email"
	"github.com/01moynul/fitshop-api/internal/models"
	"github.com/01moynul/fitshop-api/internal/printify"
	"github.com/google/uuid"
)

// Store is the order persistence used by the service.
type Store interface {
	Save(ctx context.Context, q database.Querier, o *models.Order) error
	SetProviderOrderID(ctx context.Context, q database.Querier, orderNumber, providerOrderID string) error
	FindByNumberAndEmail(ctx context.Context, q database.Querier, orderNumber, email string) (*models.Order, error)
}

// Fulfillment is the provider side of the pipeline.
type Fulfillment interface {
	SubmitOrder(ctx context.Context, storeID, orderNumber string, req printify.SubmitRequest) (*printify.SubmitResult, error)
	GetOrder(ctx context.Context, storeID, providerOrderID string) (*printify.OrderDetails, error)
}

// Composer renders a confirmation mail.
type Composer interface {
	Compose(storeID, toEmail, orderID string, summary email.OrderSummary) (*email.Mail, error)
}

// SubmitInput is a paid order from the storefront.
type SubmitInput struct {
	StoreID         string
	Email           string
	TotalPrice      int64
	Currency        string
	ShippingMethod  models.ShippingCode
	ShippingCost    int64
	Address         models.Address
	Items           []models.LineItem
	StripePaymentID string
}

// SubmitResult is a successful submission. EmailErr is set when the
// confirmation could not be sent; the order itself still succeeded.
type SubmitResult struct {
	OrderID         string
	ProviderOrderID string
	EmailErr        error
}

// Service is the order orchestrator.
type Service struct {
	Store       Store
	Fulfillment Fulfillment
	Composer    Composer
	Mailer      email.Sender
	MailTimeout time.Duration

	// NewOrderNumber is replaceable in tests.
	NewOrderNumber func() string
}

func NewService(store Store, fulfillment Fulfillment, composer Composer, mailer email.Sender, mailTimeout time.Duration) *Service {
	return &Service{
		Store:          store,
		Fulfillment:    fulfillment,
		Composer:       composer,
		Mailer:         mailer,
		MailTimeout:    mailTimeout,
		NewOrderNumber: NewOrderNumber,
	}
}

// NewOrderNumber returns a random, non-guessable, customer-facing order number.
func NewOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
}

// Submit persists, submits, links and confirms an order, strictly in that order.
// No database transaction spans the provider call.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	// 1. --- Generate Order Number ---
	orderNumber := s.NewOrderNumber()
	in.Currency = strings.ToUpper(in.Currency)

	// 2. --- Persist Order ---
	order := &models.Order{
		OrderNumber:     orderNumber,
		StoreID:         in.StoreID,
		Email:           in.Email,
		TotalPrice:      in.TotalPrice,
		Currency:        in.Currency,
		ShippingMethod:  string(in.ShippingMethod),
		ShippingCost:    in.ShippingCost,
		ShippingAddress: in.Address,
		Items:           in.Items,
		StripePaymentID: in.StripePaymentID,
		PaymentStatus:   models.PaymentStatusPaid,
		OrderStatus:     models.OrderStatusPending,
	}
	if err := s.Store.Save(ctx, nil, order); err != nil {
		log.Printf("ERROR: Failed to save order %s for store %s: %v", orderNumber, in.StoreID, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	// 3. --- Submit To Provider ---
	submitted, err := s.Fulfillment.SubmitOrder(ctx, in.StoreID, orderNumber, printify.SubmitRequest{
		Email:          in.Email,
		ShippingMethod: in.ShippingMethod,
		Address:        in.Address,
		LineItems:      in.Items,
	})
	if err != nil {
		log.Printf("ERROR: Order %s saved but provider submission failed: %v", orderNumber, err)
		return nil, fmt.Errorf("%w: %w", ErrSubmission, err)
	}

	// 4. --- Link Provider Order ---
	if err := s.link(ctx, orderNumber, submitted.ID); err != nil {
		log.Printf("ERROR: Order %s accepted by provider as %s but not linked: %v", orderNumber, submitted.ID, err)
		return nil, &UnlinkedError{OrderID: orderNumber, ProviderOrderID: submitted.ID, Err: err}
	}

	result := &SubmitResult{OrderID: orderNumber, ProviderOrderID: submitted.ID}

	// 5. --- Confirmation Email (non-fatal) ---
	if err := s.sendConfirmation(ctx, orderNumber, in); err != nil {
		log.Printf("ERROR: Failed to send confirmation for order %s to %s: %v", orderNumber, in.Email, err)
		result.EmailErr = err
	}

	return result, nil
}

// link records the provider id, retrying the single update once.
func (s *Service) link(ctx context.Context, orderNumber, providerOrderID string) error {
	err := s.Store.SetProviderOrderID(ctx, nil, orderNumber, providerOrderID)
	if err == nil {
		return nil
	}
	log.Printf("WARNING: Linking order %s failed, retrying: %v", orderNumber, err)
	return s.Store.SetProviderOrderID(ctx, nil, orderNumber, providerOrderID)
}

func (s *Service) sendConfirmation(ctx context.Context, orderNumber string, in SubmitInput) error {
	summary := email.OrderSummary{
		Address:        in.Address,
		ShippingMethod: string(in.ShippingMethod),
		TotalPrice:     in.TotalPrice,
		Currency:       in.Currency,
	}
	for _, item := range in.Items {
		summary.Items = append(summary.Items, email.SummaryItem{
			Title:        item.Title,
			VariantLabel: item.VariantLabel,
			Quantity:     item.Quantity,
			Price:        item.Price,
		})
	}

	mail, err := s.Composer.Compose(in.StoreID, in.Email, orderNumber, summary)
	if err != nil {
		return err
	}

	if s.MailTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.MailTimeout)
		defer cancel()
	}
	return s.Mailer.Send(ctx, in.StoreID, mail)
}
