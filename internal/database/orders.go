package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/01moynul/fitshop-api/internal/models"
	"github.com/jmoiron/sqlx"
)

const orderColumns = `
	id, order_number, store_id, email, total_price, currency, shipping_method, shipping_cost,
	shipping_address, items, stripe_payment_id, payment_status, order_status, printify_order_id,
	created_at, updated_at`

// OrderStore persists orders keyed by their generated order number.
type OrderStore struct {
	DB *sqlx.DB
}

func NewOrderStore(db *sqlx.DB) *OrderStore {
	return &OrderStore{DB: db}
}

// Save inserts a new order row and sets its ID.
func (s *OrderStore) Save(ctx context.Context, q Querier, o *models.Order) error {
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = now
	o.Email = strings.ToLower(strings.TrimSpace(o.Email))

	query := `
		INSERT INTO orders
		(order_number, store_id, email, total_price, currency, shipping_method, shipping_cost,
		shipping_address, items, stripe_payment_id, payment_status, order_status, printify_order_id,
		created_at, updated_at)
		VALUES
		(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	args := []interface{}{
		o.OrderNumber,
		o.StoreID,
		o.Email,
		o.TotalPrice,
		o.Currency,
		o.ShippingMethod,
		o.ShippingCost,
		o.ShippingAddress,
		o.Items,
		o.StripePaymentID,
		o.PaymentStatus,
		o.OrderStatus,
		o.ProviderOrderID,
		o.CreatedAt,
		o.UpdatedAt,
	}

	result, err := pick(s.DB, q).ExecContext(ctx, query, args...)
	if err != nil {
		if IsDuplicate(err) {
			return fmt.Errorf("save order: %w", ErrDuplicate)
		}
		return fmt.Errorf("save order: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	o.ID = id
	return nil
}

// SetProviderOrderID links the order to the provider's id. A link, once set,
// is never replaced: the update only matches unlinked rows or the same id.
func (s *OrderStore) SetProviderOrderID(ctx context.Context, q Querier, orderNumber, providerOrderID string) error {
	conn := pick(s.DB, q)
	query := `
		UPDATE orders
		SET printify_order_id = ?, updated_at = ?
		WHERE order_number = ? AND (printify_order_id IS NULL OR printify_order_id = ?)`

	result, err := conn.ExecContext(ctx, query, providerOrderID, time.Now().UTC(), orderNumber, providerOrderID)
	if err != nil {
		return fmt.Errorf("link order: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("link order: %w", err)
	}
	if n > 0 {
		return nil
	}

	// MySQL reports 0 affected rows when the value is unchanged, so check what is stored.
	var current sql.NullString
	err = conn.QueryRowxContext(ctx, "SELECT printify_order_id FROM orders WHERE order_number = ?", orderNumber).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("link order: %w", err)
	}
	if current.Valid && current.String == providerOrderID {
		return nil
	}
	return fmt.Errorf("link order: order %s already linked to %s", orderNumber, current.String)
}

// FindByNumberAndEmail returns the order only when both values match.
func (s *OrderStore) FindByNumberAndEmail(ctx context.Context, q Querier, orderNumber, email string) (*models.Order, error) {
	var o models.Order
	query := "SELECT " + orderColumns + " FROM orders WHERE order_number = ? AND email = ?"

	err := pick(s.DB, q).GetContext(ctx, &o, query, orderNumber, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &o, nil
}
