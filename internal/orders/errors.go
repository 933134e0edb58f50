package orders

import (
	"errors"
	"fmt"
)

var (
	// ErrPersistence means the order row could not be written; nothing else ran.
	ErrPersistence = errors.New("failed to save order")
	// ErrSubmission means the provider did not accept the order. The local row remains, unlinked.
	ErrSubmission = errors.New("failed to submit order to fulfillment provider")
	// ErrUnlinked means the provider accepted the order but the local row could not record its id.
	ErrUnlinked = errors.New("order submitted but could not be linked")
	// ErrNotFound means no order matches the (order number, email) pair.
	ErrNotFound = errors.New("order not found")
	// ErrNotLinked means the order exists locally but was never accepted by the provider.
	ErrNotLinked = errors.New("order is not yet available for tracking")
	// ErrLookup covers store and provider failures during a status lookup.
	ErrLookup = errors.New("failed to fetch order status")
)

// UnlinkedError carries both ids so support can reconcile the order.
type UnlinkedError struct {
	OrderID         string
	ProviderOrderID string
	Err             error
}

func (e *UnlinkedError) Error() string {
	return fmt.Sprintf("order %s submitted as %s but not linked: %v", e.OrderID, e.ProviderOrderID, e.Err)
}

func (e *UnlinkedError) Unwrap() []error { return []error{ErrUnlinked, e.Err} }
