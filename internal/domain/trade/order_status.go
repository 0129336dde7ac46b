package trade

import (
	"fmt"

	"github.com/shoplite/backend/internal/domain/shared"
)

// OrderStatus represents the lifecycle state shared by purchase orders,
// sales orders and return orders. CONFIRMED is terminal.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
)

// IsValid returns true if the status is a known value
func (s OrderStatus) IsValid() bool {
	return s == OrderStatusPending || s == OrderStatusConfirmed
}

// String returns the string representation
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo returns true for the only legal transition,
// PENDING to CONFIRMED
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	return s == OrderStatusPending && target == OrderStatusConfirmed
}

// NewOrderAlreadyConfirmedError reports a mutation against a confirmed
// order
func NewOrderAlreadyConfirmedError(orderNumber string) *shared.DomainError {
	return shared.NewDomainError("ORDER_ALREADY_CONFIRMED",
		fmt.Sprintf("Order %s is already confirmed", orderNumber))
}
