package usecase

import (
	"context"

	"github.com/KumarShresth7/EmailAutomation/internal/order/domain"
)

// OrderUsecase defines the interface for order business logic
type OrderUsecase interface {
	// ProcessNewOrder runs a classified order email through extraction,
	// validation, correction, customer resolution, duplicate suppression
	// and persistence. The returned outcome says how the event resolved;
	// a non-nil error means a store failure dropped the event.
	ProcessNewOrder(ctx context.Context, email, date, timeOfDay, text string) (domain.Outcome, error)

	// ProcessOrderChange merges a change request into the sender's most
	// recent modifiable order, or falls through to ProcessNewOrder when
	// no such order exists.
	ProcessOrderChange(ctx context.Context, email, date, timeOfDay, text string) (domain.Outcome, error)

	// GetOrders returns all orders, newest first
	GetOrders() ([]*domain.Order, error)

	// GetOrderByID returns one order, (nil, nil) when absent
	GetOrderByID(id string) (*domain.Order, error)

	// UpdateStatus sets the status of the order carrying the given
	// fulfillment link. Moving an order to fulfilled sends the invoice.
	UpdateStatus(ctx context.Context, orderLink string, status domain.Status) (*domain.Order, error)
}
