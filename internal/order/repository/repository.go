package repository

import "github.com/KumarShresth7/EmailAutomation/internal/order/domain"

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	// Create inserts a new order
	Create(order *domain.Order) error

	// FindByID finds an order by its ID, (nil, nil) when absent
	FindByID(id string) (*domain.Order, error)

	// FindAll returns all orders, newest first
	FindAll() ([]*domain.Order, error)

	// FindLatestByEmail returns the most recent order for a sender,
	// ordered by (date, time) descending, (nil, nil) when none exists
	FindLatestByEmail(email string) (*domain.Order, error)

	// FindDuplicate returns an order with the same sender and identical
	// line items whose date and time fields each lie past the given
	// thresholds. The two fields are compared independently, matching
	// the store contract of the duplicate window check.
	FindDuplicate(email string, lines []domain.Line, sinceDate, sinceTime string) (*domain.Order, error)

	// FindSince returns orders whose date is on or after the given date
	FindSince(date string) ([]*domain.Order, error)

	// ReplaceProducts overwrites an order's line items in place
	ReplaceProducts(id string, lines []domain.Line) error

	// UpdateStatusByLink sets the status of the order carrying the given
	// fulfillment link, returning (nil, nil) when no order matches
	UpdateStatusByLink(orderLink string, status domain.Status) (*domain.Order, error)
}
