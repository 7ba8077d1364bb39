package domain

import "time"

// Status represents the fulfillment state of an order. The intake
// pipeline only ever writes StatusPending; the other transitions are
// driven through the dashboard API.
type Status string

const (
	StatusPending            Status = "pending fulfillment"
	StatusPartiallyFulfilled Status = "partially fulfilled"
	StatusFulfilled          Status = "fulfilled"
	StatusCancelled          Status = "cancelled"
)

// Modifiable reports whether an order in this status may still have its
// line items replaced by a change request.
func (s Status) Modifiable() bool {
	return s == StatusPending || s == StatusPartiallyFulfilled
}

// Line is a single (product, quantity) entry of an order. Quantity 0 is
// only meaningful inside a change request, where it removes the line.
type Line struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// Order is a persisted customer order. Date and Time are kept as two
// separate fields ("2006-01-02" / "15:04:05") because the duplicate
// window query compares them independently.
type Order struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email" gorm:"index"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Products  []Line    `json:"products" gorm:"serializer:json"`
	Status    Status    `json:"status" gorm:"default:pending fulfillment"`
	OrderLink string    `json:"orderLink"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SameLines reports whether two line-item lists are identical in order,
// names and quantities. Used for duplicate detection.
func SameLines(a, b []Line) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// Outcome is the resolution of one incoming order event.
type Outcome string

const (
	OutcomeNewOrder  Outcome = "new_order"
	OutcomeDuplicate Outcome = "duplicate_ignored"
	OutcomeModified  Outcome = "modification"
	OutcomeRejected  Outcome = "rejected"
)
