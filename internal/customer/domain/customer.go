package domain

import "time"

// Customer is a persisted customer profile, keyed by email. PastOrders
// holds the IDs of orders accepted for this customer, oldest first.
type Customer struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name"`
	Email      string    `json:"email" gorm:"uniqueIndex;not null"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	PastOrders []string  `json:"past_orders" gorm:"serializer:json"`
	CreatedAt  time.Time `json:"created_at"`
}

// Details is the inline customer profile carried by an extracted order.
// All four fields are required to create a new customer record.
type Details struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Complete reports whether every profile field is present.
func (d Details) Complete() bool {
	return d.Name != "" && d.Email != "" && d.Phone != "" && d.Address != ""
}
