package domain

import "time"

// Item is a catalog entry. Name is the canonical product name that
// extracted order lines are corrected against.
type Item struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"uniqueIndex;not null"`
	Category          string    `json:"category"`
	Price             float64   `json:"price"`
	Quantity          int       `json:"quantity"`
	WarehouseLocation string    `json:"warehouse_location"`
	StockAlertLevel   int       `json:"stock_alert_level"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
