package repository

import "github.com/KumarShresth7/EmailAutomation/internal/inventory/domain"

// InventoryRepository defines the interface for catalog data access
type InventoryRepository interface {
	// FindAll returns the whole catalog
	FindAll() ([]*domain.Item, error)

	// FindByID finds an item by ID, (nil, nil) when absent
	FindByID(id string) (*domain.Item, error)

	// FindByName finds an item by its canonical name, (nil, nil) when absent
	FindByName(name string) (*domain.Item, error)

	// Names returns the set of canonical product names
	Names() ([]string, error)

	// Create inserts a new item
	Create(item *domain.Item) error

	// Update saves changes to an existing item
	Update(item *domain.Item) error

	// Delete removes an item by ID
	Delete(id string) error
}
