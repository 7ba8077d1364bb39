package usecase

import (
	"errors"

	"github.com/KumarShresth7/EmailAutomation/internal/inventory/domain"
	"github.com/KumarShresth7/EmailAutomation/internal/inventory/repository"
)

// ErrNotFound is returned when the referenced item does not exist
var ErrNotFound = errors.New("item not found")

// InventoryUsecase defines the interface for catalog management
type InventoryUsecase interface {
	GetInventory() ([]*domain.Item, error)
	GetItemByID(id string) (*domain.Item, error)
	AddItem(item *domain.Item) error
	UpdateItem(id string, updates *domain.Item) (*domain.Item, error)
	DeleteItem(id string) error
}

type inventoryUsecase struct {
	inventory repository.InventoryRepository
}

// NewInventoryUsecase creates a new inventory usecase
func NewInventoryUsecase(inventory repository.InventoryRepository) InventoryUsecase {
	return &inventoryUsecase{inventory: inventory}
}

func (u *inventoryUsecase) GetInventory() ([]*domain.Item, error) {
	return u.inventory.FindAll()
}

func (u *inventoryUsecase) GetItemByID(id string) (*domain.Item, error) {
	return u.inventory.FindByID(id)
}

func (u *inventoryUsecase) AddItem(item *domain.Item) error {
	if item.Name == "" {
		return errors.New("item name is required")
	}
	return u.inventory.Create(item)
}

// UpdateItem applies non-zero fields of updates to the stored item.
func (u *inventoryUsecase) UpdateItem(id string, updates *domain.Item) (*domain.Item, error) {
	item, err := u.inventory.FindByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNotFound
	}

	if updates.Name != "" {
		item.Name = updates.Name
	}
	if updates.Category != "" {
		item.Category = updates.Category
	}
	if updates.Price != 0 {
		item.Price = updates.Price
	}
	if updates.Quantity != 0 {
		item.Quantity = updates.Quantity
	}
	if updates.WarehouseLocation != "" {
		item.WarehouseLocation = updates.WarehouseLocation
	}
	if updates.StockAlertLevel != 0 {
		item.StockAlertLevel = updates.StockAlertLevel
	}

	if err := u.inventory.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (u *inventoryUsecase) DeleteItem(id string) error {
	item, err := u.inventory.FindByID(id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrNotFound
	}
	return u.inventory.Delete(id)
}
