package repository

import (
	"time"

	"github.com/KumarShresth7/EmailAutomation/internal/inventory/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormInventoryRepository implements InventoryRepository using GORM
type gormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GORM-based InventoryRepository
func NewGormInventoryRepository(db *gorm.DB) InventoryRepository {
	return &gormInventoryRepository{db: db}
}

func (r *gormInventoryRepository) FindAll() ([]*domain.Item, error) {
	var items []*domain.Item
	err := r.db.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *gormInventoryRepository) FindByID(id string) (*domain.Item, error) {
	var item domain.Item
	err := r.db.Where("id = ?", id).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormInventoryRepository) FindByName(name string) (*domain.Item, error) {
	var item domain.Item
	err := r.db.Where("name = ?", name).First(&item).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormInventoryRepository) Names() ([]string, error) {
	var names []string
	err := r.db.Model(&domain.Item{}).Pluck("name", &names).Error
	return names, err
}

func (r *gormInventoryRepository) Create(item *domain.Item) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	return r.db.Create(item).Error
}

func (r *gormInventoryRepository) Update(item *domain.Item) error {
	item.UpdatedAt = time.Now()
	return r.db.Save(item).Error
}

func (r *gormInventoryRepository) Delete(id string) error {
	return r.db.Delete(&domain.Item{}, "id = ?", id).Error
}
