package repository

import (
	"time"

	"github.com/KumarShresth7/EmailAutomation/internal/order/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormOrderRepository implements OrderRepository using GORM
type gormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM-based OrderRepository
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = time.Now()
	return r.db.Create(order).Error
}

func (r *gormOrderRepository) FindByID(id string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.Where("id = ?", id).First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) FindAll() ([]*domain.Order, error) {
	var orders []*domain.Order
	err := r.db.Order("date DESC, time DESC").Find(&orders).Error
	return orders, err
}

func (r *gormOrderRepository) FindLatestByEmail(email string) (*domain.Order, error) {
	var order domain.Order
	err := r.db.Where("email = ?", email).
		Order("date DESC, time DESC").
		First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// FindDuplicate filters candidates on date >= sinceDate and
// time >= sinceTime as two separate comparisons. This mirrors the
// original store query and is deliberately not a combined-timestamp
// check; see DESIGN.md.
func (r *gormOrderRepository) FindDuplicate(email string, lines []domain.Line, sinceDate, sinceTime string) (*domain.Order, error) {
	var candidates []*domain.Order
	err := r.db.Where("email = ? AND date >= ? AND time >= ?", email, sinceDate, sinceTime).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	for _, candidate := range candidates {
		if domain.SameLines(candidate.Products, lines) {
			return candidate, nil
		}
	}
	return nil, nil
}

func (r *gormOrderRepository) FindSince(date string) ([]*domain.Order, error) {
	var orders []*domain.Order
	err := r.db.Where("date >= ?", date).Find(&orders).Error
	return orders, err
}

func (r *gormOrderRepository) ReplaceProducts(id string, lines []domain.Line) error {
	return r.db.Model(&domain.Order{}).Where("id = ?", id).
		Select("products", "updated_at").
		Updates(&domain.Order{Products: lines, UpdatedAt: time.Now()}).Error
}

func (r *gormOrderRepository) UpdateStatusByLink(orderLink string, status domain.Status) (*domain.Order, error) {
	var order domain.Order
	err := r.db.Where("order_link = ?", orderLink).First(&order).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	if err := r.db.Save(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
