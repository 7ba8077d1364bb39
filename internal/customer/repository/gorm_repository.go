package repository

import (
	"time"

	"github.com/KumarShresth7/EmailAutomation/internal/customer/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormCustomerRepository implements CustomerRepository using GORM
type gormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GORM-based CustomerRepository
func NewGormCustomerRepository(db *gorm.DB) CustomerRepository {
	return &gormCustomerRepository{db: db}
}

func (r *gormCustomerRepository) FindByEmail(email string) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.Where("email = ?", email).First(&customer).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *gormCustomerRepository) FindAll() ([]*domain.Customer, error) {
	var customers []*domain.Customer
	err := r.db.Find(&customers).Error
	return customers, err
}

func (r *gormCustomerRepository) Create(customer *domain.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	customer.CreatedAt = time.Now()
	return r.db.Create(customer).Error
}

func (r *gormCustomerRepository) AppendOrder(email, orderID string) error {
	customer, err := r.FindByEmail(email)
	if err != nil {
		return err
	}
	if customer == nil {
		return gorm.ErrRecordNotFound
	}
	customer.PastOrders = append(customer.PastOrders, orderID)
	return r.db.Model(&domain.Customer{}).Where("email = ?", email).
		Select("past_orders").
		Updates(&domain.Customer{PastOrders: customer.PastOrders}).Error
}
