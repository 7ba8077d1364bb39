package repository

import "github.com/KumarShresth7/EmailAutomation/internal/customer/domain"

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	// FindByEmail finds a customer by email, (nil, nil) when absent
	FindByEmail(email string) (*domain.Customer, error)

	// FindAll returns all customers
	FindAll() ([]*domain.Customer, error)

	// Create inserts a new customer
	Create(customer *domain.Customer) error

	// AppendOrder appends an order reference to the customer's history
	AppendOrder(email, orderID string) error
}
