package service

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/panchito04/BackHogEle/internal/models"
	"github.com/panchito04/BackHogEle/internal/repository"
)

// CustomerService manages customers
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{customerRepo: repository.NewCustomerRepository(db)}
}

// ListCustomers returns all customers
func (s *CustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customerRepo.List(ctx)
}

// GetCustomer returns one customer
func (s *CustomerService) GetCustomer(ctx context.Context, id uint) (*models.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

// CreateCustomer validates and stores a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	if customer.Name == "" {
		return Invalidf("name is required")
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return errors.Wrap(err, "failed to create customer")
	}
	return nil
}
