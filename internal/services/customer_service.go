package services

import (
	"crm/internal/models"
	"crm/internal/repositories"
)

// CustomerService handles business logic related to customers.
type CustomerService struct {
	repo repositories.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository) *CustomerService {
	return &CustomerService{
		repo: repo,
	}
}

// GetAllCustomers retrieves all customers.
func (s *CustomerService) GetAllCustomers() ([]models.Customer, error) {
	return s.repo.GetAll()
}

// GetCustomerByID retrieves a single customer by its ID.
func (s *CustomerService) GetCustomerByID(id string) (*models.Customer, error) {
	return s.repo.GetByID(id)
}

// GetCustomerByUserID retrieves the customer profile linked to a login account.
func (s *CustomerService) GetCustomerByUserID(userID string) (*models.Customer, error) {
	return s.repo.GetByUserID(userID)
}

// CreateCustomer creates a customer with no linked login account
// (admin-created customers cannot sign in).
func (s *CustomerService) CreateCustomer(customer *models.Customer) error {
	customer.UserID = nil
	return s.repo.Create(customer)
}

// UpdateCustomer updates an existing customer.
func (s *CustomerService) UpdateCustomer(customer *models.Customer) error {
	return s.repo.Update(customer)
}

// DeleteCustomer deletes a customer; orders referencing it survive with
// the reference nulled.
func (s *CustomerService) DeleteCustomer(id string) error {
	return s.repo.Delete(id)
}
