package repositories

import (
	"fmt"
	"sync"
	"time"

	"crm/internal/models"

	"github.com/google/uuid"
)

// MockCustomerRepository is an in-memory implementation of CustomerRepository.
type MockCustomerRepository struct {
	customers map[string]models.Customer
	mu        sync.RWMutex
}

// NewMockCustomerRepository creates a new instance of MockCustomerRepository.
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[string]models.Customer),
	}
}

// GetAll returns all customers.
func (r *MockCustomerRepository) GetAll() ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customerList := make([]models.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		customerList = append(customerList, customer)
	}
	return customerList, nil
}

// GetByID returns a customer by its ID.
func (r *MockCustomerRepository) GetByID(id string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer with ID %s: %w", id, ErrNotFound)
	}
	return &customer, nil
}

// GetByUserID returns the customer linked to a login account.
func (r *MockCustomerRepository) GetByUserID(userID string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, customer := range r.customers {
		if customer.UserID != nil && *customer.UserID == userID {
			c := customer
			return &c, nil
		}
	}
	return nil, fmt.Errorf("customer for user %s: %w", userID, ErrNotFound)
}

// Create adds a new customer.
func (r *MockCustomerRepository) Create(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if customer.ProfilePic == "" {
		customer.ProfilePic = models.DefaultProfilePic
	}
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()
	r.customers[customer.ID] = *customer
	return nil
}

// Update replaces an existing customer.
func (r *MockCustomerRepository) Update(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[customer.ID]; !ok {
		return fmt.Errorf("customer with ID %s: %w", customer.ID, ErrNotFound)
	}
	customer.UpdatedAt = time.Now()
	r.customers[customer.ID] = *customer
	return nil
}

// Delete removes a customer. The in-memory mock does not track orders,
// so nullification is the GORM repository's concern.
func (r *MockCustomerRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return fmt.Errorf("customer with ID %s: %w", id, ErrNotFound)
	}
	delete(r.customers, id)
	return nil
}
