package repositories

import "crm/internal/models"

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	GetAll() ([]models.Customer, error)
	GetByID(id string) (*models.Customer, error)
	GetByUserID(userID string) (*models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
	// Delete removes the customer and nulls the customer reference on
	// any orders that point at it.
	Delete(id string) error
}
