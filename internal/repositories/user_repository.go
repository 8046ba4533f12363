package repositories

import "crm/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(user *models.User) error
	// CreateWithCustomer creates a login account and its linked customer
	// profile atomically (registration path).
	CreateWithCustomer(user *models.User, customer *models.Customer) error
	GetByUsername(username string) (*models.User, error)
	GetByID(id string) (*models.User, error)
	// Delete removes the user and cascades to its linked customer.
	Delete(id string) error
}
