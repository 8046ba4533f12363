package repositories

import "crm/internal/models"

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	// CreateBatch inserts every order in one transaction; either all
	// rows land or none do.
	CreateBatch(orders []*models.Order) error
	Update(order *models.Order) error
	Delete(id string) error
	// ListByCustomer returns the customer's orders restricted by the
	// filter. An empty filter returns them all.
	ListByCustomer(customerID string, filter models.OrderFilter) ([]models.Order, error)
}
