package repositories

import (
	"fmt"
	"sync"
	"time"

	"crm/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
type MockOrderRepository struct {
	orders map[string]models.Order
	seq    []string // insertion order, so listings stay deterministic
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAll returns all orders in insertion order.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.seq))
	for _, id := range r.seq {
		orderList = append(orderList, r.orders[id])
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.insert(order)
	return nil
}

// CreateBatch adds every order; the in-memory map needs no rollback
// since inserts cannot fail here.
func (r *MockOrderRepository) CreateBatch(orders []*models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, order := range orders {
		r.insert(order)
	}
	return nil
}

func (r *MockOrderRepository) insert(order *models.Order) {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	r.seq = append(r.seq, order.ID)
}

// Update replaces an existing order.
func (r *MockOrderRepository) Update(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; !ok {
		return fmt.Errorf("order with ID %s: %w", order.ID, ErrNotFound)
	}
	order.UpdatedAt = time.Now()
	r.orders[order.ID] = *order
	return nil
}

// Delete removes an order.
func (r *MockOrderRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	delete(r.orders, id)
	for i, sid := range r.seq {
		if sid == id {
			r.seq = append(r.seq[:i], r.seq[i+1:]...)
			break
		}
	}
	return nil
}

// ListByCustomer filters the customer's orders in memory.
func (r *MockOrderRepository) ListByCustomer(customerID string, filter models.OrderFilter) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []models.Order
	for _, id := range r.seq {
		order := r.orders[id]
		if order.CustomerID == nil || *order.CustomerID != customerID {
			continue
		}
		if filter.Status != "" && order.Status != filter.Status {
			continue
		}
		if filter.ProductID != "" && (order.ProductID == nil || *order.ProductID != filter.ProductID) {
			continue
		}
		if filter.DateFrom != nil && order.CreatedAt.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && order.CreatedAt.After(*filter.DateTo) {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}
