package services

import (
	"fmt"
	"log"

	"crm/internal/models"
	"crm/internal/repositories"
)

// MaxOrderLines caps how many orders one batch submission may create.
const MaxOrderLines = 5

// OrderLine is one row of the batch order form: which product, and the
// initial delivery status. Blank rows are skipped, matching a form that
// renders five slots regardless of how many get filled in.
type OrderLine struct {
	ProductID string `json:"product_id"`
	Status    string `json:"status"`
}

func (l OrderLine) blank() bool {
	return l.ProductID == "" && l.Status == ""
}

// OrderStats are the dashboard aggregates over a collection of orders.
type OrderStats struct {
	TotalOrders int `json:"total_orders"`
	Delivered   int `json:"delivered"`
	Pending     int `json:"pending"`
}

// ComputeStats tallies the dashboard aggregates for a set of orders.
func ComputeStats(orders []models.Order) OrderStats {
	stats := OrderStats{TotalOrders: len(orders)}
	for _, order := range orders {
		switch order.Status {
		case models.StatusDelivered:
			stats.Delivered++
		case models.StatusPending:
			stats.Pending++
		}
	}
	return stats
}

// OrderEventPublisher pushes order lifecycle events to a broker. A nil
// publisher disables eventing; the request cycle never depends on it.
type OrderEventPublisher interface {
	PublishOrderEvent(action string, order *models.Order) error
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo    repositories.OrderRepository
	productRepo  repositories.ProductRepository
	customerRepo repositories.CustomerRepository
	publisher    OrderEventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, customerRepo repositories.CustomerRepository, publisher OrderEventPublisher) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		publisher:    publisher,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// OrdersForCustomer returns the customer's orders restricted by the
// filter; an empty filter returns them all.
func (s *OrderService) OrdersForCustomer(customerID string, filter models.OrderFilter) ([]models.Order, error) {
	return s.orderRepo.ListByCustomer(customerID, filter)
}

// CreateOrdersForCustomer validates a batch of up to MaxOrderLines form
// rows and creates one order per populated row, all in one transaction.
// Blank rows create nothing. Returns the created orders.
func (s *OrderService) CreateOrdersForCustomer(customerID string, lines []OrderLine) ([]models.Order, error) {
	if len(lines) > MaxOrderLines {
		return nil, fmt.Errorf("at most %d orders may be created at once", MaxOrderLines)
	}

	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}

	var orders []*models.Order
	for i, line := range lines {
		if line.blank() {
			continue
		}
		if !models.ValidStatus(line.Status) {
			return nil, fmt.Errorf("row %d: invalid order status: %s", i+1, line.Status)
		}
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		productID := product.ID
		orders = append(orders, &models.Order{
			CustomerID: &customer.ID,
			ProductID:  &productID,
			Status:     line.Status,
		})
	}

	if err := s.orderRepo.CreateBatch(orders); err != nil {
		return nil, err
	}

	created := make([]models.Order, 0, len(orders))
	for _, order := range orders {
		s.publish("order.created", order)
		created = append(created, *order)
	}
	return created, nil
}

// UpdateOrder mutates an order's product, status and note.
func (s *OrderService) UpdateOrder(id string, productID string, status string, note string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("invalid order status: %s", status)
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if productID != "" {
		product, err := s.productRepo.GetByID(productID)
		if err != nil {
			return nil, err
		}
		order.ProductID = &product.ID
	}
	order.Status = status
	order.Note = note

	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	s.publish("order.updated", order)
	return order, nil
}

// DeleteOrder removes an order for good.
func (s *OrderService) DeleteOrder(id string) error {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.orderRepo.Delete(id); err != nil {
		return err
	}
	s.publish("order.deleted", order)
	return nil
}

func (s *OrderService) publish(action string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(action, order); err != nil {
		log.Printf("Warning: failed to publish %s event for order %s: %v", action, order.ID, err)
	}
}
