package services_test

import (
	"errors"
	"testing"

	"crm/internal/models"
	"crm/internal/repositories"
	"crm/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of services.OrderEventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishOrderEvent(action string, order *models.Order) error {
	args := m.Called(action, order)
	return args.Error(0)
}

func setupOrderService(t *testing.T) (*services.OrderService, *repositories.MockOrderRepository, *models.Customer, *models.Product, *MockEventPublisher) {
	t.Helper()

	orderRepo := repositories.NewMockOrderRepository()
	productRepo := repositories.NewMockProductRepository()
	customerRepo := repositories.NewMockCustomerRepository()
	publisher := new(MockEventPublisher)

	customer := &models.Customer{Name: "Jane Doe"}
	assert.NoError(t, customerRepo.Create(customer))
	product := &models.Product{Name: "Monstera", Price: 25.00, Category: models.CategoryIndoor}
	assert.NoError(t, productRepo.Create(product))

	svc := services.NewOrderService(orderRepo, productRepo, customerRepo, publisher)
	return svc, orderRepo, customer, product, publisher
}

func TestOrderService_CreateOrdersForCustomer_SkipsBlankRows(t *testing.T) {
	svc, orderRepo, customer, product, publisher := setupOrderService(t)

	publisher.On("PublishOrderEvent", "order.created", mock.AnythingOfType("*models.Order")).Return(nil).Twice()

	// Two populated rows out of five slots
	lines := []services.OrderLine{
		{ProductID: product.ID, Status: models.StatusPending},
		{ProductID: product.ID, Status: models.StatusDelivered},
		{}, {}, {},
	}
	created, err := svc.CreateOrdersForCustomer(customer.ID, lines)
	assert.NoError(t, err)
	assert.Len(t, created, 2)
	for _, order := range created {
		assert.NotNil(t, order.CustomerID)
		assert.Equal(t, customer.ID, *order.CustomerID)
		assert.NotNil(t, order.ProductID)
		assert.Equal(t, product.ID, *order.ProductID)
	}

	stored, err := orderRepo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, stored, 2)
	publisher.AssertExpectations(t)
}

func TestOrderService_CreateOrdersForCustomer_RejectsInvalidStatus(t *testing.T) {
	svc, orderRepo, customer, product, _ := setupOrderService(t)

	lines := []services.OrderLine{
		{ProductID: product.ID, Status: "Shipped"},
	}
	_, err := svc.CreateOrdersForCustomer(customer.ID, lines)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")

	// Nothing was written
	stored, err := orderRepo.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, stored)
}

func TestOrderService_CreateOrdersForCustomer_RejectsTooManyRows(t *testing.T) {
	svc, _, customer, product, _ := setupOrderService(t)

	lines := make([]services.OrderLine, services.MaxOrderLines+1)
	for i := range lines {
		lines[i] = services.OrderLine{ProductID: product.ID, Status: models.StatusPending}
	}
	_, err := svc.CreateOrdersForCustomer(customer.ID, lines)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at most")
}

func TestOrderService_CreateOrdersForCustomer_UnknownCustomerAndProduct(t *testing.T) {
	svc, _, _, product, _ := setupOrderService(t)

	_, err := svc.CreateOrdersForCustomer("missing", []services.OrderLine{
		{ProductID: product.ID, Status: models.StatusPending},
	})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	svc2, _, customer, _, _ := setupOrderService(t)
	_, err = svc2.CreateOrdersForCustomer(customer.ID, []services.OrderLine{
		{ProductID: "missing", Status: models.StatusPending},
	})
	assert.Error(t, err)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestOrderService_UpdateOrder(t *testing.T) {
	svc, orderRepo, customer, product, publisher := setupOrderService(t)

	productID := product.ID
	order := &models.Order{CustomerID: &customer.ID, ProductID: &productID, Status: models.StatusPending}
	assert.NoError(t, orderRepo.Create(order))

	publisher.On("PublishOrderEvent", "order.updated", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	updated, err := svc.UpdateOrder(order.ID, product.ID, models.StatusOutForDelivery, "leave at the door")
	assert.NoError(t, err)
	assert.Equal(t, models.StatusOutForDelivery, updated.Status)
	assert.Equal(t, "leave at the door", updated.Note)
	publisher.AssertExpectations(t)

	// Status outside the closed set is rejected before any write
	_, err = svc.UpdateOrder(order.ID, product.ID, "Cancelled", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")

	// Unknown order
	_, err = svc.UpdateOrder("missing", product.ID, models.StatusPending, "")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestOrderService_DeleteOrder(t *testing.T) {
	svc, orderRepo, customer, product, publisher := setupOrderService(t)

	productID := product.ID
	order := &models.Order{CustomerID: &customer.ID, ProductID: &productID, Status: models.StatusPending}
	assert.NoError(t, orderRepo.Create(order))

	publisher.On("PublishOrderEvent", "order.deleted", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	assert.NoError(t, svc.DeleteOrder(order.ID))
	_, err := orderRepo.GetByID(order.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	publisher.AssertExpectations(t)

	err = svc.DeleteOrder("missing")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestOrderService_NilPublisherIsSafe(t *testing.T) {
	orderRepo := repositories.NewMockOrderRepository()
	productRepo := repositories.NewMockProductRepository()
	customerRepo := repositories.NewMockCustomerRepository()

	customer := &models.Customer{Name: "Jane Doe"}
	assert.NoError(t, customerRepo.Create(customer))
	product := &models.Product{Name: "Fern", Price: 10, Category: models.CategoryIndoor}
	assert.NoError(t, productRepo.Create(product))

	svc := services.NewOrderService(orderRepo, productRepo, customerRepo, nil)
	created, err := svc.CreateOrdersForCustomer(customer.ID, []services.OrderLine{
		{ProductID: product.ID, Status: models.StatusPending},
	})
	assert.NoError(t, err)
	assert.Len(t, created, 1)
}

func TestComputeStats(t *testing.T) {
	orders := []models.Order{
		{Status: models.StatusPending},
		{Status: models.StatusPending},
		{Status: models.StatusDelivered},
		{Status: models.StatusDelivered},
		{Status: models.StatusOutForDelivery},
	}
	stats := services.ComputeStats(orders)
	assert.Equal(t, 5, stats.TotalOrders)
	assert.Equal(t, 2, stats.Delivered)
	assert.Equal(t, 2, stats.Pending)

	empty := services.ComputeStats(nil)
	assert.Equal(t, 0, empty.TotalOrders)
	assert.Equal(t, 0, empty.Delivered)
	assert.Equal(t, 0, empty.Pending)
}
