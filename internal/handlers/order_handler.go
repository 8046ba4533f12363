package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"crm/internal/repositories"
	"crm/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderService    *services.OrderService
	customerService *services.CustomerService
	productService  *services.ProductService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService, customerService *services.CustomerService, productService *services.ProductService) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		customerService: customerService,
		productService:  productService,
	}
}

// RegisterRoutes registers the order routes; all of them are admin
// territory.
func (h *OrderHandler) RegisterRoutes(router fiber.Router, authRequired, adminOnly fiber.Handler) {
	router.Get("/create_order/:customer_id", authRequired, adminOnly, h.ShowCreateOrders)
	router.Post("/create_order/:customer_id", authRequired, adminOnly, h.HandleCreateOrders)
	router.Get("/update_order/:order_id", authRequired, adminOnly, h.ShowUpdateOrder)
	router.Post("/update_order/:order_id", authRequired, adminOnly, h.HandleUpdateOrder)
	router.Get("/delete_order/:order_id", authRequired, adminOnly, h.ShowDeleteOrder)
	router.Post("/delete_order/:order_id", authRequired, adminOnly, h.HandleDeleteOrder)
}

// CreateOrdersRequest is the batch order form: up to five rows, blank
// rows allowed.
type CreateOrdersRequest struct {
	Orders []services.OrderLine `json:"orders"`
}

// ShowCreateOrders returns the batch form context: the customer plus
// the product catalog to pick from.
func (h *OrderHandler) ShowCreateOrders(c *fiber.Ctx) error {
	customerID := c.Params("customer_id")
	customer, err := h.customerService.GetCustomerByID(customerID)
	if err != nil {
		return customerError(c, customerID, err)
	}
	products, err := h.productService.GetAllProducts()
	if err != nil {
		log.Printf("Error getting products for order form: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load order form",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"customer": customer,
		"products": products,
		"rows":     services.MaxOrderLines,
	})
}

// HandleCreateOrders creates up to five orders for the customer in one
// transaction and redirects home.
func (h *OrderHandler) HandleCreateOrders(c *fiber.Ctx) error {
	customerID := c.Params("customer_id")
	var req CreateOrdersRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order batch: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := h.orderService.CreateOrdersForCustomer(customerID, req.Orders); err != nil {
		log.Printf("Error creating orders for customer %s: %v", customerID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order creation failed",
				"error":   err.Error(),
			})
		}
		if strings.Contains(err.Error(), "invalid order status") || strings.Contains(err.Error(), "at most") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Order creation failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create orders",
			"error":   err.Error(),
		})
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// UpdateOrderRequest is the order edit form.
type UpdateOrderRequest struct {
	ProductID string `json:"product_id" form:"product_id"`
	Status    string `json:"status" form:"status"`
	Note      string `json:"note" form:"note"`
}

// ShowUpdateOrder returns the order as the edit form context.
func (h *OrderHandler) ShowUpdateOrder(c *fiber.Ctx) error {
	orderID := c.Params("order_id")
	order, err := h.orderService.GetOrderByID(orderID)
	if err != nil {
		return orderError(c, orderID, err)
	}
	return c.JSON(fiber.Map{"order": order})
}

// HandleUpdateOrder mutates an order's product, status and note.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	orderID := c.Params("order_id")
	var req UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing order update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if _, err := h.orderService.UpdateOrder(orderID, req.ProductID, req.Status, req.Note); err != nil {
		log.Printf("Error updating order %s: %v", orderID, err)
		if errors.Is(err, repositories.ErrNotFound) {
			return orderError(c, orderID, err)
		}
		if strings.Contains(err.Error(), "invalid order status") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Order update failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update order",
			"error":   err.Error(),
		})
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// ShowDeleteOrder returns the order as the confirmation context; the
// actual delete requires the POST.
func (h *OrderHandler) ShowDeleteOrder(c *fiber.Ctx) error {
	orderID := c.Params("order_id")
	order, err := h.orderService.GetOrderByID(orderID)
	if err != nil {
		return orderError(c, orderID, err)
	}
	return c.JSON(fiber.Map{"order_delete": order})
}

// HandleDeleteOrder deletes the order and redirects home.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	orderID := c.Params("order_id")
	if err := h.orderService.DeleteOrder(orderID); err != nil {
		return orderError(c, orderID, err)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func orderError(c *fiber.Ctx, orderID string, err error) error {
	log.Printf("Error on order %s: %v", orderID, err)
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Order with ID %s not found", orderID),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not process order",
		"error":   err.Error(),
	})
}
