package handlers

import (
	"log"

	"crm/internal/middleware"
	"crm/internal/models"
	"crm/internal/services"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler serves the role-routed home page and the customer
// home page aggregates.
type DashboardHandler struct {
	customerService *services.CustomerService
	orderService    *services.OrderService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(customerService *services.CustomerService, orderService *services.OrderService) *DashboardHandler {
	return &DashboardHandler{
		customerService: customerService,
		orderService:    orderService,
	}
}

// RegisterRoutes registers the dashboard routes.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router, authRequired fiber.Handler, customerOnly fiber.Handler) {
	router.Get("/", authRequired, h.HandleHome)
	router.Get("/user", authRequired, customerOnly, h.HandleUserHome)
}

// HandleHome is the admin dashboard: every customer, every order, and
// the delivery tallies. Customer-role callers are routed to their own
// home page instead.
func (h *DashboardHandler) HandleHome(c *fiber.Ctx) error {
	if middleware.Role(c) != models.RoleAdmin {
		return c.Redirect("/user", fiber.StatusSeeOther)
	}

	customers, err := h.customerService.GetAllCustomers()
	if err != nil {
		log.Printf("Error getting customers for dashboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load dashboard",
			"error":   err.Error(),
		})
	}
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		log.Printf("Error getting orders for dashboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load dashboard",
			"error":   err.Error(),
		})
	}

	stats := services.ComputeStats(orders)
	return c.JSON(fiber.Map{
		"customers":       customers,
		"orders":          orders,
		"total_customers": len(customers),
		"total_orders":    stats.TotalOrders,
		"delivered":       stats.Delivered,
		"pending":         stats.Pending,
	})
}

// HandleUserHome serves the caller's own orders and tallies.
func (h *DashboardHandler) HandleUserHome(c *fiber.Ctx) error {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No customer profile linked to this account",
		})
	}

	orders, err := h.orderService.OrdersForCustomer(customerID, models.OrderFilter{})
	if err != nil {
		log.Printf("Error getting orders for customer %s: %v", customerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not load orders",
			"error":   err.Error(),
		})
	}

	stats := services.ComputeStats(orders)
	return c.JSON(fiber.Map{
		"orders":       orders,
		"total_orders": stats.TotalOrders,
		"delivered":    stats.Delivered,
		"pending":      stats.Pending,
	})
}
