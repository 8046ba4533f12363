package handlers

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"crm/internal/middleware"
	"crm/internal/models"
	"crm/internal/repositories"
	"crm/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CustomerHandler handles HTTP requests for customer records: the
// caller's own profile, admin customer detail pages and admin-created
// customers.
type CustomerHandler struct {
	customerService *services.CustomerService
	orderService    *services.OrderService
	validate        *validator.Validate
	uploadDir       string
}

// NewCustomerHandler creates a new CustomerHandler. uploadDir is where
// profile pictures land on disk.
func NewCustomerHandler(customerService *services.CustomerService, orderService *services.OrderService, uploadDir string) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		orderService:    orderService,
		validate:        validator.New(),
		uploadDir:       uploadDir,
	}
}

// RegisterRoutes registers the customer routes.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router, authRequired, adminOnly, customerOnly fiber.Handler) {
	router.Get("/profile", authRequired, customerOnly, h.ShowProfile)
	router.Post("/profile", authRequired, customerOnly, h.HandleUpdateProfile)
	router.Get("/customer/:id", authRequired, adminOnly, h.HandleCustomerDetail)
	router.Post("/customer/:id", authRequired, adminOnly, h.HandleCustomerDetail)
	router.Get("/create_customer", authRequired, adminOnly, h.ShowCreateCustomer)
	router.Post("/create_customer", authRequired, adminOnly, h.HandleCreateCustomer)
}

// CustomerForm carries the editable customer fields.
type CustomerForm struct {
	Name  string `json:"name" form:"name" validate:"required,max=100"`
	Phone string `json:"phone" form:"phone" validate:"omitempty,max=50"`
	Email string `json:"email" form:"email" validate:"omitempty,email,max=50"`
}

// ShowProfile returns the caller's own customer record as the edit
// form context.
func (h *CustomerHandler) ShowProfile(c *fiber.Ctx) error {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No customer profile linked to this account",
		})
	}
	customer, err := h.customerService.GetCustomerByID(customerID)
	if err != nil {
		return customerError(c, customerID, err)
	}
	return c.JSON(fiber.Map{"customer": customer})
}

// HandleUpdateProfile updates the caller's own customer record. An
// optional multipart "profile_pic" file is saved under the upload dir
// with a fresh uuid name.
func (h *CustomerHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	customerID, ok := middleware.CustomerID(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "No customer profile linked to this account",
		})
	}
	customer, err := h.customerService.GetCustomerByID(customerID)
	if err != nil {
		return customerError(c, customerID, err)
	}

	var form CustomerForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing profile form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(form); err != nil {
		return validationResponse(c, err)
	}

	customer.Name = form.Name
	customer.Phone = form.Phone
	customer.Email = form.Email

	if file, err := c.FormFile("profile_pic"); err == nil && file != nil {
		name := uuid.New().String() + filepath.Ext(file.Filename)
		if err := c.SaveFile(file, filepath.Join(h.uploadDir, name)); err != nil {
			log.Printf("Error saving profile picture: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not save profile picture",
				"error":   err.Error(),
			})
		}
		customer.ProfilePic = "profile/" + name
	}

	if err := h.customerService.UpdateCustomer(customer); err != nil {
		return customerError(c, customerID, err)
	}
	return c.Redirect("/profile", fiber.StatusSeeOther)
}

// orderFilterForm is the filter form on the customer detail page.
// Dates use YYYY-MM-DD.
type orderFilterForm struct {
	Status    string `json:"status" form:"status"`
	ProductID string `json:"product_id" form:"product_id"`
	DateFrom  string `json:"date_from" form:"date_from"`
	DateTo    string `json:"date_to" form:"date_to"`
}

func (f orderFilterForm) toFilter() (models.OrderFilter, error) {
	filter := models.OrderFilter{
		Status:    f.Status,
		ProductID: f.ProductID,
	}
	if f.Status != "" && !models.ValidStatus(f.Status) {
		return filter, fmt.Errorf("invalid order status: %s", f.Status)
	}
	if f.DateFrom != "" {
		t, err := time.Parse("2006-01-02", f.DateFrom)
		if err != nil {
			return filter, fmt.Errorf("invalid date_from: %s", f.DateFrom)
		}
		filter.DateFrom = &t
	}
	if f.DateTo != "" {
		t, err := time.Parse("2006-01-02", f.DateTo)
		if err != nil {
			return filter, fmt.Errorf("invalid date_to: %s", f.DateTo)
		}
		// Inclusive upper bound: the whole given day
		t = t.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &t
	}
	return filter, nil
}

// HandleCustomerDetail serves a customer plus their orders. A POST
// applies the filter form; total_orders always counts the unfiltered
// set.
func (h *CustomerHandler) HandleCustomerDetail(c *fiber.Ctx) error {
	customerID := c.Params("id")
	customer, err := h.customerService.GetCustomerByID(customerID)
	if err != nil {
		return customerError(c, customerID, err)
	}

	var form orderFilterForm
	if c.Method() == fiber.MethodPost {
		if err := c.BodyParser(&form); err != nil {
			log.Printf("Error parsing order filter: %v", err)
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid filter",
				"error":   err.Error(),
			})
		}
	}
	filter, err := form.toFilter()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid filter",
			"error":   err.Error(),
		})
	}

	allOrders, err := h.orderService.OrdersForCustomer(customerID, models.OrderFilter{})
	if err != nil {
		log.Printf("Error getting orders for customer %s: %v", customerID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	orders := allOrders
	if !filter.Empty() {
		orders, err = h.orderService.OrdersForCustomer(customerID, filter)
		if err != nil {
			log.Printf("Error filtering orders for customer %s: %v", customerID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not retrieve orders",
				"error":   err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"customer":     customer,
		"orders":       orders,
		"total_orders": len(allOrders),
	})
}

// ShowCreateCustomer returns the blank customer form context.
func (h *CustomerHandler) ShowCreateCustomer(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"page": "create_customer"})
}

// HandleCreateCustomer creates a customer with no login account.
func (h *CustomerHandler) HandleCreateCustomer(c *fiber.Ctx) error {
	var form CustomerForm
	if err := c.BodyParser(&form); err != nil {
		log.Printf("Error parsing customer form: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(form); err != nil {
		return validationResponse(c, err)
	}

	customer := &models.Customer{
		Name:  form.Name,
		Phone: form.Phone,
		Email: form.Email,
	}
	if err := h.customerService.CreateCustomer(customer); err != nil {
		log.Printf("Error creating customer: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create customer",
			"error":   err.Error(),
		})
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func customerError(c *fiber.Ctx, customerID string, err error) error {
	log.Printf("Error on customer %s: %v", customerID, err)
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Customer with ID %s not found", customerID),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not process customer",
		"error":   err.Error(),
	})
}
