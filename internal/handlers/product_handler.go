package handlers

import (
	"errors"
	"fmt"
	"log"

	"crm/internal/models"
	"crm/internal/repositories"
	"crm/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product reference data
// and the tag view.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes; products are admin
// reference data.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, authRequired, adminOnly fiber.Handler) {
	router.Get("/products", authRequired, adminOnly, h.HandleGetProducts)
	router.Post("/products", authRequired, adminOnly, h.HandleCreateProduct)
	router.Put("/products/:id", authRequired, adminOnly, h.HandleUpdateProduct)
	router.Delete("/products/:id", authRequired, adminOnly, h.HandleDeleteProduct)
	router.Get("/tags/:product_id", authRequired, adminOnly, h.HandleViewTags)
}

// HandleGetProducts lists every product with its tags.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"products": products})
}

// HandleCreateProduct creates a product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return validationResponse(c, err)
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = productID
	if err := h.validate.Struct(product); err != nil {
		return validationResponse(c, err)
	}

	if err := h.service.UpdateProduct(&product); err != nil {
		return productError(c, productID, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product; orders referencing it keep
// existing with the reference nulled.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(productID); err != nil {
		return productError(c, productID, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted", productID),
	})
}

// HandleViewTags serves the product's tags and their names joined into
// a display string.
func (h *ProductHandler) HandleViewTags(c *fiber.Ctx) error {
	productID := c.Params("product_id")
	product, display, err := h.service.TagsForProduct(productID)
	if err != nil {
		return productError(c, productID, err)
	}
	return c.JSON(fiber.Map{
		"product": product,
		"tags":    product.Tags,
		"display": display,
	})
}

func productError(c *fiber.Ctx, productID string, err error) error {
	log.Printf("Error on product %s: %v", productID, err)
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": fmt.Sprintf("Product with ID %s not found", productID),
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not process product",
		"error":   err.Error(),
	})
}
