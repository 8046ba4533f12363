package services

import (
	"strings"

	"crm/internal/models"
	"crm/internal/repositories"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeleteProduct deletes a product by its ID; orders referencing it
// survive with the reference nulled.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

// TagsForProduct returns the product with its tags plus the tag names
// joined into a display string, in one lookup. Matching is by product
// ID, so two products sharing a name keep separate tag sets.
func (s *ProductService) TagsForProduct(productID string) (*models.Product, string, error) {
	product, err := s.repo.GetByID(productID)
	if err != nil {
		return nil, "", err
	}
	names := make([]string, 0, len(product.Tags))
	for _, tag := range product.Tags {
		names = append(names, tag.Name)
	}
	return product, strings.Join(names, ", "), nil
}
