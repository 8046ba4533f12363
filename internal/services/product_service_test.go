package services_test

import (
	"errors"
	"testing"

	"crm/internal/models"
	"crm/internal/repositories"
	"crm/internal/services"

	"github.com/stretchr/testify/assert"
)

func TestProductService_TagsForProduct(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	svc := services.NewProductService(repo)

	product := &models.Product{
		Name:     "Monstera",
		Price:    25.00,
		Category: models.CategoryIndoor,
		Tags: []models.Tag{
			{Name: "tropical"},
			{Name: "low light"},
		},
	}
	assert.NoError(t, repo.Create(product))

	got, display, err := svc.TagsForProduct(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, product.ID, got.ID)
	assert.Len(t, got.Tags, 2)
	assert.Equal(t, "tropical, low light", display)

	// No tags yields an empty display string
	bare := &models.Product{Name: "Cactus", Price: 5, Category: models.CategoryIndoor}
	assert.NoError(t, repo.Create(bare))
	got, display, err = svc.TagsForProduct(bare.ID)
	assert.NoError(t, err)
	assert.Empty(t, got.Tags)
	assert.Equal(t, "", display)

	// Unknown product
	_, _, err = svc.TagsForProduct("missing")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestProductService_CRUD(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	svc := services.NewProductService(repo)

	product := &models.Product{Name: "Ficus", Price: 30, Category: models.CategoryIndoor}
	assert.NoError(t, svc.CreateProduct(product))
	assert.NotEmpty(t, product.ID)

	got, err := svc.GetProductByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Ficus", got.Name)

	got.Price = 35
	assert.NoError(t, svc.UpdateProduct(got))
	updated, err := svc.GetProductByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, 35.0, updated.Price)

	assert.NoError(t, svc.DeleteProduct(product.ID))
	_, err = svc.GetProductByID(product.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}
