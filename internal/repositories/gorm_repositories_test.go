package repositories_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"crm/internal/models"
	"crm/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupDB opens a fresh in-memory sqlite database per test. The unique
// name keeps tests from sharing state through the shared cache.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.User{}, &models.Customer{}, &models.Tag{}, &models.Product{}, &models.Order{}))
	return db
}

func TestGORMUserRepository_DeleteCascadesCustomer(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	user := &models.User{Username: "alice", Password: "hash", Role: models.RoleCustomer}
	customer := &models.Customer{Name: "Alice"}
	assert.NoError(t, userRepo.CreateWithCustomer(user, customer))
	assert.NotEmpty(t, user.ID)
	assert.NotNil(t, customer.UserID)
	assert.Equal(t, user.ID, *customer.UserID)

	order := &models.Order{CustomerID: &customer.ID, Status: models.StatusPending}
	assert.NoError(t, orderRepo.Create(order))

	assert.NoError(t, userRepo.Delete(user.ID))

	// The linked customer is gone with the user
	_, err := customerRepo.GetByID(customer.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	_, err = userRepo.GetByID(user.ID)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	// The order survives with its customer reference nulled
	survivor, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Nil(t, survivor.CustomerID)
}

func TestGORMCustomerRepository_DeleteNullifiesOrders(t *testing.T) {
	db := setupDB(t)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	customer := &models.Customer{Name: "Bob"}
	assert.NoError(t, customerRepo.Create(customer))
	assert.Equal(t, models.DefaultProfilePic, customer.ProfilePic)

	order := &models.Order{CustomerID: &customer.ID, Status: models.StatusDelivered}
	assert.NoError(t, orderRepo.Create(order))

	assert.NoError(t, customerRepo.Delete(customer.ID))

	survivor, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Nil(t, survivor.CustomerID)
	assert.Equal(t, models.StatusDelivered, survivor.Status)
}

func TestGORMProductRepository_DeleteNullifiesOrders(t *testing.T) {
	db := setupDB(t)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	product := &models.Product{Name: "Monstera", Price: 25, Category: models.CategoryIndoor}
	assert.NoError(t, productRepo.Create(product))

	order := &models.Order{ProductID: &product.ID, Status: models.StatusPending}
	assert.NoError(t, orderRepo.Create(order))

	assert.NoError(t, productRepo.Delete(product.ID))

	survivor, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Nil(t, survivor.ProductID)
}

func TestGORMProductRepository_Tags(t *testing.T) {
	db := setupDB(t)
	productRepo := repositories.NewGORMProductRepository(db)

	product := &models.Product{
		Name:     "Monstera",
		Price:    25,
		Category: models.CategoryIndoor,
		Tags:     []models.Tag{{Name: "tropical"}, {Name: "low light"}},
	}
	assert.NoError(t, productRepo.Create(product))

	got, err := productRepo.GetByID(product.ID)
	assert.NoError(t, err)
	assert.Len(t, got.Tags, 2)

	// Tags come back by product ID, not by name: a second product with
	// the same name keeps its own tag set.
	twin := &models.Product{
		Name:     "Monstera",
		Price:    30,
		Category: models.CategoryOutdoor,
		Tags:     []models.Tag{{Name: "hardy"}},
	}
	assert.NoError(t, productRepo.Create(twin))

	gotTwin, err := productRepo.GetByID(twin.ID)
	assert.NoError(t, err)
	assert.Len(t, gotTwin.Tags, 1)
	assert.Equal(t, "hardy", gotTwin.Tags[0].Name)
}

func TestGORMRepositories_UpdateMissingLeavesNoRow(t *testing.T) {
	db := setupDB(t)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	err := productRepo.Update(&models.Product{ID: "ghost", Name: "Ghost", Price: 1, Category: models.CategoryIndoor})
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	err = customerRepo.Update(&models.Customer{ID: "ghost", Name: "Ghost"})
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	err = orderRepo.Update(&models.Order{ID: "ghost", Status: models.StatusPending})
	assert.True(t, errors.Is(err, repositories.ErrNotFound))

	// No insert happened on any of the misses
	products, err := productRepo.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, products)
	customers, err := customerRepo.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, customers)
	orders, err := orderRepo.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestGORMUserRepository_DuplicateUsername(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)

	assert.NoError(t, userRepo.Create(&models.User{Username: "erin", Password: "hash", Role: models.RoleAdmin}))

	err := userRepo.Create(&models.User{Username: "erin", Password: "hash", Role: models.RoleAdmin})
	assert.True(t, errors.Is(err, repositories.ErrDuplicate))

	// The transactional variant surfaces the same sentinel and leaves
	// no orphaned customer behind.
	err = userRepo.CreateWithCustomer(
		&models.User{Username: "erin", Password: "hash", Role: models.RoleCustomer},
		&models.Customer{Name: "Erin"},
	)
	assert.True(t, errors.Is(err, repositories.ErrDuplicate))
	customers, err := customerRepo.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, customers)
}

func TestGORMOrderRepository_ListByCustomer(t *testing.T) {
	db := setupDB(t)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	customer := &models.Customer{Name: "Carol"}
	assert.NoError(t, customerRepo.Create(customer))
	other := &models.Customer{Name: "Dave"}
	assert.NoError(t, customerRepo.Create(other))

	fern := &models.Product{Name: "Fern", Price: 10, Category: models.CategoryIndoor}
	assert.NoError(t, productRepo.Create(fern))
	rose := &models.Product{Name: "Rose", Price: 15, Category: models.CategoryOutdoor}
	assert.NoError(t, productRepo.Create(rose))

	mk := func(c *models.Customer, p *models.Product, status string) *models.Order {
		o := &models.Order{CustomerID: &c.ID, ProductID: &p.ID, Status: status}
		assert.NoError(t, orderRepo.Create(o))
		return o
	}
	mk(customer, fern, models.StatusPending)
	mk(customer, rose, models.StatusDelivered)
	mk(customer, fern, models.StatusDelivered)
	mk(other, rose, models.StatusPending)

	// Empty criteria: the customer's full set, nothing else
	all, err := orderRepo.ListByCustomer(customer.ID, models.OrderFilter{})
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	// By status
	delivered, err := orderRepo.ListByCustomer(customer.ID, models.OrderFilter{Status: models.StatusDelivered})
	assert.NoError(t, err)
	assert.Len(t, delivered, 2)

	// By product
	ferns, err := orderRepo.ListByCustomer(customer.ID, models.OrderFilter{ProductID: fern.ID})
	assert.NoError(t, err)
	assert.Len(t, ferns, 2)

	// Combined
	pendingFerns, err := orderRepo.ListByCustomer(customer.ID, models.OrderFilter{ProductID: fern.ID, Status: models.StatusPending})
	assert.NoError(t, err)
	assert.Len(t, pendingFerns, 1)

	// Date range covering now matches everything; a past-only window
	// matches nothing
	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	ranged, err := orderRepo.ListByCustomer(customer.ID, models.OrderFilter{DateFrom: &from, DateTo: &to})
	assert.NoError(t, err)
	assert.Len(t, ranged, 3)

	pastTo := time.Now().Add(-30 * time.Minute)
	none, err := orderRepo.ListByCustomer(customer.ID, models.OrderFilter{DateFrom: &from, DateTo: &pastTo})
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestGORMOrderRepository_CreateBatchRollsBack(t *testing.T) {
	db := setupDB(t)
	orderRepo := repositories.NewGORMOrderRepository(db)

	dup := "dup-id"
	orders := []*models.Order{
		{ID: dup, Status: models.StatusPending},
		{ID: dup, Status: models.StatusDelivered}, // primary key clash fails the batch
	}
	err := orderRepo.CreateBatch(orders)
	assert.Error(t, err)

	all, err := orderRepo.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestGORMRepositories_NotFound(t *testing.T) {
	db := setupDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	_, err := userRepo.GetByID("missing")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	_, err = userRepo.GetByUsername("missing")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	_, err = customerRepo.GetByID("missing")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	_, err = customerRepo.GetByUserID("missing")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	_, err = productRepo.GetByID("missing")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	_, err = orderRepo.GetByID("missing")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	assert.True(t, errors.Is(orderRepo.Delete("missing"), repositories.ErrNotFound))
}
