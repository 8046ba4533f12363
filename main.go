package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"crm/internal/handlers"
	"crm/internal/middleware"
	"crm/internal/models"
	"crm/internal/repositories"
	"crm/internal/services"
	"crm/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DB_DRIVER", "sqlite")
	viper.SetDefault("DB_DSN", "crm.db")
	viper.SetDefault("JWT_SECRET", "change-me-in-production")
	viper.SetDefault("UPLOAD_DIR", "uploads/profile")
	viper.SetDefault("ADMIN_USERNAME", "admin")
	viper.SetDefault("ADMIN_PASSWORD", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	jwtSecret := viper.GetString("JWT_SECRET")
	uploadDir := viper.GetString("UPLOAD_DIR")

	// --- Database ---
	db, err := openDatabase(viper.GetString("DB_DRIVER"), viper.GetString("DB_DSN"))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Customer{}, &models.Tag{}, &models.Product{}, &models.Order{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.Fatalf("Failed to create upload dir %s: %v", uploadDir, err)
	}

	// --- RabbitMQ (optional) ---
	var mqClient *rabbitmq.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
	} else {
		log.Println("RABBITMQ_URL not set, order events disabled")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	customerRepo := repositories.NewGORMCustomerRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, customerRepo, jwtSecret)
	customerService := services.NewCustomerService(customerRepo)
	productService := services.NewProductService(productRepo)
	var publisher services.OrderEventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	orderService := services.NewOrderService(orderRepo, productRepo, customerRepo, publisher)

	seedAdmin(authService)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	dashboardHandler := handlers.NewDashboardHandler(customerService, orderService)
	customerHandler := handlers.NewCustomerHandler(customerService, orderService, uploadDir)
	orderHandler := handlers.NewOrderHandler(orderService, customerService, productService)
	productHandler := handlers.NewProductHandler(productService)

	// --- Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	// --- Guards ---
	authRequired := middleware.AuthRequired(authService)
	unauthenticatedOnly := middleware.UnauthenticatedOnly(authService)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)
	customerOnly := middleware.RoleRequired(models.RoleCustomer)

	// --- Routes ---
	authHandler.RegisterRoutes(app, unauthenticatedOnly)
	dashboardHandler.RegisterRoutes(app, authRequired, customerOnly)
	customerHandler.RegisterRoutes(app, authRequired, adminOnly, customerOnly)
	orderHandler.RegisterRoutes(app, authRequired, adminOnly)
	productHandler.RegisterRoutes(app, authRequired, adminOnly)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Order event consumer ---
	if mqClient != nil {
		log.Println("Starting RabbitMQ consumer for order events...")
		if consumerErr := mqClient.ConsumeOrderEvents(func(msg amqp.Delivery) error {
			log.Printf("Received order event (tag %d): %s", msg.DeliveryTag, string(msg.Body))
			return nil
		}); consumerErr != nil {
			log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
		}
	}

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// openDatabase opens a GORM connection for the configured driver.
// sqlite covers local use; postgres is for real deployments.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	default:
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	}
}

// seedAdmin creates the initial admin account when ADMIN_PASSWORD is
// set and the username is still free.
func seedAdmin(authService *services.AuthService) {
	username := viper.GetString("ADMIN_USERNAME")
	password := viper.GetString("ADMIN_PASSWORD")
	if password == "" {
		return
	}
	if err := authService.CreateAdmin(username, password); err != nil {
		log.Printf("Admin seed skipped: %v", err)
		return
	}
	log.Printf("Seeded admin account %q", username)
}
