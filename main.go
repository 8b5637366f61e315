package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"
	"storefront/pkg/cache"
	"storefront/pkg/rabbitmq"
	"storefront/pkg/storage"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("SQLITE_PATH", "storefront.db")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("JWT_SECRET", "dev-only-secret")
	viper.SetDefault("UPLOAD_DIR", "./uploads")
	viper.SetDefault("UPLOAD_BASE_URL", "/uploads")
	viper.SetDefault("CACHE_TTL", "5m")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	uploadDir := viper.GetString("UPLOAD_DIR")

	// --- Database ---
	db := initDatabase()
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Category{},
		&models.Favorite{},
		&models.Review{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Slider{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// --- Page cache ---
	// Redis when configured, in-process otherwise.
	ttl := viper.GetDuration("CACHE_TTL")
	var pageCache cache.Cache
	if addr := viper.GetString("REDIS_ADDR"); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		pageCache = cache.NewRedisCache(client, "storefront:", ttl)
		log.Printf("Using Redis page cache at %s", addr)
	} else {
		pageCache = cache.NewMemoryCache(ttl)
	}

	// --- Checkout events ---
	var publisher services.EventPublisher
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		publisher = mqClient

		// Placeholder consumer; fulfilment would hook in here.
		err = mqClient.Consume(func(msg amqp.Delivery) error {
			log.Printf("Checkout event %s: %s", msg.Type, string(msg.Body))
			return nil
		})
		if err != nil {
			log.Printf("Failed to start checkout event consumer: %v", err)
		}
	}

	// --- Image storage ---
	images, err := storage.NewDiskStore(uploadDir, viper.GetString("UPLOAD_BASE_URL"))
	if err != nil {
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	productRepo := repositories.NewGORMProductRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	favoriteRepo := repositories.NewGORMFavoriteRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)
	cartRepo := repositories.NewGORMCartRepository(db)
	orderRepo := repositories.NewGORMOrderRepository(db)
	sliderRepo := repositories.NewGORMSliderRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, viper.GetString("JWT_SECRET"))
	productService := services.NewProductService(productRepo, images, pageCache)
	categoryService := services.NewCategoryService(categoryRepo)
	favoriteService := services.NewFavoriteService(favoriteRepo, productRepo)
	reviewService := services.NewReviewService(reviewRepo, pageCache)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, userRepo, cartService, publisher)
	sliderService := services.NewSliderService(sliderRepo, images)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	favoriteHandler := handlers.NewFavoriteHandler(favoriteService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	sliderHandler := handlers.NewSliderHandler(sliderService)

	// --- Fiber app ---
	app := fiber.New()
	app.Use(logger.New())
	app.Static(viper.GetString("UPLOAD_BASE_URL"), uploadDir)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	apiV1 := app.Group("/api/v1")

	// Public routes
	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterRoutes(apiV1)
	reviewHandler.RegisterPublicRoutes(apiV1)
	categoryHandler.RegisterRoutes(apiV1)
	sliderHandler.RegisterRoutes(apiV1)

	// Authenticated routes
	protected := apiV1.Group("", middleware.AuthRequired(authService))
	favoriteHandler.RegisterRoutes(protected)
	reviewHandler.RegisterRoutes(protected)
	cartHandler.RegisterRoutes(protected)
	orderHandler.RegisterRoutes(protected)

	// Admin routes
	admin := protected.Group("/admin", middleware.AdminRequired())
	productHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	categoryHandler.RegisterAdminRoutes(admin)
	sliderHandler.RegisterAdminRoutes(admin)

	// --- Start HTTP server ---
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

// initDatabase opens PostgreSQL when DATABASE_URL is set and falls back to a
// local SQLite file for development.
func initDatabase() *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)
	if dsn := viper.GetString("DATABASE_URL"); dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		db, err = gorm.Open(sqlite.Open(viper.GetString("SQLITE_PATH")), &gorm.Config{})
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}
