package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/wastwagon/juellehairgh.com-sub001/internal/config"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/events"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/gateway"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/handlers"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/middleware"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/repository"
	"github.com/wastwagon/juellehairgh.com-sub001/internal/services"
)

// @title Juelle Hair GH Store API
// @version 1.0.0
// @description Storefront and back-office API for the Juelle Hair GH online store

// @host localhost:8080
// @BasePath /

// @securityDefinitions.bearer BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize Redis client
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		redisOpts = &redis.Options{
			Addr: "localhost:6379",
		}
	}
	redisClient := redis.NewClient(redisOpts)

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
	} else {
		log.Println("✓ Redis connected successfully")
	}
	cancel()

	// Initialize event publisher only if NATS_URL is set
	eventsPublisher, err := events.NewPublisher(cfg.NATSURL, logger)
	if err != nil {
		log.Printf("WARNING: Failed to initialize events publisher: %v (continuing without event publishing)", err)
	} else if eventsPublisher != nil {
		log.Println("✓ Events publisher initialized (NATS connected)")
	} else {
		log.Println("NATS_URL not set, skipping event publishing initialization")
	}
	defer func() {
		if eventsPublisher != nil {
			eventsPublisher.Close()
		}
	}()

	// Initialize repositories
	productsRepo := repository.NewProductsRepository(db, redisClient)
	attributesRepo := repository.NewAttributesRepository(db, redisClient)
	catalogRepo := repository.NewCatalogRepository(db, redisClient)
	contentRepo := repository.NewContentRepository(db, redisClient)
	ordersRepo := repository.NewOrdersRepository(db)

	// Initialize payment gateways. Cash on delivery is always available,
	// Stripe only when a secret key is configured.
	cod := gateway.CashOnDelivery{}
	gateways := map[string]gateway.PaymentGateway{
		cod.Name(): cod,
	}
	if cfg.StripeSecretKey != "" {
		stripeGateway, err := gateway.NewStripeGateway(cfg.StripeSecretKey)
		if err != nil {
			log.Printf("WARNING: Failed to initialize Stripe gateway: %v (card payments disabled)", err)
		} else {
			gateways[stripeGateway.Name()] = stripeGateway
			log.Println("✓ Stripe gateway initialized")
		}
	}

	// Initialize services
	checkoutService := services.NewCheckoutService(productsRepo, ordersRepo, gateways, eventsPublisher, logger, cfg.DefaultCurrency)

	// Initialize handlers
	productsHandler := handlers.NewProductsHandler(productsRepo, eventsPublisher, logger)
	attributesHandler := handlers.NewAttributesHandler(attributesRepo, logger)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo, logger)
	contentHandler := handlers.NewContentHandler(contentRepo, logger)
	ordersHandler := handlers.NewOrdersHandler(ordersRepo, checkoutService, eventsPublisher, logger)
	exportHandler := handlers.NewExportHandler(productsRepo, logger)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)

	// =============================================================================
	// PUBLIC STOREFRONT ENDPOINTS (no auth required)
	// =============================================================================
	storefront := router.Group("/storefront")
	{
		storefront.GET("/products", productsHandler.ListStorefrontProducts)
		storefront.GET("/products/:slug", productsHandler.GetStorefrontProduct)
		storefront.GET("/categories", catalogHandler.GetCategories)
		storefront.GET("/brands", catalogHandler.GetBrands)
		storefront.GET("/collections", catalogHandler.GetCollections)
		storefront.GET("/banners", contentHandler.GetActiveBanners)
		storefront.GET("/blog", contentHandler.GetPublishedPosts)
		storefront.GET("/blog/:slug", contentHandler.GetPostBySlug)
		storefront.GET("/shipping-zones", ordersHandler.GetShippingZones)
		storefront.POST("/checkout", ordersHandler.Checkout)
		storefront.GET("/orders/track/:number", ordersHandler.TrackOrder)
	}

	// =============================================================================
	// ADMIN ENDPOINTS (JWT auth, admin role required)
	// =============================================================================
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	admin.Use(middleware.RequireRole("admin"))
	{
		products := admin.Group("/products")
		{
			products.GET("", productsHandler.GetProducts)
			products.GET("/:id", productsHandler.GetProduct)
			products.POST("", productsHandler.CreateProduct)
			products.PUT("/:id", productsHandler.UpdateProduct)
			products.DELETE("/:id", productsHandler.DeleteProduct)
		}

		variants := admin.Group("/product-variants")
		{
			variants.GET("", productsHandler.GetVariants)
			variants.POST("", productsHandler.CreateVariant)
			variants.PUT("/:id", productsHandler.UpdateVariant)
			variants.DELETE("/:id", productsHandler.DeleteVariant)
		}

		attributes := admin.Group("/attributes")
		{
			attributes.GET("", attributesHandler.GetAttributes)
			attributes.POST("", attributesHandler.CreateAttribute)
			attributes.DELETE("/:id", attributesHandler.DeleteAttribute)
			attributes.POST("/:id/terms", attributesHandler.CreateTerm)
			attributes.DELETE("/:id/terms/:termId", attributesHandler.DeleteTerm)
		}

		categories := admin.Group("/categories")
		{
			categories.GET("", catalogHandler.GetCategories)
			categories.POST("", catalogHandler.CreateCategory)
			categories.PUT("/:id", catalogHandler.UpdateCategory)
			categories.DELETE("/:id", catalogHandler.DeleteCategory)
		}

		brands := admin.Group("/brands")
		{
			brands.GET("", catalogHandler.GetBrands)
			brands.POST("", catalogHandler.CreateBrand)
			brands.PUT("/:id", catalogHandler.UpdateBrand)
			brands.DELETE("/:id", catalogHandler.DeleteBrand)
		}

		collections := admin.Group("/collections")
		{
			collections.GET("", catalogHandler.GetCollections)
			collections.POST("", catalogHandler.CreateCollection)
			collections.PUT("/:id", catalogHandler.UpdateCollection)
			collections.DELETE("/:id", catalogHandler.DeleteCollection)
		}

		banners := admin.Group("/banners")
		{
			banners.GET("", contentHandler.GetBanners)
			banners.POST("", contentHandler.CreateBanner)
			banners.PUT("/:id", contentHandler.UpdateBanner)
			banners.DELETE("/:id", contentHandler.DeleteBanner)
		}

		blog := admin.Group("/blog")
		{
			blog.GET("", contentHandler.GetPosts)
			blog.POST("", contentHandler.CreatePost)
			blog.PUT("/:id", contentHandler.UpdatePost)
			blog.DELETE("/:id", contentHandler.DeletePost)
		}

		badges := admin.Group("/badge-templates")
		{
			badges.GET("", contentHandler.GetBadgeTemplates)
			badges.POST("", contentHandler.CreateBadgeTemplate)
			badges.DELETE("/:id", contentHandler.DeleteBadgeTemplate)
		}

		media := admin.Group("/media")
		{
			media.GET("", contentHandler.GetMediaFiles)
			media.POST("", contentHandler.CreateMediaFile)
			media.DELETE("/:id", contentHandler.DeleteMediaFile)
		}

		shippingZones := admin.Group("/shipping-zones")
		{
			shippingZones.GET("", ordersHandler.GetAllShippingZones)
			shippingZones.POST("", ordersHandler.CreateShippingZone)
			shippingZones.PUT("/:id", ordersHandler.UpdateShippingZone)
			shippingZones.DELETE("/:id", ordersHandler.DeleteShippingZone)
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", ordersHandler.GetOrders)
			orders.GET("/:id", ordersHandler.GetOrder)
			orders.PUT("/:id/status", ordersHandler.UpdateOrderStatus)
		}

		admin.GET("/export/products", exportHandler.ExportProducts)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Store service starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down store service...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}

	log.Println("Store service stopped")
}
