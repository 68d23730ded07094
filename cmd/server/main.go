package main

import (
	"log"
	"strings"
	"time"

	"retail_pos/internal/config"
	"retail_pos/internal/database"
	"retail_pos/internal/handlers"
	"retail_pos/internal/middleware"
	"retail_pos/internal/models"
	"retail_pos/internal/redis"
	"retail_pos/internal/repository"
	"retail_pos/internal/services"
	"retail_pos/pkg/payment"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize payment gateway client
	var paymentClient *payment.Client
	if cfg.RazorpayKeyID != "" {
		paymentClient = payment.NewClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	billRepo := repository.NewBillRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	incomingRepo := repository.NewIncomingOrderRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	txnRepo := repository.NewTransactionRepository(db)

	// Order event stream doubles as the order notifier
	orderStream := handlers.NewOrderStream()

	// Initialize services
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo, redisClient,
		time.Duration(cfg.SearchCacheTTL)*time.Second)
	billService := services.NewBillService(billRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, billRepo, redisClient, orderStream,
		time.Duration(cfg.StatsCacheTTL)*time.Second)
	incomingService := services.NewIncomingOrderService(incomingRepo)
	ledgerService := services.NewLedgerService(customerRepo, txnRepo)
	chatService := services.NewChatService(productService, cfg.OpenAIAPIKey)

	// Initialize handlers
	tokenTTL := time.Duration(cfg.TokenTTL) * time.Second
	authHandler := handlers.NewAuthHandler(userService, redisClient, cfg.JWTSecret, tokenTTL)
	productHandler := handlers.NewProductHandler(productService, cfg.UploadsDir)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo)
	billHandler := handlers.NewBillHandler(billService)
	orderHandler := handlers.NewOrderHandler(orderService)
	incomingHandler := handlers.NewIncomingOrderHandler(incomingService, userService)
	vendorHandler := handlers.NewVendorHandler(vendorRepo)
	customerHandler := handlers.NewCustomerHandler(ledgerService)
	chatHandler := handlers.NewChatHandler(chatService)
	paymentHandler := handlers.NewPaymentHandler(orderService, paymentClient)

	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images
	router.Static("/uploads", cfg.UploadsDir)

	// Public auth endpoints
	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)

	api := router.Group("/api")
	api.Use(middleware.RequireAuth(cfg.JWTSecret, redisClient))
	{
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/profile", authHandler.Profile)

		// Catalog
		api.GET("/categories", catalogHandler.ListCategories)
		api.POST("/categories", catalogHandler.CreateCategory)
		api.DELETE("/categories/:id", catalogHandler.DeleteCategory)
		api.GET("/companies", catalogHandler.ListCompanies)
		api.POST("/companies", catalogHandler.CreateCompany)
		api.DELETE("/companies/:id", catalogHandler.DeleteCompany)
		api.GET("/tags", catalogHandler.ListTags)
		api.POST("/tags", catalogHandler.CreateTag)
		api.DELETE("/tags/:id", catalogHandler.DeleteTag)

		// Products
		api.GET("/products", productHandler.List)
		api.GET("/products/search", productHandler.Search)
		api.GET("/products/:id", productHandler.Get)
		api.POST("/products", productHandler.Create)
		api.PUT("/products/:id", productHandler.Update)
		api.DELETE("/products/:id", productHandler.Delete)
		api.POST("/products/upload", productHandler.UploadImage)

		// Bill (cart)
		api.GET("/bill", billHandler.Get)
		api.POST("/bill/add", billHandler.AddItem)
		api.PATCH("/bill/update-item", billHandler.UpdateItem)
		api.DELETE("/bill/remove-item", billHandler.RemoveItem)
		api.DELETE("/bill/clear-all", billHandler.Clear)

		// Orders
		api.POST("/orders", orderHandler.Create)
		api.GET("/orders", orderHandler.List)
		api.GET("/orders/stats", orderHandler.Stats)
		api.GET("/orders/:id", orderHandler.Get)
		api.PATCH("/orders/:id/status", orderHandler.UpdateStatus)
		api.GET("/orders/stream", orderStream.Handle)

		// Incoming orders
		api.POST("/incoming-orders", incomingHandler.Create)
		api.GET("/incoming-orders", incomingHandler.List)
		api.GET("/incoming-orders/:id", incomingHandler.Get)
		api.PATCH("/incoming-orders/:id", incomingHandler.Patch)
		api.POST("/incoming-orders/:id/comments", incomingHandler.AddComment)
		api.DELETE("/incoming-orders/:id", incomingHandler.Delete)

		// Vendors
		api.POST("/vendors", vendorHandler.Create)
		api.GET("/vendors", vendorHandler.List)
		api.GET("/vendors/:id", vendorHandler.Get)
		api.PUT("/vendors/:id", vendorHandler.Update)
		api.DELETE("/vendors/:id", vendorHandler.Delete)

		// Customers and ledger
		api.POST("/customers", customerHandler.Create)
		api.GET("/customers", customerHandler.List)
		api.GET("/customers/:id", customerHandler.Get)
		api.GET("/customers/:id/ledger", customerHandler.Ledger)
		api.POST("/customers/:id/reconcile-balance", customerHandler.ReconcileBalance)
		api.POST("/transactions", customerHandler.CreateTransaction)
		api.POST("/transactions/:id/reverse", customerHandler.ReverseTransaction)

		// Chat product search
		api.POST("/chat", chatHandler.Send)

		// Payment gateway
		api.POST("/payments/order", paymentHandler.CreatePaymentOrder)

		// Admin-only exports
		admin := api.Group("/admin")
		admin.Use(middleware.RequireRole(string(models.RoleAdmin)))
		{
			admin.GET("/products/export", productHandler.ExportExcel)
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
