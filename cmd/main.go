package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/JeansCordoba/Fruteria/internal/handler"
	mid "github.com/JeansCordoba/Fruteria/internal/middleware"
	"github.com/JeansCordoba/Fruteria/internal/service"
	"github.com/JeansCordoba/Fruteria/pkg/config"
	"github.com/JeansCordoba/Fruteria/pkg/database"
	"github.com/JeansCordoba/Fruteria/pkg/jwtutil"
	"github.com/JeansCordoba/Fruteria/pkg/logger"
	"github.com/JeansCordoba/Fruteria/prometheus"
)

func main() {
	// Load .env file; fall back to real environment variables when absent
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting fruteria-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	if appConfig.Database.Seed {
		if err := database.Seed(db); err != nil {
			log.Fatal("Failed to seed database", zap.Error(err))
		}
		log.Info("Database seeded")
	}

	// Services
	categorySvc := service.NewCategoryService(db)
	supplierSvc := service.NewSupplierService(db)
	productSvc := service.NewProductService(db, categorySvc, supplierSvc)
	clientSvc := service.NewClientService(db)
	roleSvc := service.NewRoleService(db)
	paymentSvc := service.NewPaymentService(db)
	userSvc := service.NewUserService(db, roleSvc)
	saleSvc := service.NewSaleService(db)

	// Handlers
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	supplierHandler := handler.NewSupplierHandler(supplierSvc)
	productHandler := handler.NewProductHandler(productSvc)
	clientHandler := handler.NewClientHandler(clientSvc)
	roleHandler := handler.NewRoleHandler(roleSvc)
	paymentHandler := handler.NewPaymentHandler(paymentSvc)
	userHandler := handler.NewUserHandler(userSvc)
	saleHandler := handler.NewSaleHandler(saleSvc)
	authHandler := handler.NewAuthHandler(userSvc)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Authentication
	e.POST("/api/auth/login", authHandler.Login)

	categoryAPI := e.Group("/api/categories")
	categoryAPI.GET("", categoryHandler.List)
	categoryAPI.GET("/:id", categoryHandler.Get)
	categoryAPI.POST("", categoryHandler.Create)
	categoryAPI.PUT("/:id", categoryHandler.Update)
	categoryAPI.DELETE("/:id", categoryHandler.Delete)

	productAPI := e.Group("/api/products")
	productAPI.GET("", productHandler.List)
	productAPI.GET("/:id", productHandler.Get)
	productAPI.GET("/category/:id", productHandler.ListByCategory)
	productAPI.POST("", productHandler.Create)
	productAPI.PATCH("/:id", productHandler.Update)
	productAPI.PUT("/:id/stock", productHandler.UpdateStock)
	productAPI.DELETE("/:id", productHandler.Delete)

	supplierAPI := e.Group("/api/suppliers")
	supplierAPI.GET("", supplierHandler.List)
	supplierAPI.GET("/:id", supplierHandler.Get)
	supplierAPI.GET("/nit/:nit", supplierHandler.GetByNIT)
	supplierAPI.POST("", supplierHandler.Create)
	supplierAPI.PATCH("/:id", supplierHandler.Update)
	supplierAPI.DELETE("/:id", supplierHandler.Delete)

	clientAPI := e.Group("/api/clients")
	clientAPI.GET("", clientHandler.List)
	clientAPI.GET("/search", clientHandler.Search)
	clientAPI.GET("/:id", clientHandler.Get)
	clientAPI.POST("", clientHandler.Create)
	clientAPI.PATCH("/:id", clientHandler.Update)
	clientAPI.DELETE("/:id", clientHandler.Delete)

	paymentAPI := e.Group("/api/payments")
	paymentAPI.GET("", paymentHandler.List)
	paymentAPI.GET("/:id", paymentHandler.Get)
	paymentAPI.POST("", paymentHandler.Create)
	paymentAPI.PATCH("/:id", paymentHandler.Update)
	paymentAPI.DELETE("/:id", paymentHandler.Delete)

	saleAPI := e.Group("/api/sales")
	saleAPI.GET("", saleHandler.List)
	saleAPI.GET("/:id", saleHandler.Get)
	saleAPI.GET("/client/:id", saleHandler.ByClient)
	saleAPI.POST("", saleHandler.Create)
	saleAPI.POST("/:id/cancel", saleHandler.Cancel)

	// User and role administration requires a valid JWT
	roleAPI := e.Group("/api/roles", mid.AuthMiddleware)
	roleAPI.GET("", roleHandler.List)
	roleAPI.GET("/:id", roleHandler.Get)
	roleAPI.POST("", roleHandler.Create)
	roleAPI.PATCH("/:id", roleHandler.Update)
	roleAPI.DELETE("/:id", roleHandler.Delete)

	userAPI := e.Group("/api/users", mid.AuthMiddleware)
	userAPI.GET("", userHandler.List)
	userAPI.GET("/:id", userHandler.Get)
	userAPI.GET("/role/:id", userHandler.ByRole)
	userAPI.POST("", userHandler.Create)
	userAPI.PATCH("/:id", userHandler.Update)
	userAPI.DELETE("/:id", userHandler.Delete)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
