package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/climbsoft/climb-delivery-api/config"
	"github.com/climbsoft/climb-delivery-api/controllers"
	"github.com/climbsoft/climb-delivery-api/middleware"
	"github.com/climbsoft/climb-delivery-api/models"
	"github.com/climbsoft/climb-delivery-api/services"
)

func main() {
	log.Println("Starting Climb Delivery API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database models
	db := config.GetDB()
	if err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.Category{},
		&models.Product{},
		&models.AdditiveGroup{},
		&models.Additive{},
		&models.ProductAdditiveGroup{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderItemAdditive{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	// Initialize services
	if _, err := services.InitCartStore(); err != nil {
		log.Fatalf("Failed to connect to cart store: %v", err)
	}
	services.InitCartManager(services.GetCartStore())

	if _, err := services.InitS3Service(); err != nil {
		log.Fatalf("Failed to initialize S3 service: %v", err)
	}
	services.InitImageService(services.GetS3Service())

	router := setupRouter(cfg)

	port := ":8080"
	log.Printf("Server is running on http://localhost%s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupRouter wires middleware and all API routes.
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", controllers.SessionHeader)
	corsConfig.ExposeHeaders = append(corsConfig.ExposeHeaders, controllers.SessionHeader)
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheck)
		v1.GET("/database/status", databaseStatus)

		// Public storefront routes, scoped by restaurant slug.
		public := v1.Group("/public/:slug")
		{
			public.GET("/menu", controllers.GetPublicMenu)

			public.GET("/cart", controllers.GetCart)
			public.POST("/cart/lines", controllers.AddCartLine)
			public.PATCH("/cart/lines/:lineId", controllers.UpdateCartLine)
			public.DELETE("/cart/lines/:lineId", controllers.RemoveCartLine)
			public.DELETE("/cart", controllers.ClearCart)

			public.POST("/orders", controllers.SubmitOrder)
			public.GET("/orders/:id", controllers.GetPublicOrder)
		}

		// Dashboard routes require a valid Auth0 token.
		dashboard := v1.Group("")
		dashboard.Use(middleware.EnsureValidToken(cfg))
		{
			dashboard.POST("/users", controllers.CreateUser)
			dashboard.GET("/users/me", controllers.GetMyProfile)
			dashboard.PUT("/users/me", controllers.UpdateMyProfile)

			dashboard.POST("/restaurants", controllers.CreateRestaurant)
			dashboard.GET("/restaurants", controllers.ListRestaurants)
			dashboard.GET("/restaurants/me", controllers.GetMyRestaurant)
			dashboard.PUT("/restaurants/me", controllers.UpdateMyRestaurant)

			dashboard.GET("/categories", controllers.ListCategories)
			dashboard.POST("/categories", controllers.CreateCategory)
			dashboard.PUT("/categories/:id", controllers.UpdateCategory)
			dashboard.DELETE("/categories/:id", controllers.DeleteCategory)

			dashboard.GET("/products", controllers.ListProducts)
			dashboard.POST("/products", controllers.CreateProduct)
			dashboard.PUT("/products/:id", controllers.UpdateProduct)
			dashboard.DELETE("/products/:id", controllers.DeleteProduct)

			dashboard.GET("/additive-groups", controllers.ListAdditiveGroups)
			dashboard.POST("/additive-groups", controllers.CreateAdditiveGroup)
			dashboard.PUT("/additive-groups/:id", controllers.UpdateAdditiveGroup)
			dashboard.DELETE("/additive-groups/:id", controllers.DeleteAdditiveGroup)
			dashboard.POST("/additive-groups/:id/additives", controllers.CreateAdditive)
			dashboard.PUT("/additives/:id", controllers.UpdateAdditive)
			dashboard.DELETE("/additives/:id", controllers.DeleteAdditive)

			dashboard.GET("/orders", controllers.ListOrders)
			dashboard.GET("/orders/board", controllers.GetOrderBoard)
			dashboard.GET("/orders/summary", controllers.GetOrdersSummary)
			dashboard.GET("/orders/:id", controllers.GetOrder)
			dashboard.PUT("/orders/:id/status", controllers.UpdateOrderStatus)

			dashboard.POST("/uploads/menu-image", controllers.UploadMenuImage)
		}
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Climb Delivery API is running",
	})
}

// databaseStatus checks database connectivity and returns table information
func databaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	var tables []string
	if err := db.Raw("SELECT tablename FROM pg_tables WHERE schemaname = 'public'").Scan(&tables).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
