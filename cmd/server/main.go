package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/milkantri/inventory-service/internal/api"
	"github.com/milkantri/inventory-service/internal/config"
	"github.com/milkantri/inventory-service/internal/db"
	"github.com/milkantri/inventory-service/internal/logging"
	"github.com/milkantri/inventory-service/internal/migrate"
)

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	log.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("Inventory service starting")

	// Apply schema migrations before opening the pool
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrate.Up(ctx, cfg.DSN()); err != nil {
		log.Printf("[WARN] Schema migration failed at startup: %v", err)
	}
	cancel()

	// Initialize database connection (non-fatal; allow process to start for /live)
	database, err := db.NewDatabase(cfg)
	if err != nil {
		log.Printf("[WARN] Database initialization failed at startup: %v", err)
	}
	if database != nil {
		defer database.Close()
	}

	handler := api.NewHandler(database, cfg)
	router := setupRouter(handler, cfg)

	// Set up graceful shutdown
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}

func setupRouter(handler *api.Handler, cfg *config.Config) *gin.Engine {
	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(logging.JSONLogger())
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	// Health and readiness endpoints
	router.GET("/live", func(c *gin.Context) { c.Status(200) })
	router.GET("/ready", handler.Health)
	router.GET("/health", handler.Health)

	v1 := router.Group("/api/v1")
	{
		// Public auth endpoints
		v1.POST("/auth/login", handler.Login)
		v1.POST("/auth/seed-admin", handler.SeedAdmin)

		// Everything else requires a session token
		authed := v1.Group("")
		authed.Use(api.AuthMiddleware(cfg.JWTSecret))
		{
			authed.GET("/products", handler.GetProducts)
			authed.GET("/products/:id", handler.GetProduct)

			authed.GET("/allotments", handler.GetAllotments)
			authed.PATCH("/allotments/:id/status", handler.UpdateAllotmentStatus)
			authed.POST("/allotments/:id/return", handler.ReturnAllotment)

			authed.GET("/distributions", handler.GetDistributions)
			authed.GET("/distributions/:id", handler.GetDistribution)
			authed.POST("/distributions", handler.CreateDistribution)
			authed.PUT("/distributions/:id", handler.UpdateDistribution)
			authed.DELETE("/distributions/:id", handler.DeleteDistribution)

			// Distributor self-service
			my := authed.Group("")
			my.Use(api.DistributorMiddleware())
			{
				my.GET("/allotments/my", handler.GetMyAllotments)
			}

			// Protected admin endpoints
			admin := authed.Group("")
			admin.Use(api.AdminMiddleware())
			{
				admin.POST("/products", handler.CreateProduct)
				admin.PUT("/products/:id", handler.UpdateProduct)
				admin.DELETE("/products/:id", handler.DeleteProduct)

				admin.GET("/distributors", handler.GetDistributors)
				admin.POST("/distributors", handler.CreateDistributor)
				admin.GET("/distributors/:id", handler.GetDistributor)
				admin.PUT("/distributors/:id", handler.UpdateDistributor)
				admin.DELETE("/distributors/:id", handler.DeleteDistributor)

				admin.POST("/allotments", handler.CreateAllotment)

				admin.POST("/inventory/reset", handler.ResetInventory)
				admin.GET("/dashboard/summary", handler.GetInventorySummary)
			}
		}
	}

	// Root endpoint for basic info
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "inventory-service",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	return router
}

// corsMiddleware adds CORS headers to allow cross-origin requests
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
