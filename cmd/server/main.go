package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"thriftpos-system/config"
	"thriftpos-system/internal/database"
	"thriftpos-system/internal/gateway/handlers"
	"thriftpos-system/internal/gateway/middleware"
	inventory "thriftpos-system/internal/services/inventory/handler"
	procurement "thriftpos-system/internal/services/procurement/handler"
	"thriftpos-system/internal/utils"
)

func main() {
	cfg := config.LoadConfig()

	if cfg.Auth.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}
	utils.SetJWTSecret(cfg.Auth.JWTSecret)

	db, err := database.NewConnection(cfg.DB.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database connected and migrated")

	redisClient := config.NewRedisClient(cfg.Redis)

	procurementSvc := procurement.NewProcurementHandler(db, redisClient)
	inventorySvc := inventory.NewInventoryHandler(db, redisClient)

	authHandler := handlers.NewAuthHTTPHandler(db, cfg.Auth.TokenTTL)
	procurementHandler := handlers.NewProcurementHTTPHandler(procurementSvc)
	inventoryHandler := handlers.NewInventoryHTTPHandler(inventorySvc)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.RateLimit())

	r.GET("/health", func(c *gin.Context) {
		if err := pingDB(db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "database": err.Error()})
			return
		}
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "redis": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	protected := v1.Group("")
	protected.Use(middleware.JWTAuth())

	orders := protected.Group("/purchase-orders")
	{
		orders.POST("", procurementHandler.CreatePurchaseOrder)
		orders.GET("", procurementHandler.ListPurchaseOrders)
		orders.GET("/:id", procurementHandler.GetPurchaseOrder)
		orders.PUT("/:id", procurementHandler.UpdateDraft)
		orders.POST("/:id/items", procurementHandler.AddItem)
		orders.PUT("/:id/items/:itemId", procurementHandler.UpdateItem)
		orders.DELETE("/:id/items/:itemId", procurementHandler.RemoveItem)
		orders.POST("/:id/submit", procurementHandler.Submit)
		orders.POST("/:id/approve", procurementHandler.Approve)
		orders.POST("/:id/cancel", procurementHandler.Cancel)
		orders.POST("/:id/close", procurementHandler.Close)
		orders.POST("/:id/receive", procurementHandler.ReceiveItems)
	}

	receiving := protected.Group("/receiving")
	{
		receiving.POST("/donations", procurementHandler.ReceiveDonation)
		receiving.GET("", procurementHandler.ListReceivingRecords)
		receiving.GET("/:id", procurementHandler.GetReceivingRecord)
	}

	protected.GET("/reorder-suggestions", procurementHandler.ReorderSuggestions)

	vendors := protected.Group("/vendors")
	{
		vendors.POST("", inventoryHandler.CreateVendor)
		vendors.GET("", inventoryHandler.ListVendors)
		vendors.GET("/:id", inventoryHandler.GetVendor)
		vendors.PUT("/:id", inventoryHandler.UpdateVendor)
	}

	products := protected.Group("/products")
	{
		products.POST("", inventoryHandler.CreateProduct)
		products.GET("", inventoryHandler.ListProducts)
		products.GET("/:id", inventoryHandler.GetProduct)
		products.PUT("/:id", inventoryHandler.UpdateProduct)
	}

	adjustments := protected.Group("/adjustments")
	{
		adjustments.POST("", inventoryHandler.CreateAdjustment)
		adjustments.GET("", inventoryHandler.ListAdjustments)
	}

	counts := protected.Group("/count-sessions")
	{
		counts.POST("", inventoryHandler.CreateCountSession)
		counts.GET("", inventoryHandler.ListCountSessions)
		counts.GET("/:id", inventoryHandler.GetCountSession)
		counts.PUT("/:id/items/:itemId", inventoryHandler.RecordCount)
		counts.POST("/:id/complete", inventoryHandler.CompleteCountSession)
	}

	reconciliations := protected.Group("/reconciliations")
	{
		reconciliations.GET("/:id", inventoryHandler.GetReconciliation)
		reconciliations.POST("/:id/decisions", inventoryHandler.ApproveVariances)
		reconciliations.POST("/:id/complete", inventoryHandler.CompleteReconciliation)
	}

	log.Printf("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func pingDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
