// internal/app/router.go
package app

import (
	authHandler "garimoto-service/internal/handlers/auth"
	mediaHandler "garimoto-service/internal/handlers/media"
	salesHandler "garimoto-service/internal/handlers/sales"
	salespersonHandler "garimoto-service/internal/handlers/salesperson"
	storefrontHandler "garimoto-service/internal/handlers/storefront"
	vehicleHandler "garimoto-service/internal/handlers/vehicle"
	wsHandler "garimoto-service/internal/handlers/websocket"
	"garimoto-service/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthHandler        *authHandler.AuthHandler
	VehicleHandler     *vehicleHandler.VehicleHandler
	StorefrontHandler  *storefrontHandler.StorefrontHandler
	MediaHandler       *mediaHandler.MediaHandler
	SalespersonHandler *salespersonHandler.SalespersonHandler
	SalesHandler       *salesHandler.SalesHandler
	WSHandler          *wsHandler.WebSocketHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

func SetupRouter(r *gin.Engine, logger *zap.Logger, h *Handlers) {
	api := r.Group("/api/v1")

	// ==================== Health Check ====================
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "version": "1.0.0"})
	})

	// ==================== WebSocket ====================
	r.GET("/ws", h.WSHandler.HandleConnection)

	// ==================== Public Storefront ====================
	api.GET("/featured", h.StorefrontHandler.Featured)
	vehicles := api.Group("/vehicles")
	{
		vehicles.GET("", h.StorefrontHandler.List)
		vehicles.GET("/:id", h.StorefrontHandler.Detail)
		vehicles.GET("/:id/similar", h.StorefrontHandler.Similar)
		vehicles.POST("/:id/inquire", h.StorefrontHandler.Inquire)
	}

	// ==================== Public Auth Routes ====================
	authPublic := api.Group("/auth")
	{
		authPublic.POST("/login", h.AuthHandler.Login)
		authPublic.GET("/session", h.AuthHandler.Session)
	}

	// ==================== Authenticated Auth Routes ====================
	authProtected := api.Group("/auth")
	authProtected.Use(h.AuthMiddleware.Auth())
	{
		authProtected.POST("/logout", h.AuthHandler.Logout)
		authProtected.GET("/me", h.AuthHandler.Me)
		authProtected.PUT("/change-password", h.AuthHandler.ChangePassword)
	}

	// ==================== Admin Console ====================
	admin := api.Group("/admin")
	admin.Use(h.AuthMiddleware.AdminOnly()...)
	{
		// Inventory
		admin.GET("/vehicles", h.VehicleHandler.List)
		admin.POST("/vehicles", h.VehicleHandler.Create)
		admin.GET("/vehicles/:id", h.VehicleHandler.Get)
		admin.PUT("/vehicles/:id", h.VehicleHandler.Update)
		admin.DELETE("/vehicles/:id", h.VehicleHandler.Delete)

		// Lifecycle
		admin.POST("/vehicles/:id/sold", h.VehicleHandler.MarkSold)
		admin.PATCH("/vehicles/:id/status", h.VehicleHandler.SetStatus)

		// Images
		admin.POST("/vehicles/:id/images", h.MediaHandler.Upload)
		admin.DELETE("/vehicles/:id/images/:imageId", h.MediaHandler.Remove)
		admin.PUT("/vehicles/:id/images/:imageId/featured", h.MediaHandler.SetFeatured)

		// Staff
		admin.GET("/salespeople", h.SalespersonHandler.List)
		admin.POST("/salespeople", h.SalespersonHandler.Create)
		admin.GET("/salespeople/:id", h.SalespersonHandler.Get)
		admin.PUT("/salespeople/:id", h.SalespersonHandler.Update)
		admin.DELETE("/salespeople/:id", h.SalespersonHandler.Delete)

		// Reporting
		admin.GET("/sales", h.SalesHandler.History)
		admin.GET("/sales/monthly", h.SalesHandler.Monthly)
		admin.GET("/sales/revenue", h.SalesHandler.Revenue)
		admin.GET("/dashboard", h.SalesHandler.Dashboard)
		admin.GET("/ws/stats", h.WSHandler.GetStats)
	}
}
