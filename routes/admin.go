package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/config"
	adminController "github.com/Kipngetichbrian48/car-parts-dropshipping/controllers/admin"
	orderControllers "github.com/Kipngetichbrian48/car-parts-dropshipping/controllers/order"
	"github.com/Kipngetichbrian48/car-parts-dropshipping/middleware"
)

// SetupAdminRoutes registers the admin login and the token-protected order
// management endpoints.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.POST("/admin/login", adminController.LoginHandler(cfg))

	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAdminToken(cfg.JWTSecret))
	{
		// Fetch all orders, newest first
		admin.GET("/orders", adminController.GetAllOrdersHandler(db))

		// Live order feed
		admin.GET("/orders/ws", orderControllers.OrderFeedHandler)

		// Export orders as a spreadsheet
		admin.GET("/orders/export", adminController.ExportOrdersToExcel(db))

		// Update order status (e.g. after manual reconciliation)
		admin.PUT("/orders/:orderID/status", adminController.UpdateOrderStatusHandler(db))
	}
}
