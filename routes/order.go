package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mpesaControllers "github.com/Kipngetichbrian48/car-parts-dropshipping/controllers/mpesa"
	orderControllers "github.com/Kipngetichbrian48/car-parts-dropshipping/controllers/order"
)

// SetupOrderRoutes registers checkout, tracking, and the gateway webhook.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB,
	mpesa orderControllers.MpesaGateway, paypal orderControllers.PayPalVerifier) {

	// Create a new order (cod, paypal, mpesa)
	r.POST("/create-order", orderControllers.CreateOrderHandler(db, mpesa, paypal))

	// Look up a persisted order by its UUID
	r.GET("/track-order/:id", orderControllers.TrackOrderHandler(db))

	// Asynchronous payment result from the M-Pesa gateway
	r.POST("/mpesa-callback", mpesaControllers.CallbackHandler(db))
}
