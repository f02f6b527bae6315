package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/catalog"
	"github.com/Kipngetichbrian48/car-parts-dropshipping/config"
	orderControllers "github.com/Kipngetichbrian48/car-parts-dropshipping/controllers/order"
)

// SetupRoutes is the single entry‐point that wires up the storefront, order,
// and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cat *catalog.Catalog, cfg config.Config,
	mpesa orderControllers.MpesaGateway, paypal orderControllers.PayPalVerifier) {

	// Public storefront routes (catalog, ratings, exchange rate)
	SetupStorefrontRoutes(r, db, cat, cfg)

	// Checkout, tracking and the payment gateway callback
	SetupOrderRoutes(r, db, mpesa, paypal)

	// Admin routes (JWT-protected)
	SetupAdminRoutes(r, db, cfg)
}
