package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/catalog"
	"github.com/Kipngetichbrian48/car-parts-dropshipping/config"
	exchangeControllers "github.com/Kipngetichbrian48/car-parts-dropshipping/controllers/exchange"
	productcontroller "github.com/Kipngetichbrian48/car-parts-dropshipping/controllers/product"
	ratingControllers "github.com/Kipngetichbrian48/car-parts-dropshipping/controllers/rating"
)

// SetupStorefrontRoutes registers the public catalog endpoints.
func SetupStorefrontRoutes(r *gin.Engine, db *gorm.DB, cat *catalog.Catalog, cfg config.Config) {
	// Catalog with categories
	r.GET("/", productcontroller.GetStorefront(cat))

	// Single product with its ratings
	r.GET("/product/:id", productcontroller.GetProductByID(cat, db))

	// Append a product rating
	r.POST("/submit-rating", ratingControllers.SubmitRatingHandler(db))

	// Currency conversion for the client-side price display
	r.GET("/api/exchange-rate", exchangeControllers.RateHandler(cfg))
}
