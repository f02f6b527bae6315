package productcontroller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/catalog"
	"github.com/Kipngetichbrian48/car-parts-dropshipping/models"
)

// GetStorefront returns the full catalog plus its category list.
// URL: GET /
func GetStorefront(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"products":   cat.Products(),
			"categories": cat.Categories(),
		})
	}
}

// GetProductByID returns a single product with its ratings. A ratings lookup
// failure degrades to an empty list rather than hiding the product.
// URL param: /product/:id
func GetProductByID(cat *catalog.Catalog, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		product, ok := cat.FindByID(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found."})
			return
		}

		ratings := []models.Rating{}
		if err := db.Where("product_id = ?", id).Order("created_at DESC").Find(&ratings).Error; err != nil {
			log.Println("❌ Failed to fetch ratings:", err)
			ratings = []models.Rating{}
		}

		c.JSON(http.StatusOK, gin.H{"product": product, "ratings": ratings})
	}
}
