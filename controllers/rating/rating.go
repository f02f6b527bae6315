package ratingControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/models"
)

type SubmitRatingRequest struct {
	ProductID string `json:"productId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// SubmitRatingHandler appends a product rating.
// URL: POST /submit-rating
func SubmitRatingHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitRatingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload."})
			return
		}
		if req.ProductID == "" || req.Rating == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields."})
			return
		}

		rating := models.Rating{
			ProductID: req.ProductID,
			Rating:    req.Rating,
			Comment:   req.Comment,
		}
		if err := db.Create(&rating).Error; err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database unavailable."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
