package adminController

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/apperrors"
	"github.com/Kipngetichbrian48/car-parts-dropshipping/config"
	orderControllers "github.com/Kipngetichbrian48/car-parts-dropshipping/controllers/order"
	"github.com/Kipngetichbrian48/car-parts-dropshipping/models"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler checks the credentials against the configured admin account and
// issues a signed token valid for 24 hours.
func LoginHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		if cfg.AdminEmail == "" || cfg.AdminPassword == "" || cfg.JWTSecret == "" {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "admin login is not configured"})
			return
		}

		if req.Email != cfg.AdminEmail || req.Password != cfg.AdminPassword {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub": req.Email,
			"exp": time.Now().Add(24 * time.Hour).Unix(),
		})
		signed, err := token.SignedString([]byte(cfg.JWTSecret))
		if err != nil {
			log.Println("❌ Failed to sign admin token:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": signed})
	}
}

// GetAllOrdersHandler lists every order, newest first.
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database unavailable."})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatusHandler sets an order's status and broadcasts the change
// to the live order feed.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := orderControllers.UpdateOrderStatus(db, orderID, models.OrderStatus(req.Status)); err != nil {
			c.JSON(apperrors.StatusCode(err), gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.Preload("Items").Where("order_id = ?", orderID).First(&order).Error; err == nil {
			orderControllers.BroadcastOrder(order)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Println("❌ Failed to reload order for broadcast:", err)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}
