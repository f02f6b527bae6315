package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/apperrors"
	"github.com/Kipngetichbrian48/car-parts-dropshipping/models"
)

// MpesaGateway initiates a push payment and returns the gateway's checkout
// request id on acceptance.
type MpesaGateway interface {
	STKPush(ctx context.Context, orderID, phone string, amount float64) (string, error)
}

// PayPalVerifier reports whether a PayPal order has been captured.
type PayPalVerifier interface {
	VerifyOrder(ctx context.Context, paypalOrderID string) (bool, error)
}

// -------- Request Structs --------

type CartLine struct {
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type CreateOrderRequest struct {
	Name          string              `json:"name"`
	Phone         string              `json:"phone"`
	Address       string              `json:"address"`
	PaymentMethod string              `json:"paymentMethod"`
	Cart          map[string]CartLine `json:"cart"`
	PayPalOrderID string              `json:"paypalOrderId"`
}

// -------- Core Logic --------

func validate(req CreateOrderRequest) error {
	if req.Name == "" || req.Phone == "" || req.Address == "" {
		return fmt.Errorf("%w: name, phone and address are required", apperrors.ErrValidation)
	}
	if len(req.Cart) == 0 {
		return fmt.Errorf("%w: cart is empty", apperrors.ErrValidation)
	}
	for id, line := range req.Cart {
		if line.Quantity < 1 {
			return fmt.Errorf("%w: quantity for %s must be at least 1", apperrors.ErrValidation, id)
		}
		if line.Price < 0 {
			return fmt.Errorf("%w: price for %s must not be negative", apperrors.ErrValidation, id)
		}
	}
	switch models.PaymentMethod(req.PaymentMethod) {
	case models.PaymentMethodCOD, models.PaymentMethodPayPal, models.PaymentMethodMpesa:
		return nil
	default:
		return fmt.Errorf("%w: invalid payment method", apperrors.ErrValidation)
	}
}

// ComputeTotal sums price times quantity over the submitted cart.
func ComputeTotal(cart map[string]CartLine) float64 {
	var total float64
	for _, line := range cart {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

func snapshotItems(orderID string, cart map[string]CartLine) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(cart))
	for productID, line := range cart {
		items = append(items, models.OrderItem{
			OrderID:   orderID,
			ProductID: productID,
			Title:     line.Title,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}
	return items
}

// CreateOrder runs the checkout workflow: validate, total, branch on payment
// method, persist. For mpesa the gateway must accept the push before anything
// is stored; for paypal the capture is verified against PayPal first and the
// order lands Confirmed. COD orders are stored Pending immediately.
func CreateOrder(ctx context.Context, db *gorm.DB, mpesa MpesaGateway, paypal PayPalVerifier, req CreateOrderRequest) (models.Order, error) {
	if err := validate(req); err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		OrderID:       uuid.NewString(),
		Name:          req.Name,
		Phone:         req.Phone,
		Address:       req.Address,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		TotalAmount:   ComputeTotal(req.Cart),
		Status:        models.OrderStatusPending,
	}
	order.Items = snapshotItems(order.OrderID, req.Cart)

	switch order.PaymentMethod {
	case models.PaymentMethodMpesa:
		if mpesa == nil {
			return models.Order{}, fmt.Errorf("%w: M-Pesa is not configured", apperrors.ErrConfiguration)
		}
		requestID, err := mpesa.STKPush(ctx, order.OrderID, order.Phone, order.TotalAmount)
		if err != nil {
			if errors.Is(err, apperrors.ErrConfiguration) {
				return models.Order{}, err
			}
			return models.Order{}, fmt.Errorf("%w: %v", apperrors.ErrPaymentInitiation, err)
		}
		order.MpesaRequestID = requestID

	case models.PaymentMethodPayPal:
		if paypal == nil {
			return models.Order{}, fmt.Errorf("%w: PayPal is not configured", apperrors.ErrConfiguration)
		}
		if req.PayPalOrderID == "" {
			return models.Order{}, fmt.Errorf("%w: paypalOrderId is required", apperrors.ErrValidation)
		}
		captured, err := paypal.VerifyOrder(ctx, req.PayPalOrderID)
		if err != nil {
			return models.Order{}, fmt.Errorf("%w: %v", apperrors.ErrPaymentInitiation, err)
		}
		if !captured {
			return models.Order{}, fmt.Errorf("%w: PayPal order %s is not captured", apperrors.ErrPaymentInitiation, req.PayPalOrderID)
		}
		order.PayPalOrderID = req.PayPalOrderID
		order.Status = models.OrderStatusConfirmed
	}

	if err := db.Create(&order).Error; err != nil {
		return models.Order{}, fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	return order, nil
}

// -------- Handlers --------

// CreateOrderHandler is the POST /create-order endpoint.
func CreateOrderHandler(db *gorm.DB, mpesa MpesaGateway, paypal PayPalVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload."})
			return
		}

		order, err := CreateOrder(c.Request.Context(), db, mpesa, paypal, req)
		if err != nil {
			c.JSON(apperrors.StatusCode(err), gin.H{"error": err.Error()})
			return
		}

		BroadcastOrder(order)

		message := "Order placed with COD."
		switch order.PaymentMethod {
		case models.PaymentMethodMpesa:
			message = "M-Pesa initiated."
		case models.PaymentMethodPayPal:
			message = "Order placed with PayPal."
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "orderId": order.OrderID, "message": message})
	}
}

// TrackOrderHandler is the GET /track-order/:id endpoint. The id must look
// like a UUID before storage is consulted at all.
func TrackOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if _, err := uuid.Parse(id); err != nil || len(id) != 36 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID."})
			return
		}

		var order models.Order
		if err := db.Preload("Items").Where("order_id = ?", id).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Not found."})
				return
			}
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database unavailable."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
	}
}

// touchStatus is shared by admin status updates so UpdatedAt always moves with
// the status.
func touchStatus(db *gorm.DB, orderID string, status models.OrderStatus) error {
	return db.Model(&models.Order{}).Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// UpdateOrderStatus sets an order's status, stamping UpdatedAt. Used by the
// admin surface.
func UpdateOrderStatus(db *gorm.DB, orderID string, status models.OrderStatus) error {
	switch status {
	case models.OrderStatusPending, models.OrderStatusConfirmed, models.OrderStatusFailed:
	default:
		return fmt.Errorf("%w: invalid order status", apperrors.ErrValidation)
	}

	var order models.Order
	if err := db.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: order %s", apperrors.ErrNotFound, orderID)
		}
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}

	if err := touchStatus(db, orderID, status); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrStorageUnavailable, err)
	}
	return nil
}
