package models

import "time"

type OrderStatus string
type PaymentMethod string

const (
	// Order statuses
	OrderStatusPending   OrderStatus = "Pending"   // Order placed, payment not yet settled
	OrderStatusConfirmed OrderStatus = "Confirmed" // Payment settled
	OrderStatusFailed    OrderStatus = "Failed"    // Payment attempt failed

	// Payment methods
	PaymentMethodCOD    PaymentMethod = "cod"    // Cash on delivery
	PaymentMethodPayPal PaymentMethod = "paypal" // Captured via PayPal, verified server-side
	PaymentMethodMpesa  PaymentMethod = "mpesa"  // STK push, confirmed via callback
)

type Order struct {
	OrderID        string        `gorm:"primaryKey;type:VARCHAR(36)" json:"orderId"`
	Name           string        `gorm:"not null" json:"name"`
	Phone          string        `gorm:"not null" json:"phone"`
	Address        string        `gorm:"not null" json:"address"`
	PaymentMethod  PaymentMethod `gorm:"type:VARCHAR(10);not null" json:"paymentMethod"`
	Items          []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"cart"`
	TotalAmount    float64       `json:"totalAmount"`
	Status         OrderStatus   `gorm:"type:VARCHAR(20);default:'Pending';index" json:"status"`
	MpesaRequestID string        `gorm:"index" json:"mpesaRequestId,omitempty"` // gateway CheckoutRequestID, mpesa only
	PayPalOrderID  string        `json:"paypalOrderId,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

// OrderItem is a cart line frozen at submission time; later catalog or
// client-side cart changes never touch it.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   string  `gorm:"type:VARCHAR(36);index" json:"-"`
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}
