package mpesaControllers

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/models"
)

// StartReconciler polls the gateway for M-Pesa orders stuck in Pending. The
// callback is fire-and-forget on the gateway side, so a lost webhook would
// otherwise leave an order Pending forever. Runs until the process exits.
func StartReconciler(db *gorm.DB, client *Client, interval, pendingAge time.Duration) {
	for {
		time.Sleep(interval)
		ReconcilePending(db, client, pendingAge)
	}
}

// ReconcilePending settles every mpesa order that has been Pending longer
// than pendingAge, using the same transition as the callback handler.
func ReconcilePending(db *gorm.DB, client *Client, pendingAge time.Duration) {
	cutoff := time.Now().Add(-pendingAge)

	var orders []models.Order
	if err := db.
		Where("payment_method = ? AND status = ? AND created_at < ?",
			models.PaymentMethodMpesa, models.OrderStatusPending, cutoff).
		Find(&orders).Error; err != nil {
		log.Printf("❌ reconciler: failed to list pending orders: %v", err)
		return
	}

	for _, order := range orders {
		if order.MpesaRequestID == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		resultCode, settled, err := client.STKQuery(ctx, order.MpesaRequestID)
		cancel()
		if err != nil {
			log.Printf("❌ reconciler: query failed for order %s: %v", order.OrderID, err)
			continue
		}
		if !settled {
			continue
		}

		if err := ApplyResult(db, order.MpesaRequestID, resultCode); err != nil {
			log.Printf("❌ reconciler: failed to settle order %s: %v", order.OrderID, err)
			continue
		}
		log.Printf("✅ reconciler: settled order %s (result code %d)", order.OrderID, resultCode)
	}
}
