package mpesaControllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/models"
)

// CallbackRequest is the Daraja result envelope. Unlike the push response,
// the callback carries ResultCode as a JSON number.
type CallbackRequest struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// ApplyResult settles the order linked to a CheckoutRequestID. Result code 0
// confirms, anything else fails. Re-applying the same result is a no-op with
// the same final state, so duplicate webhook deliveries are harmless. An
// unknown id is ignored.
func ApplyResult(db *gorm.DB, checkoutRequestID string, resultCode int) error {
	var order models.Order
	err := db.Where("mpesa_request_id = ?", checkoutRequestID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	status := models.OrderStatusFailed
	if resultCode == 0 {
		status = models.OrderStatusConfirmed
	}

	return db.Model(&models.Order{}).
		Where("mpesa_request_id = ?", checkoutRequestID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

// CallbackHandler receives the gateway's asynchronous payment result. The
// gateway retries on anything but a success acknowledgment, so processing
// failures are logged and swallowed.
func CallbackHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CallbackRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			log.Printf("❌ mpesa-callback: unreadable payload: %v", err)
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}

		cb := req.Body.StkCallback
		if err := ApplyResult(db, cb.CheckoutRequestID, cb.ResultCode); err != nil {
			log.Printf("❌ mpesa-callback: failed to apply result for %s: %v", cb.CheckoutRequestID, err)
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
