package orderControllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/apperrors"
	"github.com/Kipngetichbrian48/car-parts-dropshipping/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	return db
}

type fakeMpesa struct {
	requestID string
	err       error

	gotOrderID string
	gotPhone   string
	gotAmount  float64
	calls      int
}

func (f *fakeMpesa) STKPush(ctx context.Context, orderID, phone string, amount float64) (string, error) {
	f.calls++
	f.gotOrderID = orderID
	f.gotPhone = phone
	f.gotAmount = amount
	return f.requestID, f.err
}

type fakePayPal struct {
	captured bool
	err      error
	gotID    string
}

func (f *fakePayPal) VerifyOrder(ctx context.Context, paypalOrderID string) (bool, error) {
	f.gotID = paypalOrderID
	return f.captured, f.err
}

func sampleRequest(method string) CreateOrderRequest {
	return CreateOrderRequest{
		Name:          "Jane Customer",
		Phone:         "254700000000",
		Address:       "12 Garage Lane, Nairobi",
		PaymentMethod: method,
		Cart: map[string]CartLine{
			"p1": {Title: "Oil Filter", Price: 10.00, Quantity: 2},
			"p2": {Title: "Air Filter", Price: 5.50, Quantity: 1},
		},
	}
}

func TestCreateOrderCOD(t *testing.T) {
	db := openTestDB(t)

	order, err := CreateOrder(context.Background(), db, nil, nil, sampleRequest("cod"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if _, err := uuid.Parse(order.OrderID); err != nil {
		t.Errorf("Expected a UUID order id, got %q", order.OrderID)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("Expected status %s, got %s", models.OrderStatusPending, order.Status)
	}
	if order.TotalAmount != 25.50 {
		t.Errorf("Expected total 25.50, got %.2f", order.TotalAmount)
	}

	var stored models.Order
	if err := db.Preload("Items").Where("order_id = ?", order.OrderID).First(&stored).Error; err != nil {
		t.Fatalf("Expected order to be persisted: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("Expected 2 snapshot items, got %d", len(stored.Items))
	}

	var derived float64
	for _, item := range stored.Items {
		derived += item.Price * float64(item.Quantity)
	}
	if derived != stored.TotalAmount {
		t.Errorf("Snapshot total %.2f does not match stored total %.2f", derived, stored.TotalAmount)
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := openTestDB(t)

	for _, method := range []string{"cod", "paypal", "mpesa"} {
		req := sampleRequest(method)
		req.Cart = map[string]CartLine{}
		_, err := CreateOrder(context.Background(), db, &fakeMpesa{}, &fakePayPal{}, req)
		if !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("method %s: expected validation error, got %v", method, err)
		}
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no orders persisted, got %d", count)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	db := openTestDB(t)

	cases := []struct {
		name   string
		mutate func(*CreateOrderRequest)
	}{
		{"missing name", func(r *CreateOrderRequest) { r.Name = "" }},
		{"missing phone", func(r *CreateOrderRequest) { r.Phone = "" }},
		{"missing address", func(r *CreateOrderRequest) { r.Address = "" }},
		{"bad method", func(r *CreateOrderRequest) { r.PaymentMethod = "bitcoin" }},
		{"zero quantity", func(r *CreateOrderRequest) {
			r.Cart["p1"] = CartLine{Title: "Oil Filter", Price: 10, Quantity: 0}
		}},
		{"negative price", func(r *CreateOrderRequest) {
			r.Cart["p1"] = CartLine{Title: "Oil Filter", Price: -1, Quantity: 1}
		}},
	}

	for _, tc := range cases {
		req := sampleRequest("cod")
		tc.mutate(&req)
		if _, err := CreateOrder(context.Background(), db, nil, nil, req); !errors.Is(err, apperrors.ErrValidation) {
			t.Errorf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestCreateOrderMpesaAccepted(t *testing.T) {
	db := openTestDB(t)
	gateway := &fakeMpesa{requestID: "ws_CO_123456"}

	order, err := CreateOrder(context.Background(), db, gateway, nil, sampleRequest("mpesa"))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if order.MpesaRequestID != "ws_CO_123456" {
		t.Errorf("Expected gateway request id to be stored, got %q", order.MpesaRequestID)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("Expected status Pending, got %s", order.Status)
	}
	if gateway.gotAmount != 25.50 {
		t.Errorf("Expected total 25.50 sent to gateway, got %.2f", gateway.gotAmount)
	}
	if gateway.gotOrderID != order.OrderID {
		t.Errorf("Expected order id %s sent to gateway, got %s", order.OrderID, gateway.gotOrderID)
	}
	if gateway.gotPhone != "254700000000" {
		t.Errorf("Expected customer phone sent to gateway, got %s", gateway.gotPhone)
	}
}

func TestCreateOrderMpesaRejected(t *testing.T) {
	db := openTestDB(t)
	gateway := &fakeMpesa{err: fmt.Errorf("m-pesa rejected push (1): insufficient funds")}

	_, err := CreateOrder(context.Background(), db, gateway, nil, sampleRequest("mpesa"))
	if !errors.Is(err, apperrors.ErrPaymentInitiation) {
		t.Fatalf("Expected payment initiation error, got %v", err)
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no order persisted after rejection, got %d", count)
	}
}

func TestCreateOrderPayPalVerified(t *testing.T) {
	db := openTestDB(t)
	verifier := &fakePayPal{captured: true}

	req := sampleRequest("paypal")
	req.PayPalOrderID = "5O190127TN364715T"

	order, err := CreateOrder(context.Background(), db, nil, verifier, req)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if order.Status != models.OrderStatusConfirmed {
		t.Errorf("Expected verified PayPal order to be Confirmed, got %s", order.Status)
	}
	if verifier.gotID != "5O190127TN364715T" {
		t.Errorf("Expected verification against the submitted PayPal id, got %q", verifier.gotID)
	}
}

func TestCreateOrderPayPalNotCaptured(t *testing.T) {
	db := openTestDB(t)
	verifier := &fakePayPal{captured: false}

	req := sampleRequest("paypal")
	req.PayPalOrderID = "5O190127TN364715T"

	_, err := CreateOrder(context.Background(), db, nil, verifier, req)
	if !errors.Is(err, apperrors.ErrPaymentInitiation) {
		t.Fatalf("Expected payment initiation error, got %v", err)
	}

	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no order persisted without a capture, got %d", count)
	}
}

func TestCreateOrderPayPalMissingID(t *testing.T) {
	db := openTestDB(t)

	req := sampleRequest("paypal")
	if _, err := CreateOrder(context.Background(), db, nil, &fakePayPal{captured: true}, req); !errors.Is(err, apperrors.ErrValidation) {
		t.Fatalf("Expected validation error without paypalOrderId, got %v", err)
	}
}

func newTrackRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/track-order/:id", TrackOrderHandler(db))
	return r
}

func TestTrackOrderInvalidID(t *testing.T) {
	db := openTestDB(t)
	// Drop the table to prove a malformed id never reaches storage.
	if err := db.Migrator().DropTable(&models.Order{}); err != nil {
		t.Fatalf("Failed to drop table: %v", err)
	}
	r := newTrackRouter(db)

	for _, id := range []string{"not-a-uuid", "1234", "5f2d6c3e", strings.Repeat("a", 36)} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/track-order/"+id, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("id %q: expected 400, got %d", id, w.Code)
		}
	}
}

func TestTrackOrderNotFound(t *testing.T) {
	db := openTestDB(t)
	r := newTrackRouter(db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/track-order/"+uuid.NewString(), nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown order, got %d", w.Code)
	}
}

func TestTrackOrderFound(t *testing.T) {
	db := openTestDB(t)
	order, err := CreateOrder(context.Background(), db, nil, nil, sampleRequest("cod"))
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	r := newTrackRouter(db)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/track-order/"+order.OrderID, nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool         `json:"success"`
		Order   models.Order `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("Expected success=true")
	}
	if resp.Order.OrderID != order.OrderID {
		t.Errorf("Expected order %s, got %s", order.OrderID, resp.Order.OrderID)
	}
	if len(resp.Order.Items) != 2 {
		t.Errorf("Expected cart snapshot in response, got %d items", len(resp.Order.Items))
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	db := openTestDB(t)
	order, err := CreateOrder(context.Background(), db, nil, nil, sampleRequest("cod"))
	if err != nil {
		t.Fatalf("Failed to create order: %v", err)
	}

	if err := UpdateOrderStatus(db, order.OrderID, models.OrderStatusConfirmed); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var stored models.Order
	db.Where("order_id = ?", order.OrderID).First(&stored)
	if stored.Status != models.OrderStatusConfirmed {
		t.Errorf("Expected Confirmed, got %s", stored.Status)
	}
	if !stored.UpdatedAt.After(stored.CreatedAt) {
		t.Error("Expected UpdatedAt to move on status transition")
	}

	if err := UpdateOrderStatus(db, order.OrderID, "shipped"); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("Expected validation error for out-of-enum status, got %v", err)
	}
	if err := UpdateOrderStatus(db, uuid.NewString(), models.OrderStatusFailed); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestComputeTotal(t *testing.T) {
	cart := map[string]CartLine{
		"p1": {Price: 10.00, Quantity: 2},
		"p2": {Price: 5.50, Quantity: 1},
	}
	if total := ComputeTotal(cart); total != 25.50 {
		t.Errorf("Expected 25.50, got %.2f", total)
	}
}
