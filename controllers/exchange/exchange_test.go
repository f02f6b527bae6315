package exchangeControllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/config"
)

func newRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/exchange-rate", RateHandler(cfg))
	return r
}

func getRate(t *testing.T, r *gin.Engine, query string) (int, map[string]float64) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/exchange-rate"+query, nil)
	r.ServeHTTP(w, req)

	body := map[string]float64{}
	json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestRateUSDDefaultsToOne(t *testing.T) {
	// No provider URL configured: USD must never reach the provider.
	r := newRouter(config.Config{ExchangeRateAPIKey: "key"})

	code, body := getRate(t, r, "?currency=USD")
	if code != http.StatusOK || body["rate"] != 1 {
		t.Errorf("Expected rate 1 for USD, got code=%d body=%v", code, body)
	}

	code, body = getRate(t, r, "")
	if code != http.StatusOK || body["rate"] != 1 {
		t.Errorf("Expected rate 1 for missing currency, got code=%d body=%v", code, body)
	}
}

func TestRateMissingKeyDefaultsToOne(t *testing.T) {
	r := newRouter(config.Config{})

	code, body := getRate(t, r, "?currency=KES")
	if code != http.StatusOK || body["rate"] != 1 {
		t.Errorf("Expected rate 1 without provider key, got code=%d body=%v", code, body)
	}
}

func TestRateFromProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v6/test-key/latest/USD" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"conversion_rates": map[string]float64{"KES": 129.3, "EUR": 0.92},
		})
	}))
	defer srv.Close()

	r := newRouter(config.Config{ExchangeRateAPIKey: "test-key", ExchangeRateURL: srv.URL})

	code, body := getRate(t, r, "?currency=KES")
	if code != http.StatusOK || body["rate"] != 129.3 {
		t.Errorf("Expected provider rate 129.3, got code=%d body=%v", code, body)
	}

	// Unknown code falls back to 1.
	code, body = getRate(t, r, "?currency=XXX")
	if code != http.StatusOK || body["rate"] != 1 {
		t.Errorf("Expected rate 1 for unknown currency, got code=%d body=%v", code, body)
	}
}

func TestRateProviderFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	r := newRouter(config.Config{ExchangeRateAPIKey: "test-key", ExchangeRateURL: srv.URL})
	code, _ := getRate(t, r, "?currency=KES")
	if code != http.StatusBadGateway {
		t.Errorf("Expected 502 on provider failure, got %d", code)
	}
}
