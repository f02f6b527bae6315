package exchangeControllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/config"
)

var httpClient = &http.Client{Timeout: 15 * time.Second}

type providerResponse struct {
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// RateHandler proxies the exchange-rate provider. USD is always 1, and a
// missing provider key falls back to 1 so the storefront keeps working in USD.
// URL: GET /api/exchange-rate?currency=CODE
func RateHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		currency := c.DefaultQuery("currency", "USD")
		if currency == "USD" || cfg.ExchangeRateAPIKey == "" {
			c.JSON(http.StatusOK, gin.H{"rate": 1})
			return
		}

		url := fmt.Sprintf("%s/v6/%s/latest/USD", cfg.ExchangeRateURL, cfg.ExchangeRateAPIKey)
		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, url, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed."})
			return
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed."})
			return
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed."})
			return
		}

		var rates providerResponse
		if err := json.Unmarshal(body, &rates); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed."})
			return
		}

		rate, ok := rates.ConversionRates[currency]
		if !ok {
			rate = 1
		}
		c.JSON(http.StatusOK, gin.H{"rate": rate})
	}
}
