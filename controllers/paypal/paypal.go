package paypalControllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/apperrors"
	"github.com/Kipngetichbrian48/car-parts-dropshipping/config"
)

// Client verifies PayPal orders server-side. The storefront's PayPal buttons
// create and capture the order in the browser; before an order is recorded as
// paid, the server re-queries PayPal for the capture status instead of taking
// the client's word for it.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	http         *http.Client
}

func NewClient(cfg config.Config) (*Client, error) {
	if cfg.PayPalClientID == "" || cfg.PayPalClientSecret == "" {
		return nil, fmt.Errorf("%w: PayPal credentials", apperrors.ErrConfiguration)
	}
	return &Client{
		clientID:     cfg.PayPalClientID,
		clientSecret: cfg.PayPalClientSecret,
		baseURL:      cfg.PayPalBaseURL,
		http:         &http.Client{Timeout: 15 * time.Second},
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// AccessToken performs the client-credentials exchange.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(c.clientID, c.clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach PayPal auth: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal auth error (%d): %s", resp.StatusCode, string(body))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("failed to parse PayPal auth response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("paypal auth returned empty token")
	}
	return tok.AccessToken, nil
}

type orderResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Amount struct {
			CurrencyCode string `json:"currency_code"`
			Value        string `json:"value"`
		} `json:"amount"`
	} `json:"purchase_units"`
}

// VerifyOrder re-queries PayPal for the given order id and reports whether
// the payment has been captured ("COMPLETED").
func (c *Client) VerifyOrder(ctx context.Context, paypalOrderID string) (bool, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return false, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v2/checkout/orders/"+url.PathEscape(paypalOrderID), nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to reach PayPal: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("paypal API error (%d): %s", resp.StatusCode, string(body))
	}

	var order orderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return false, fmt.Errorf("failed to parse PayPal order response: %w", err)
	}
	return order.Status == "COMPLETED", nil
}
