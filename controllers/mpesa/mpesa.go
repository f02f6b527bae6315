package mpesaControllers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/Kipngetichbrian48/car-parts-dropshipping/apperrors"
	"github.com/Kipngetichbrian48/car-parts-dropshipping/config"
)

// Client talks to the Daraja STK push API. The access token is fetched per
// call rather than cached; order volume is low enough that the extra auth
// round-trip is acceptable.
type Client struct {
	consumerKey    string
	consumerSecret string
	shortcode      string
	passkey        string
	baseURL        string
	callbackURL    string
	http           *http.Client

	// now is swapped out in tests to pin the password timestamp.
	now func() time.Time
}

// NewClient validates the gateway credentials up front so a misconfigured
// deployment fails before any push is attempted.
func NewClient(cfg config.Config) (*Client, error) {
	if cfg.MpesaConsumerKey == "" || cfg.MpesaConsumerSecret == "" ||
		cfg.MpesaShortcode == "" || cfg.MpesaPasskey == "" {
		return nil, fmt.Errorf("%w: M-Pesa credentials", apperrors.ErrConfiguration)
	}
	return &Client{
		consumerKey:    cfg.MpesaConsumerKey,
		consumerSecret: cfg.MpesaConsumerSecret,
		shortcode:      cfg.MpesaShortcode,
		passkey:        cfg.MpesaPasskey,
		baseURL:        cfg.MpesaBaseURL,
		callbackURL:    cfg.MpesaCallbackURL,
		http:           &http.Client{Timeout: 15 * time.Second},
		now:            time.Now,
	}, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// AccessToken performs the client-credentials exchange.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	url := c.baseURL + "/oauth/v1/generate?grant_type=client_credentials"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(c.consumerKey + ":" + c.consumerSecret))
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach M-Pesa auth: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("m-pesa auth error (%d): %s", resp.StatusCode, string(body))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("failed to parse M-Pesa auth response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("m-pesa auth returned empty token")
	}
	return tok.AccessToken, nil
}

type stkPushResponse struct {
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	MerchantRequestID   string `json:"MerchantRequestID"`
}

// STKPush asks the gateway to prompt the customer's phone for payment.
// The amount is rounded to a whole currency unit; Daraja rejects fractions.
// On acceptance it returns the gateway's CheckoutRequestID, which later links
// the asynchronous callback back to the order.
func (c *Client) STKPush(ctx context.Context, orderID, phone string, amount float64) (string, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return "", err
	}

	ts := c.now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString([]byte(c.shortcode + c.passkey + ts))

	payload := map[string]interface{}{
		"BusinessShortCode": c.shortcode,
		"Password":          password,
		"Timestamp":         ts,
		"TransactionType":   "CustomerPayBillOnline",
		"Amount":            int(math.Round(amount)),
		"PartyA":            phone,
		"PartyB":            c.shortcode,
		"PhoneNumber":       phone,
		"CallBackURL":       c.callbackURL,
		"AccountReference":  orderID,
		"TransactionDesc":   "Payment for car parts",
	}

	jsonData, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/mpesa/stkpush/v1/processrequest", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach M-Pesa: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("m-pesa API error (%d): %s", resp.StatusCode, string(body))
	}

	var push stkPushResponse
	if err := json.Unmarshal(body, &push); err != nil {
		return "", fmt.Errorf("failed to parse M-Pesa response: %w", err)
	}

	// Daraja returns ResponseCode as a JSON string; "0" means accepted.
	if push.ResponseCode != "0" {
		return "", fmt.Errorf("m-pesa rejected push (%s): %s", push.ResponseCode, push.ResponseDescription)
	}
	if push.CheckoutRequestID == "" {
		return "", fmt.Errorf("m-pesa accepted push but returned no CheckoutRequestID")
	}
	return push.CheckoutRequestID, nil
}

type stkQueryResponse struct {
	ResponseCode string `json:"ResponseCode"`
	ResultCode   string `json:"ResultCode"`
	ResultDesc   string `json:"ResultDesc"`
}

// STKQuery asks the gateway for the outcome of an earlier push. It returns
// (resultCode, true) once the gateway has a definitive answer, or ok=false
// while the transaction is still being processed.
func (c *Client) STKQuery(ctx context.Context, checkoutRequestID string) (int, bool, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return 0, false, err
	}

	ts := c.now().Format("20060102150405")
	password := base64.StdEncoding.EncodeToString([]byte(c.shortcode + c.passkey + ts))

	payload := map[string]interface{}{
		"BusinessShortCode": c.shortcode,
		"Password":          password,
		"Timestamp":         ts,
		"CheckoutRequestID": checkoutRequestID,
	}

	jsonData, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/mpesa/stkpushquery/v1/query", bytes.NewBuffer(jsonData))
	if err != nil {
		return 0, false, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, false, fmt.Errorf("failed to reach M-Pesa query: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		// The gateway answers non-200 while the push is still in flight.
		return 0, false, nil
	}

	var q stkQueryResponse
	if err := json.Unmarshal(body, &q); err != nil {
		return 0, false, fmt.Errorf("failed to parse M-Pesa query response: %w", err)
	}
	if q.ResultCode == "" {
		return 0, false, nil
	}

	var code int
	if _, err := fmt.Sscanf(q.ResultCode, "%d", &code); err != nil {
		return 0, false, fmt.Errorf("unexpected M-Pesa result code %q", q.ResultCode)
	}
	return code, true, nil
}
