package config

import "os"

// Config collects every environment-provided setting in one place so handlers
// never reach for os.Getenv themselves.
type Config struct {
	Port        string
	DatabaseURL string

	ProductsPath string

	MpesaConsumerKey    string
	MpesaConsumerSecret string
	MpesaShortcode      string
	MpesaPasskey        string
	MpesaBaseURL        string
	MpesaCallbackURL    string

	PayPalClientID     string
	PayPalClientSecret string
	PayPalBaseURL      string

	ExchangeRateAPIKey string
	ExchangeRateURL    string

	AdminEmail    string
	AdminPassword string
	JWTSecret     string
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the process environment. Missing payment credentials are not fatal
// here; the adapters report a configuration error at first use instead.
func Load() Config {
	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		ProductsPath: getEnv("PRODUCTS_PATH", "public/data/products.json"),

		MpesaConsumerKey:    os.Getenv("MPESA_CONSUMER_KEY"),
		MpesaConsumerSecret: os.Getenv("MPESA_CONSUMER_SECRET"),
		MpesaShortcode:      os.Getenv("MPESA_SHORTCODE"),
		MpesaPasskey:        os.Getenv("MPESA_PASSKEY"),
		MpesaBaseURL:        getEnv("MPESA_BASE_URL", "https://sandbox.safaricom.co.ke"),
		MpesaCallbackURL:    getEnv("MPESA_CALLBACK_URL", "https://braviem.vercel.app/mpesa-callback"),

		PayPalClientID:     os.Getenv("PAYPAL_CLIENT_ID"),
		PayPalClientSecret: os.Getenv("PAYPAL_CLIENT_SECRET"),
		PayPalBaseURL:      getEnv("PAYPAL_BASE_URL", "https://api-m.sandbox.paypal.com"),

		ExchangeRateAPIKey: os.Getenv("EXCHANGE_RATE_API_KEY"),
		ExchangeRateURL:    getEnv("EXCHANGE_RATE_URL", "https://v6.exchangerate-api.com"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
	}
}
