package config

import "os"

// Config holds everything the server reads from the environment.
type Config struct {
	AppPort       string
	DatabaseDSN   string
	SessionSecret string

	BaseURL  string
	Currency string

	// payment gateway
	GatewayURL           string
	GatewaySecretKey     string
	GatewayWebhookSecret string

	// optional stock check on add-to-cart
	ValidateStock bool
}

func Load() Config {
	return Config{
		AppPort:       get("APP_PORT", "8080"),
		DatabaseDSN:   get("DB_DSN", ""),
		SessionSecret: get("SESSION_SECRET", ""),

		BaseURL:  get("APP_BASE_URL", "http://localhost:8080"),
		Currency: get("CURRENCY", "usd"),

		GatewayURL:           get("PAYMENT_GATEWAY_URL", ""),
		GatewaySecretKey:     get("PAYMENT_SECRET_KEY", ""),
		GatewayWebhookSecret: get("PAYMENT_WEBHOOK_SECRET", ""),

		ValidateStock: get("STOCK_VALIDATION", "") == "on",
	}
}

func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
