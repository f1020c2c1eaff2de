package config

import (
	"fmt"
	"os"
)

// Config is the whole application configuration, read from env.
type Config struct {
	Port string

	JWTSecret string

	GoEnv string // dev/prod

	// absolute base URL of the public storefront, used for QR codes and
	// WhatsApp share links
	PublicBaseURL string

	// directory where generated QR PNGs are written
	QRDir string

	// payment gateways; an empty URL switches the client to simulated
	// success, the same stance the original integrations took
	MobileMoneyAPIURL string
	MobileMoneyAPIKey string
	CardAPIURL        string
	CardAPIKey        string

	// SMS provider (HTTP API); empty URL means log-only delivery
	SMSAPIURL string
	SMSAPIKey string
	SMSSender string

	// SES email channel; empty sender means log-only delivery
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	SenderEmail        string
}

// Load reads and validates the environment.
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv: os.Getenv("GO_ENV"),

		PublicBaseURL: os.Getenv("PUBLIC_BASE_URL"),
		QRDir:         getenv("QR_DIR", "static/qr"),

		MobileMoneyAPIURL: os.Getenv("MOBILE_MONEY_API_URL"),
		MobileMoneyAPIKey: os.Getenv("MOBILE_MONEY_API_KEY"),
		CardAPIURL:        os.Getenv("CARD_API_URL"),
		CardAPIKey:        os.Getenv("CARD_API_KEY"),

		SMSAPIURL: os.Getenv("SMS_API_URL"),
		SMSAPIKey: os.Getenv("SMS_API_KEY"),
		SMSSender: getenv("SMS_SENDER", "DJAAPP"),

		AWSRegion:          getenv("AWS_REGION", "eu-west-1"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		SenderEmail:        os.Getenv("SENDER_EMAIL"),
	}

	//required
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.GoEnv == "" {
		return Config{}, fmt.Errorf("GO_ENV is required")
	}
	if cfg.PublicBaseURL == "" {
		return Config{}, fmt.Errorf("PUBLIC_BASE_URL is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
