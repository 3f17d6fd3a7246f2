// internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config collects everything the binaries read from the environment.
type Config struct {
	HTTPAddr    string
	DataDir     string
	StoreDriver string // file, postgres
	AMQPURL     string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	MockSender       bool

	SendTimeout     time.Duration
	SendConcurrency int
}

// Load reads .env (if present) and the environment. Absent Twilio
// credentials are not an error; the sender then reports every delivery as
// failed and messages collect in the outbox.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg := Config{
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		DataDir:          getenv("DATA_DIR", "./data"),
		StoreDriver:      getenv("STORE_DRIVER", "file"),
		AMQPURL:          os.Getenv("AMQP_URL"),
		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
		MockSender:       os.Getenv("MOCK_SENDER") == "true",
		SendTimeout:      15 * time.Second,
		SendConcurrency:  4,
	}

	if v := os.Getenv("SEND_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SendTimeout = d
		}
	}
	if v := os.Getenv("SEND_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SendConcurrency = n
		}
	}

	return cfg
}

// TwilioConfigured reports whether live sends are possible.
func (c Config) TwilioConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFromNumber != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
