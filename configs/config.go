package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	BackendBaseURL string
	RequestTimeout time.Duration
	DeliveryFee    float64
	SessionTTL     time.Duration
	SweepInterval  time.Duration
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8000/api/customer"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 15*time.Second),
		DeliveryFee:    getFloat("DELIVERY_FEE", 1500),
		SessionTTL:     getDuration("SESSION_TTL", 30*time.Minute),
		SweepInterval:  getDuration("SESSION_SWEEP_INTERVAL", 5*time.Minute),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid %s, using default", key)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid %s, using default", key)
	}
	return fallback
}
