package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	MongoURI     string
	DatabaseName string
	Origin       string
	JWTSecret    string
	Timeout      time.Duration

	// Payment gateway
	MerchantID        string
	MerchantKey       string
	MerchantBaseURL   string
	MerchantStatusURL string
	RedirectURL       string
	SuccessURL        string
	FailureURL        string

	// SMTP
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		if os.IsNotExist(err) {
			// .env file not found, proceed with environment values
		} else {
			panic("Error loading .env file")
		}
	}
	return Config{
		Port:         getEnv("PORT", "4000"),
		MongoURI:     getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		DatabaseName: getEnv("DATABASE_NAME", "campus_events"),
		Origin:       getEnv("ORIGIN", "http://localhost:5173"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		Timeout:      5 * time.Second,

		MerchantID:        getEnv("MERCHANT_ID", "PGTESTPAYUAT86"),
		MerchantKey:       getEnv("MERCHANT_KEY", ""),
		MerchantBaseURL:   getEnv("MERCHANT_BASE_URL", "https://api-preprod.phonepe.com/apis/pg-sandbox/pg/v1/pay"),
		MerchantStatusURL: getEnv("MERCHANT_STATUS_URL", "https://api-preprod.phonepe.com/apis/pg-sandbox/pg/v1/status"),
		RedirectURL:       getEnv("REDIRECT_URL", "http://localhost:4000/status"),
		SuccessURL:        getEnv("SUCCESS_URL", "http://localhost:5173/payment-success"),
		FailureURL:        getEnv("FAILURE_URL", "http://localhost:5173/payment-failure"),

		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
