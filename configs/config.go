package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

var loadEnv sync.Once

// Config returns the value of an environment variable, loading .env once.
func Config(key string) string {
	loadEnv.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})

	return os.Getenv(key)
}

type Settings struct {
	Port        string
	DatabaseURL string
	JWTSecret   string

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
	Currency          string

	ReceiptPrefix     string
	SchoolName        string
	SchoolAffiliation string
	SchoolAddress     string
	CloudinaryURL     string
	LogoPublicID      string

	LedgerMaxRetries int

	LogLevel  string
	LogPretty bool

	AdminUsername string
	AdminPassword string
	AdminName     string
}

func Load() Settings {
	return Settings{
		Port:        withDefault("PORT", "8080"),
		DatabaseURL: Config("DATABASE_URL"),
		JWTSecret:   Config("JWT_SECRET"),

		RazorpayKeyID:     Config("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: Config("RAZORPAY_KEY_SECRET"),
		RazorpayBaseURL:   withDefault("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
		Currency:          withDefault("PAYMENT_CURRENCY", "INR"),

		ReceiptPrefix:     withDefault("RECEIPT_PREFIX", "TPS"),
		SchoolName:        withDefault("SCHOOL_NAME", "Tagore Public School"),
		SchoolAffiliation: withDefault("SCHOOL_AFFILIATION", "Affiliated to HBSE"),
		SchoolAddress:     withDefault("SCHOOL_ADDRESS", "City, State - PIN"),
		CloudinaryURL:     Config("CLOUDINARY_URL"),
		LogoPublicID:      withDefault("SCHOOL_LOGO_PUBLIC_ID", "school-logo"),

		LedgerMaxRetries: intWithDefault("LEDGER_MAX_RETRIES", 3),

		LogLevel:  withDefault("LOG_LEVEL", "info"),
		LogPretty: Config("LOG_PRETTY") == "true",

		AdminUsername: Config("ADMIN_USERNAME"),
		AdminPassword: Config("ADMIN_PASSWORD"),
		AdminName:     withDefault("ADMIN_NAME", "School Admin"),
	}
}

func withDefault(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}

func intWithDefault(key string, fallback int) int {
	v := Config(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		log.Printf("Warning: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
