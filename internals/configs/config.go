package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	JWTExpiry        time.Duration
	JWTRefreshExpiry time.Duration

	GoogleClientID string

	UploadDir     string
	MaxUploadSize int64

	RateLimitMax    int
	RateLimitWindow time.Duration

	CORSAllowOrigins string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] no .env file, using system ENV")
		}
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	JWTExpiry = GetEnvDuration("JWT_EXPIRY", 15*time.Minute)
	JWTRefreshExpiry = GetEnvDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour)

	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")

	UploadDir = GetEnv("UPLOAD_DIR", "./uploads")
	MaxUploadSize = GetEnvInt64("MAX_UPLOAD_SIZE", 20<<20)

	RateLimitMax = GetEnvInt("RATE_LIMIT_MAX", 100)
	RateLimitWindow = GetEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute)

	CORSAllowOrigins = GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")

	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET is not set")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func GetEnvInt64(key string, def int64) int64 {
	if v, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return v
	}
	return def
}

func GetEnvDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}
