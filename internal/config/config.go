package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"todo_webapp/internal/logger"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	// Registration is restricted to emails ending in this suffix.
	AllowedEmailDomain string

	// Origin allowed for CORS and websocket upgrades. Empty allows any
	// origin (development).
	AllowedOrigin string

	TokenTTL   time.Duration
	BcryptCost int

	// Rate limits (fixed window)
	APIRateLimit   int
	APIRateWindow  time.Duration
	AuthRateLimit  int
	AuthRateWindow time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Load reads configuration from the environment (with .env support).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	domain := os.Getenv("ALLOWED_EMAIL_DOMAIN")
	if domain == "" {
		domain = "@gmail.com"
	}
	if !strings.HasPrefix(domain, "@") {
		domain = "@" + domain
	}

	tokenTTL := 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			tokenTTL = time.Duration(n) * time.Hour
		}
	}

	bcryptCost := bcrypt.DefaultCost
	if v := os.Getenv("BCRYPT_COST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= bcrypt.MinCost && n <= bcrypt.MaxCost {
			bcryptCost = n
		}
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:            port,
		DatabaseURL:        dbURL,
		JWTSecret:          jwtSecret,
		AllowedEmailDomain: domain,
		AllowedOrigin:      os.Getenv("ALLOWED_ORIGIN"),
		TokenTTL:           tokenTTL,
		BcryptCost:         bcryptCost,
		APIRateLimit:       intEnv("API_RATE_LIMIT", 60),
		APIRateWindow:      windowEnv("API_RATE_WINDOW_SECONDS", time.Minute),
		AuthRateLimit:      intEnv("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:     windowEnv("AUTH_RATE_WINDOW_SECONDS", time.Minute),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		RedisDB:            redisDB,
	}
}

func intEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func windowEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return def
}
