package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	// Riot
	RiotAPIKey       string
	RiotRegion       string
	RiotClientID     string
	RiotClientSecret string
	RiotRedirectURI  string

	// Cached provider tokens are encrypted at rest with this 32-byte key
	// (hex-encoded in the environment).
	TokenEncryptionKey string

	// Sync job
	SyncCooldown  time.Duration
	SyncQueueSize int

	// Admin
	AdminEmails string

	// Server
	Port        string
	CORSOrigins string
	FrontendURL string
	AppEnv      string
	MockAuth    bool
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "sensilog"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "168h"), 168*time.Hour),

		RiotAPIKey:       getEnv("RIOT_API_KEY", ""),
		RiotRegion:       getEnv("RIOT_REGION", "ap"),
		RiotClientID:     getEnv("RIOT_CLIENT_ID", ""),
		RiotClientSecret: getEnv("RIOT_CLIENT_SECRET", ""),
		RiotRedirectURI:  getEnv("RIOT_REDIRECT_URI", "http://localhost:3000/auth/callback"),

		TokenEncryptionKey: getEnv("TOKEN_ENCRYPTION_KEY", ""),

		SyncCooldown:  parseDuration(getEnv("SYNC_COOLDOWN", "5m"), 5*time.Minute),
		SyncQueueSize: parseInt(getEnv("SYNC_QUEUE_SIZE", "64"), 64),

		AdminEmails: getEnv("ADMIN_EMAILS", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		AppEnv:      getEnv("APP_ENV", "development"),
		MockAuth:    getEnv("ENABLE_MOCK_AUTH", "") == "true",
	}
}

// IsDevelopment reports whether mock auth and mock data generation are allowed.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv != "production" || c.MockAuth
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
