package config

import (
	"os"
	"strings"
	"time"
)

const (
	// ModeMock keeps every store in process memory and accepts any login.
	ModeMock = "mock"
	// ModeLive wires PostgreSQL, MongoDB, Redis and MinIO.
	ModeLive = "live"
)

// Config holds all service configuration loaded from environment variables.
type Config struct {
	Port           string
	Mode           string
	PostgresDSN    string
	MongoURI       string
	MongoDB        string
	RedisAddr      string
	RedisPassword  string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	AdminUsername  string
	AdminPassword  string
	AuthDelay      time.Duration
	CORSOrigins    []string
	LogLevel       string
	LogJSON        bool
}

func Load() *Config {
	return &Config{
		Port:           getenv("PORT", "8080"),
		Mode:           getenv("MODE", ModeMock),
		PostgresDSN:    getenv("POSTGRES_DSN", ""),
		MongoURI:       getenv("MONGO_URI", ""),
		MongoDB:        getenv("MONGO_DB", "coinlist"),
		RedisAddr:      getenv("REDIS_ADDR", "redis:6379"),
		RedisPassword:  getenv("REDIS_PASSWORD", ""),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "minio:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "coin-logos"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
		AdminUsername:  getenv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getenv("ADMIN_PASSWORD", "password"),
		AuthDelay:      getduration("AUTH_DELAY", time.Second),
		CORSOrigins:    getlist("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		LogJSON:        getenv("LOG_JSON", "false") == "true",
	}
}

// Live reports whether the external stores should be used.
func (c *Config) Live() bool {
	return c.Mode == ModeLive
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getduration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getenv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}

func getlist(key, fallback string) []string {
	var out []string
	for _, s := range strings.Split(getenv(key, fallback), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
