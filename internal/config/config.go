// Package config assembles the runtime settings of the API from the environment.
package config

import (
	"time"

	"tour_sales_backend/pkg/utils"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	DB     DBConfig
	Redis  RedisConfig
	Auth   AuthConfig
	CORS   CORSConfig
	Log    LogConfig
	Report ReportConfig
}

type DBConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SSLMode    string
	SchemaPath string
}

// RedisConfig is optional: an empty Address disables the report cache.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret      string
	TokenTTL       time.Duration
	LoginRateLimit string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

type ReportConfig struct {
	CacheTTL time.Duration
}

// Load reads .env when present and then the process environment.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		utils.LogDebug("No .env file found, using environment variables")
	}

	origins := utils.SplitList(utils.Getenv("CORS_ALLOWED_ORIGINS", ""))
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	return Config{
		Port: utils.Getenv("PORT", "8080"),
		DB: DBConfig{
			Host:       utils.Getenv("DB_HOST", "localhost"),
			Port:       utils.Getenv("DB_PORT", "5432"),
			User:       utils.Getenv("DB_USER", "tour_sales"),
			Password:   utils.Getenv("DB_PASSWORD", "tour_sales"),
			Name:       utils.Getenv("DB_NAME", "tour_sales"),
			SSLMode:    utils.Getenv("DB_SSLMODE", "disable"),
			SchemaPath: utils.Getenv("DB_SCHEMA_PATH", ""),
		},
		Redis: RedisConfig{
			Address:  utils.Getenv("REDIS_ADDRESS", ""),
			Password: utils.Getenv("REDIS_PASSWORD", ""),
			DB:       utils.GetenvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:      utils.Getenv("JWT_SECRET", "change-me-in-production"),
			TokenTTL:       utils.GetenvDuration("JWT_TTL", 12*time.Hour),
			LoginRateLimit: utils.Getenv("LOGIN_RATE_LIMIT", "10-M"),
		},
		CORS: CORSConfig{AllowedOrigins: origins},
		Log: LogConfig{
			Level:  utils.Getenv("LOG_LEVEL", "info"),
			Pretty: utils.GetenvBool("LOG_PRETTY", false),
		},
		Report: ReportConfig{
			CacheTTL: utils.GetenvDuration("REPORT_CACHE_TTL", 5*time.Minute),
		},
	}
}
