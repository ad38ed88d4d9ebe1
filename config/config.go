package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"mindwell/utils"
)

type DatabaseConfig struct {
	URI             string
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
	DatabaseName    string
	RetryWrites     bool
}

func (d DatabaseConfig) Settings() utils.MongoSettings {
	return utils.MongoSettings{
		URI:             d.URI,
		MaxPoolSize:     d.MaxPoolSize,
		MinPoolSize:     d.MinPoolSize,
		MaxConnIdleTime: d.MaxConnIdleTime,
		RetryWrites:     d.RetryWrites,
	}
}

type AuthConfig struct {
	JWTSecret         string
	TokenTTL          time.Duration
	Issuer            string
	MaxActiveSessions int
}

type InsightConfig struct {
	Generator    string // "stub" or "analyzer"
	LookbackDays int
	CacheTTL     time.Duration
}

type AppConfig struct {
	Env         string
	Port        string
	Storage     string // "mongo" or "memory"
	LogLevel    string
	LogFormat   string
	RedisURL    string
	CORSOrigins []string
	ExtraMoods  []string

	Database DatabaseConfig
	Auth     AuthConfig
	Insights InsightConfig
}

func (c AppConfig) IsTest() bool {
	return c.Env == "test"
}

func LoadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URI:             utils.GetEnvAsString("MONGO_URI", "mongodb://localhost:27017"),
		MaxPoolSize:     utils.GetEnvAsUint64("MONGO_MAX_POOL_SIZE", 100),
		MinPoolSize:     utils.GetEnvAsUint64("MONGO_MIN_POOL_SIZE", 10),
		MaxConnIdleTime: utils.GetEnvAsDuration("MONGO_MAX_CONN_IDLE_TIME", 60*time.Second),
		DatabaseName:    utils.GetEnvAsString("MONGO_DB", "mindwell"),
		RetryWrites:     utils.GetEnvAsBool("MONGO_RETRY_WRITES", true),
	}
}

// Load reads .env (outside of tests) and then the process environment.
func Load() AppConfig {
	env := utils.GetEnvAsString("GO_ENV", "development")
	if env != "test" {
		if err := godotenv.Load(); err != nil {
			utils.Logger.Debug("no .env file, using process environment")
		}
	}

	return AppConfig{
		Env:         env,
		Port:        utils.GetEnvAsString("PORT", "8000"),
		Storage:     strings.ToLower(utils.GetEnvAsString("STORAGE_BACKEND", "mongo")),
		LogLevel:    utils.GetEnvAsString("LOG_LEVEL", "info"),
		LogFormat:   utils.GetEnvAsString("LOG_FORMAT", "text"),
		RedisURL:    os.Getenv("REDIS_URL"),
		CORSOrigins: utils.GetEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		ExtraMoods:  utils.GetEnvAsList("EXTRA_MOODS", nil),
		Database:    LoadDatabaseConfig(),
		Auth: AuthConfig{
			JWTSecret:         utils.GetEnvAsString("JWT_SECRET_KEY", ""),
			TokenTTL:          utils.GetEnvAsDuration("JWT_EXPIRATION_TIME", 24*time.Hour),
			Issuer:            "mindwell",
			MaxActiveSessions: utils.GetEnvAsInt("MAX_ACTIVE_SESSIONS", 5),
		},
		Insights: InsightConfig{
			Generator:    strings.ToLower(utils.GetEnvAsString("INSIGHT_GENERATOR", "analyzer")),
			LookbackDays: utils.GetEnvAsInt("INSIGHT_LOOKBACK_DAYS", 30),
			CacheTTL:     utils.GetEnvAsDuration("INSIGHT_CACHE_TTL", 10*time.Minute),
		},
	}
}
