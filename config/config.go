package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SnapshotStoreFile     = "file"
	SnapshotStoreRedis    = "redis"
	SnapshotStorePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	App      AppConfig
	Log      LogConfig
	Snapshot SnapshotConfig
	LogStore LogStoreConfig
	Analysis AnalysisConfig
	HTTP     HTTPConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// DatabaseConfig is the database/sql connection used by the analysis log.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// PostgresConfig is the pgx pool used by the postgres snapshot store.
type PostgresConfig struct {
	DSN      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	ServiceName string
}

type LogConfig struct {
	File       string
	Format     string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

type SnapshotConfig struct {
	Store       string
	FilePath    string
	Name        string
	RedisPrefix string
}

type LogStoreConfig struct {
	Enabled bool
}

type AnalysisConfig struct {
	StrictIDs bool
	HubDegree int
}

type HTTPConfig struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
}

type WorkerConfig struct {
	OutDir      string
	RefreshCron string
	DotBin      string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "navigara"),
		},
		Postgres: PostgresConfig{
			DSN:      getEnv("DB_DSN", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			ServiceName: getEnv("SERVICE_NAME", "navigara-backend"),
		},
		Log: LogConfig{
			File:       getEnv("LOG_FILE", ""),
			Format:     getEnv("LOG_FORMAT", "console"),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 5),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 2),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
			Compress:   getEnvAsBool("LOG_COMPRESS", false),
		},
		Snapshot: SnapshotConfig{
			Store:       strings.ToLower(getEnv("SNAPSHOT_STORE", SnapshotStoreFile)),
			FilePath:    getEnv("SNAPSHOT_FILE", "dummy_data_v2.json"),
			Name:        getEnv("SNAPSHOT_NAME", "default"),
			RedisPrefix: getEnv("SNAPSHOT_REDIS_PREFIX", "nakhoda:snapshot:"),
		},
		LogStore: LogStoreConfig{
			Enabled: getEnvAsBool("ANALYSIS_LOG_ENABLED", false),
		},
		Analysis: AnalysisConfig{
			StrictIDs: getEnvAsBool("ANALYSIS_STRICT_IDS", false),
			HubDegree: getEnvAsInt("DETECT_HUB_DEGREE", 4),
		},
		HTTP: HTTPConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
			RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 20),
			RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 40),
		},
		Worker: WorkerConfig{
			OutDir:      getEnv("WORKER_OUT_DIR", "out"),
			RefreshCron: getEnv("REFRESH_CRON", "0 0 0 * * *"),
			DotBin:      getEnv("DOT_BIN", ""),
		},
	}
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Snapshot.Store {
	case SnapshotStoreFile:
		if c.Snapshot.FilePath == "" {
			return fmt.Errorf("SNAPSHOT_FILE is required for the file snapshot store")
		}
	case SnapshotStoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis snapshot store")
		}
	case SnapshotStorePostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("DB_DSN is required for the postgres snapshot store")
		}
	default:
		return fmt.Errorf("unknown SNAPSHOT_STORE %q (want file, redis or postgres)", c.Snapshot.Store)
	}

	if c.LogStore.Enabled && c.Database.Host == "" {
		return fmt.Errorf("DB_HOST is required when ANALYSIS_LOG_ENABLED is set")
	}

	if c.HTTP.RateLimitRPS <= 0 || c.HTTP.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

// getEnvAsList splits a comma separated value, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
