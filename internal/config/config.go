package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/execsgroup/zowehlife-sub005/pkg/database"
)

// Config zoweh-data (HTTP API) configuration.
type Config struct {
	HTTP struct {
		Addr string
	}
	DBEnabled bool
	Database  database.Config
	Redis     struct {
		Addr     string
		Password string
		DB       int
	}
	Log struct {
		Level  string
		Format string
	}
	Messenger MessengerConfig
	Reminder  ReminderConfig
}

// MessengerConfig settings for the email/SMS gateway client.
type MessengerConfig struct {
	BaseURL string // gateway address, e.g. "https://gateway.zoweh.local"
	APIKey  string
	Timeout time.Duration
}

// ReminderConfig settings for the follow-up reminder worker.
type ReminderConfig struct {
	Enabled  bool
	Interval time.Duration // how often the worker drains the due queue
	LeadTime time.Duration // how far before the appointment the leader is reminded
}

func Load() *Config {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	// Default to true for local dev: if DB is unavailable, zoweh-data
	// falls back to in-memory repos so admin pages are not empty.
	cfg.DBEnabled = getEnv("DB_ENABLED", "true") == "true"
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = parseInt(getEnv("DB_PORT", "5432"), 5432)
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.Database = getEnv("DB_NAME", "zoweh")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.MaxConns = parseInt(getEnv("DB_MAX_CONNS", "20"), 20)
	cfg.Database.MaxIdle = parseInt(getEnv("DB_MAX_IDLE", "5"), 5)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = 0

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	cfg.Messenger.BaseURL = getEnv("MESSENGER_BASE_URL", "")
	cfg.Messenger.APIKey = getEnv("MESSENGER_API_KEY", "")
	cfg.Messenger.Timeout = parseDuration(getEnv("MESSENGER_TIMEOUT", "15s"), 15*time.Second)

	cfg.Reminder.Enabled = getEnv("REMINDER_ENABLED", "true") == "true"
	cfg.Reminder.Interval = parseDuration(getEnv("REMINDER_INTERVAL", "30s"), 30*time.Second)
	cfg.Reminder.LeadTime = parseDuration(getEnv("REMINDER_LEAD_TIME", "24h"), 24*time.Hour)

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
