package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DB       DBConfig
	HTTP     HTTPConfig
	Telegram TelegramConfig
	Retry    RetryConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type HTTPConfig struct {
	Addr string
}

type TelegramConfig struct {
	Token       string // bot token for staff order notifications; empty disables the notifier
	StaffChatID int64  // chat that receives new-order messages
}

// RetryConfig bounds the read-path retry policy for lock-contended queries.
type RetryConfig struct {
	MaxAttempts int
	Backoff     time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	staffChat, _ := strconv.ParseInt(getEnv("STAFF_CHAT_ID", "0"), 10, 64)
	attempts, _ := strconv.Atoi(getEnv("READ_RETRY_ATTEMPTS", "3"))
	backoffMs, _ := strconv.Atoi(getEnv("READ_RETRY_BACKOFF_MS", "100"))

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "canteen"),
		},
		HTTP: HTTPConfig{
			Addr: getEnv("HTTP_ADDR", ":8080"),
		},
		Telegram: TelegramConfig{
			Token:       getEnv("STAFF_BOT_TOKEN", ""),
			StaffChatID: staffChat,
		},
		Retry: RetryConfig{
			MaxAttempts: attempts,
			Backoff:     time.Duration(backoffMs) * time.Millisecond,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
