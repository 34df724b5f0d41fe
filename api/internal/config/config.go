package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	WebhookURL string

	TelegramBotToken string

	// YandexGPT
	YCAPIKey   string
	YCFolderID string
	GPTModel   string

	GPTTemperature float64
	GPTMaxTokens   int
	GPTTimeout     time.Duration

	// Gemini (опциональный альтернативный движок)
	GeminiAPIKey string
	GeminiModel  string

	RequestsPerHour int
	RequestsPerDay  int

	// Хранилище сессий: "memory" (по умолчанию) или "postgres"
	SessionBackend string
	DatabaseURL    string
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q не число, беру %d", k, v, def)
		return def
	}
	return n
}

func getEnvFloat(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: %s=%q не число, беру %g", k, v, def)
		return def
	}
	return f
}

// Load читает .env (если есть) и переменные окружения.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("config: .env не найден (%v), читаю окружение", err)
	}

	return &Config{
		Port:       getEnv("PORT", "8000"),
		WebhookURL: getEnv("WEBHOOK_URL", ""),

		TelegramBotToken: getEnv("BOT_TOKEN", ""),

		YCAPIKey:   getEnv("YC_API_KEY", ""),
		YCFolderID: getEnv("YC_FOLDER_ID", ""),
		GPTModel:   getEnv("GPT_MODEL", "yandexgpt-lite"),

		GPTTemperature: getEnvFloat("GPT_TEMPERATURE", 0.7),
		GPTMaxTokens:   getEnvInt("GPT_MAX_TOKENS", 2000),
		GPTTimeout:     time.Duration(getEnvInt("GPT_TIMEOUT_SECONDS", 30)) * time.Second,

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		RequestsPerHour: getEnvInt("GPT_REQUESTS_PER_HOUR", 10),
		RequestsPerDay:  getEnvInt("GPT_REQUESTS_PER_DAY", 50),

		SessionBackend: getEnv("SESSION_BACKEND", "memory"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
	}
}

// Validate проверяет минимум, без которого процесс не стартует.
// Отсутствие LLM-ключей не фатально: генератор ответит, что не настроен.
func (c *Config) Validate() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("BOT_TOKEN is not set")
	}
	if c.RequestsPerHour <= 0 || c.RequestsPerDay <= 0 {
		return fmt.Errorf("rate limits must be positive: per_hour=%d per_day=%d", c.RequestsPerHour, c.RequestsPerDay)
	}
	return nil
}

// YandexConfigured — есть ли креды для основного движка.
func (c *Config) YandexConfigured() bool {
	return c.YCAPIKey != "" && c.YCFolderID != ""
}
