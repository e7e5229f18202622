package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Museum   MuseumConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	Provider string // "ollama" or "openai"
	Model    string // e.g. "llama3", "qwen2.5"
	BaseURL  string // provider endpoint; empty uses the provider default
	APIKey   string // hosted providers only
	Timeout  time.Duration
}

type MuseumConfig struct {
	KnowledgePath string
	Timezone      string
	JobTopic      string
	StopPause     time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			Provider: getEnv("LLM_PROVIDER", "ollama"),
			Model:    getEnv("LLM_MODEL", "llama3"),
			BaseURL:  getEnv("LLM_BASE_URL", ""),
			APIKey:   getEnv("LLM_API_KEY", ""),
			Timeout:  time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 180)) * time.Second,
		},
		Museum: MuseumConfig{
			KnowledgePath: getEnv("MUSEUM_KNOWLEDGE_PATH", "museum_knowledge.json"),
			Timezone:      getEnv("MUSEUM_TIMEZONE", "America/Guayaquil"),
			JobTopic:      getEnv("GENERATION_TOPIC_NAME", "GENERATE_STOP_CONTENT"),
			StopPause:     time.Duration(getEnvAsInt("GENERATION_STOP_PAUSE_SECONDS", 2)) * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
