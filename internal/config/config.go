package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	Speech  SpeechConfig
	Ai      AIConfig
	Session SessionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type SpeechConfig struct {
	AsrURL string
	TtsURL string
}

type AIConfig struct {
	OllamaBaseURL   string
	OllamaModel     string
	DeepSeekBaseURL string
	DeepSeekModel   string
	DeepSeekAPIKey  string
	DefaultModel    string
	RequestTimeout  time.Duration
}

type SessionConfig struct {
	TTL time.Duration
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
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
		},
		Speech: SpeechConfig{
			AsrURL: getEnv("ASR_URL", "http://127.0.0.1:5001"),
			TtsURL: getEnv("TTS_URL", "http://127.0.0.1:5002"),
		},
		Ai: AIConfig{
			OllamaBaseURL:   getEnv("OLLAMA_BASE_URL", "http://127.0.0.1:11434"),
			OllamaModel:     getEnv("OLLAMA_MODEL", "mistral"),
			DeepSeekBaseURL: getEnv("DEEPSEEK_API_BASE", "https://api.deepseek.com"),
			DeepSeekModel:   getEnv("DEEPSEEK_MODEL", "deepseek-chat"),
			DeepSeekAPIKey:  getEnv("DEEPSEEK_API_KEY", ""),
			DefaultModel:    getEnv("DEFAULT_MODEL", "deepseek-chat"),
			RequestTimeout:  time.Duration(getEnvAsInt("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Session: SessionConfig{
			TTL: time.Duration(getEnvAsInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
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
