package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBDSN         string
	LogFile       string
	GeminiAPIKey  string
	GeminiBaseURL string
	GeminiFlash   string
	GeminiPro     string
	TemplateDir   string
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DBDSN:         getEnv("DB_DSN", "vailure.db"), // sqlite file in project root
		LogFile:       getEnv("LOG_FILE", "./vailure.log"),
		GeminiAPIKey:  os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiFlash:   getEnv("GEMINI_FLASH_MODEL", "gemini-2.5-flash"),
		GeminiPro:     getEnv("GEMINI_PRO_MODEL", "gemini-2.5-pro"),
		TemplateDir:   getEnv("TEMPLATE_DIR", "./web/templates"),
	}
	if cfg.GeminiAPIKey == "" {
		log.Printf("[config] GEMINI_API_KEY not set; assistant calls will fail and fall back")
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s GEMINI_BASE_URL=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.GeminiBaseURL)
	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
