package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds everything the server reads from the environment.
type Config struct {
	SecretKey string
	Debug     bool

	OpenAIKey   string
	OpenAIModel string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string

	UploadDir     string
	MaxUploadSize int64

	Port string
}

const defaultMaxUpload = 16 << 20 // 16MB

// Load reads configuration from environment variables, applying defaults
// for everything except the OpenAI key (validated separately).
func Load() *Config {
	cfg := &Config{
		SecretKey:     getenv("SECRET_KEY", ""),
		Debug:         strings.EqualFold(getenv("DEBUG", "true"), "true"),
		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getenv("OPENAI_MODEL", "gpt-4o-mini"),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBUser:        getenv("DB_USER", "root"),
		DBPassword:    getenv("DB_PASSWORD", ""),
		DBName:        getenv("DB_NAME", "crm_analyzer"),
		UploadDir:     getenv("UPLOAD_FOLDER", "uploaded_files"),
		MaxUploadSize: defaultMaxUpload,
		Port:          getenv("PORT", "8080"),
	}

	if raw := os.Getenv("MAX_UPLOAD_SIZE"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadSize = n
		}
	}

	return cfg
}

// DSN builds the MySQL connection string (utf8mb4, parseTime for DATETIME scans).
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=true",
		c.DBUser, c.DBPassword, c.DBHost, c.DBName)
}

// Validate returns human-readable warnings about missing or suspicious settings.
func (c *Config) Validate() []string {
	var warnings []string
	if c.OpenAIKey == "" {
		warnings = append(warnings, "کلید OpenAI تنظیم نشده است")
	} else if !strings.HasPrefix(c.OpenAIKey, "sk-") {
		warnings = append(warnings, "کلید OpenAI نامعتبر است")
	}
	return warnings
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
