package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию клиента анализа
type Config struct {
	Env         string `envconfig:"ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"console"`
	// stderr, stdout или путь к файлу. CLI не пишет логи в stdout.
	LogOutput string `envconfig:"LOG_OUTPUT" default:"stderr"`

	Server   ServerConfig
	Analysis AnalysisConfig

	// CORS для веб-представления
	CORSAllowedOrigins string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:8090"`
}

// ServerConfig содержит настройки HTTP сервера веб-представления.
// Ключи получают префикс SERVER_ (envconfig добавляет имя поля).
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8090"`
	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// AnalysisConfig содержит настройки доступа к сервису анализа (префикс ANALYSIS_).
type AnalysisConfig struct {
	BaseURL       string        `envconfig:"BASE_URL" default:"http://localhost:8000"`
	Path          string        `envconfig:"ENDPOINT_PATH" default:"/analyze"`
	ClientTimeout time.Duration `envconfig:"TIMEOUT" default:"120s"`
}

// GetAllowedOrigins разбивает CORSAllowedOrigins на список.
func (c *Config) GetAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(c.CORSAllowedOrigins, " ", ""), ",")
}

// LoadConfig загружает конфигурацию из .env (если есть) и переменных окружения.
func LoadConfig(envFilePath string) (*Config, error) {
	if envFilePath != "" {
		if _, err := os.Stat(envFilePath); err == nil {
			if err := godotenv.Load(envFilePath); err != nil {
				log.Printf("Warning: could not load %s file: %v", envFilePath, err)
			}
		} else if !os.IsNotExist(err) {
			log.Printf("Warning: error checking %s file: %v", envFilePath, err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	if strings.TrimSpace(cfg.Analysis.BaseURL) == "" {
		return nil, fmt.Errorf("ANALYSIS_BASE_URL not set")
	}
	if cfg.Analysis.ClientTimeout <= 0 {
		return nil, fmt.Errorf("ANALYSIS_TIMEOUT must be positive, got %s", cfg.Analysis.ClientTimeout)
	}

	return &cfg, nil
}
