package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type Config struct {
	Server ServerConfig
	App    AppConfig
	CORS   CORSConfig
	Log    LogConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type AppConfig struct {
	UploadDir     string
	MaxUploadSize int64
	ServeUploads  bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level       string
	Development bool
}

const (
	defaultUploadDir     = "user_uploads"
	defaultMaxUploadSize = 10 * 1024 * 1024 // 10MB
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("SERVER_HOST", "localhost")
	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("APP_UPLOAD_DIR", defaultUploadDir)
	v.SetDefault("APP_MAX_UPLOAD_SIZE", defaultMaxUploadSize)
	v.SetDefault("APP_SERVE_UPLOADS", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DEVELOPMENT", false)

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetString("SERVER_PORT"),
		},
		App: AppConfig{
			UploadDir:     strings.TrimSpace(v.GetString("APP_UPLOAD_DIR")),
			MaxUploadSize: v.GetInt64("APP_MAX_UPLOAD_SIZE"),
			ServeUploads:  v.GetBool("APP_SERVE_UPLOADS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Level:       v.GetString("LOG_LEVEL"),
			Development: v.GetBool("LOG_DEVELOPMENT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func (c *Config) validate() error {
	if port, err := strconv.Atoi(c.Server.Port); err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("SERVER_PORT must be a port number, got %q", c.Server.Port)
	}
	if c.App.UploadDir == "" {
		return fmt.Errorf("APP_UPLOAD_DIR is required")
	}
	if c.App.MaxUploadSize < 0 {
		return fmt.Errorf("APP_MAX_UPLOAD_SIZE must not be negative, got %d", c.App.MaxUploadSize)
	}
	if _, err := zap.ParseAtomicLevel(c.Log.Level); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
