package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

// Config holds the process-wide settings read at startup.
type Config struct {
	Port         string
	DatabaseURL  string
	DatabaseName string

	UploadDir     string
	MaxUploadSize int64

	RateLimitMax    int
	RateLimitWindow time.Duration

	RedisURL string

	RabbitMQURL   string
	EventsQueue   string
	ConsumeEvents bool

	Env      string
	LogLevel string
}

// Load reads configuration from the environment, falling back to an optional
// .env file in the working directory and then to defaults.
func Load() (*Config, error) {
	return LoadWith(viper.New(), ".env")
}

// LoadWith is Load with an explicit viper instance and env file path.
// An empty envFile skips the file lookup.
func LoadWith(v *viper.Viper, envFile string) (*Config, error) {
	v.SetDefault("PORT", "3000")
	v.SetDefault("DATABASE_URL", "file:storefront.db")
	v.SetDefault("DATABASE_NAME", "storefront")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("MAX_UPLOAD_SIZE", 2*1024*1024)
	v.SetDefault("RATE_LIMIT_MAX", 10)
	v.SetDefault("RATE_LIMIT_WINDOW", time.Minute)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EVENTS_QUEUE", "storefront_events")
	v.SetDefault("EVENTS_CONSUME", false)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	// MONGO_URI is what older deployments export.
	if err := v.BindEnv("DATABASE_URL", "DATABASE_URL", "MONGO_URI"); err != nil {
		return nil, fmt.Errorf("failed to bind DATABASE_URL: %w", err)
	}
	v.AutomaticEnv()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
			}
		}
	}

	cfg := &Config{
		Port:            v.GetString("PORT"),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		DatabaseName:    v.GetString("DATABASE_NAME"),
		UploadDir:       v.GetString("UPLOAD_DIR"),
		MaxUploadSize:   v.GetInt64("MAX_UPLOAD_SIZE"),
		RateLimitMax:    v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow: v.GetDuration("RATE_LIMIT_WINDOW"),
		RedisURL:        v.GetString("REDIS_URL"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		EventsQueue:     v.GetString("EVENTS_QUEUE"),
		ConsumeEvents:   v.GetBool("EVENTS_CONSUME"),
		Env:             v.GetString("APP_ENV"),
		LogLevel:        v.GetString("LOG_LEVEL"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	if len(c.Port) > 0 && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL must not be empty")
	}
	if c.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive, got %d", c.MaxUploadSize)
	}
	if c.RateLimitMax <= 0 || c.RateLimitWindow <= 0 {
		return fmt.Errorf("invalid rate limit %d per %s", c.RateLimitMax, c.RateLimitWindow)
	}
	return nil
}
