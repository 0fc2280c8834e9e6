package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	BotToken    string
	PollTimeout time.Duration
	SessionTTL  time.Duration
	Debug       bool
	Weather     WeatherConfig
	Database    DatabaseConfig
}

// WeatherConfig holds weather API settings
type WeatherConfig struct {
	APIKey    string
	URL       string
	Timeout   time.Duration
	CacheTTL  time.Duration
	CacheSize int
}

// DatabaseConfig holds database connection settings.
// An empty Host means the compiled-in reference data is used.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		BotToken: os.Getenv("BOT_TOKEN"),
		Debug:    os.Getenv("DEBUG") == "true",
		Weather: WeatherConfig{
			APIKey: os.Getenv("WEATHER_API_KEY"),
			URL:    getEnv("WEATHER_API_URL", "https://api.weather.yandex.ru/v2/forecast"),
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "assistant"),
			User:     getEnv("DB_USER", "assistant"),
			Password: os.Getenv("DB_PASSWORD"),
		},
	}

	// Validate required fields
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if cfg.Weather.APIKey == "" {
		return nil, fmt.Errorf("WEATHER_API_KEY is required")
	}
	if cfg.Database.Host != "" && cfg.Database.Password == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required when DB_HOST is set")
	}

	var err error
	if cfg.PollTimeout, err = getDuration("POLL_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Weather.Timeout, err = getDuration("WEATHER_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Weather.CacheTTL, err = getDuration("WEATHER_CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.Weather.CacheSize, err = getInt("WEATHER_CACHE_SIZE", 64); err != nil {
		return nil, err
	}

	return cfg, nil
}

// UseDatabase reports whether reference data comes from PostgreSQL
func (c *Config) UseDatabase() bool {
	return c.Database.Host != ""
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, value)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, value)
	}
	return n, nil
}
