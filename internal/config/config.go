package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	GeneratorPaylibo = "paylibo"
	GeneratorLocal   = "local"

	DefaultPayliboURL = "https://api.paylibo.com/paylibo/generator/czech/image"
)

type Config struct {
	Port          string
	Environment   string
	LogLevel      string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	RedisPassword string
	Generator     string
	PayliboURL    string
	APITimeout    time.Duration
	CacheTTL      time.Duration
	ImageSize     int
	Locale        string
}

// Load reads the configuration from the environment. Optional values fall
// back to defaults; malformed values are reported as errors.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		MongoURI:      os.Getenv("MONGOURI"),
		MongoDB:       getEnv("MONGO_DB", "qrplatba"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		Generator:     getEnv("QR_GENERATOR", GeneratorPaylibo),
		PayliboURL:    getEnv("QR_API_URL", DefaultPayliboURL),
		Locale:        getEnv("DEFAULT_LOCALE", "cs"),
	}

	var err error
	if cfg.APITimeout, err = getDuration("QR_API_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("QR_CACHE_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ImageSize, err = getInt("QR_IMAGE_SIZE", 256); err != nil {
		return nil, err
	}

	switch cfg.Generator {
	case GeneratorPaylibo, GeneratorLocal:
	default:
		return nil, fmt.Errorf("QR_GENERATOR must be %q or %q, got %q", GeneratorPaylibo, GeneratorLocal, cfg.Generator)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
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
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
