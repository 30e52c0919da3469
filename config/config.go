package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisThreadDB int    `mapstructure:"REDIS_THREAD_DB"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	// Gemini API key, shared by intent extraction and synthetic offers.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`

	// Live booking provider (Amadeus-compatible) credentials.
	AmadeusBaseURL      string `mapstructure:"AMADEUS_BASE_URL"`
	AmadeusClientID     string `mapstructure:"AMADEUS_CLIENT_ID"`
	AmadeusClientSecret string `mapstructure:"AMADEUS_CLIENT_SECRET"`

	// Dialogue defaults.
	HomeCity             string `mapstructure:"HOME_CITY"`
	ThreadTTLMin         int    `mapstructure:"THREAD_TTL_MIN"`
	SearchResultLimit    int    `mapstructure:"SEARCH_RESULT_LIMIT"`
	HotelResultLimit     int    `mapstructure:"HOTEL_RESULT_LIMIT"`
	ProviderTimeoutSec   int    `mapstructure:"PROVIDER_TIMEOUT_SEC"`
	GeneratorTimeoutSec  int    `mapstructure:"GENERATOR_TIMEOUT_SEC"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_THREAD_DB", 0)
	viper.SetDefault("REDIS_CACHE_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("GEMINI_API_KEY", "")
	viper.SetDefault("AMADEUS_BASE_URL", "https://test.api.amadeus.com")
	viper.SetDefault("AMADEUS_CLIENT_ID", "")
	viper.SetDefault("AMADEUS_CLIENT_SECRET", "")
	viper.SetDefault("HOME_CITY", "CAI")
	viper.SetDefault("THREAD_TTL_MIN", 720)
	viper.SetDefault("SEARCH_RESULT_LIMIT", 5)
	viper.SetDefault("HOTEL_RESULT_LIMIT", 10)
	viper.SetDefault("PROVIDER_TIMEOUT_SEC", 8)
	viper.SetDefault("GENERATOR_TIMEOUT_SEC", 20)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
