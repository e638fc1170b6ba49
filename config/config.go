package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`

	// MongoDB configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"MONGODB_DB_NAME"`

	// Veriff webhook configuration.
	VeriffSecretKey       string `mapstructure:"VERIFF_SECRET_KEY"`
	VeriffSignatureHeader string `mapstructure:"VERIFF_SIGNATURE_HEADER"`

	// Sumsub API configuration.
	SumsubBaseURL   string `mapstructure:"SUMSUB_BASE_URL"`
	SumsubAppToken  string `mapstructure:"SUMSUB_APP_TOKEN"`
	SumsubSecretKey string `mapstructure:"SUMSUB_SECRET_KEY"`
	SumsubLevelName string `mapstructure:"SUMSUB_LEVEL_NAME"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// AWS Rekognition (face match).
	AWSRegion string `mapstructure:"AWS_REGION"`

	// ID extraction providers.
	ExtractProvider string `mapstructure:"EXTRACT_PROVIDER"`
	OpenAIAPIKey    string `mapstructure:"OPENAI_API_KEY"`
	GeminiAPIKey    string `mapstructure:"GEMINI_API_KEY"`
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
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("MONGODB_DB_NAME", "veriflow")
	viper.SetDefault("VERIFF_SIGNATURE_HEADER", "x-hmac-signature")
	viper.SetDefault("SUMSUB_BASE_URL", "https://api.sumsub.com")
	viper.SetDefault("SUMSUB_LEVEL_NAME", "id-and-liveness")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("EXTRACT_PROVIDER", "openai")

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
