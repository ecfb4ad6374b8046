package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the application's configuration
type Config struct {
	WebPort               int           `mapstructure:"WEB_PORT"`
	LogLevel              string        `mapstructure:"LOG_LEVEL"`
	GroqAPIKey            string        `mapstructure:"GROQ_API_KEY"`
	GroqBaseURL           string        `mapstructure:"GROQ_BASE_URL"`
	CriteriaModel         string        `mapstructure:"CRITERIA_MODEL"`
	RecommendModel        string        `mapstructure:"RECOMMEND_MODEL"`
	Temperature           float64       `mapstructure:"TEMPERATURE"`
	MaxTokens             int           `mapstructure:"MAX_TOKENS"`
	MongoURI              string        `mapstructure:"MONGODB_URI"`
	MongoDatabase         string        `mapstructure:"MONGO_DATABASE"`
	SystemMessagePath     string        `mapstructure:"SYSTEM_MESSAGE_PATH"`
	MaxResults            int           `mapstructure:"MAX_RESULTS"`
	MaxChildren           int           `mapstructure:"MAX_CHILDREN"`
	SessionCacheSize      int           `mapstructure:"SESSION_CACHE_SIZE"`
	MaxRetries            int           `mapstructure:"MAX_RETRIES"`
	RetryDelaySeconds     time.Duration `mapstructure:"RETRY_DELAY_SECONDS"`
	LLMRequestTimeout     time.Duration `mapstructure:"LLM_REQUEST_TIMEOUT"`
	StoreRequestTimeout   time.Duration `mapstructure:"STORE_REQUEST_TIMEOUT"`
	LLMBackoffMaxSeconds  time.Duration `mapstructure:"LLM_BACKOFF_MAX_SECONDS"`
	LLMBackoffJitterRatio float64       `mapstructure:"LLM_BACKOFF_JITTER_RATIO"`
	RateLimitPerMinute    int           `mapstructure:"RATE_LIMIT_PER_MINUTE"`
	RateLimitBurstSize    int           `mapstructure:"RATE_LIMIT_BURST_SIZE"`
}

func Load(logger *zap.Logger) *Config {
	var config Config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")        // For running locally
	viper.AddConfigPath("../")      // For running from docker subdir
	viper.AddConfigPath("./config") // Common config folder
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("WEB_PORT", 8000)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("GROQ_API_KEY", "")
	viper.SetDefault("GROQ_BASE_URL", "https://api.groq.com/openai")
	viper.SetDefault("CRITERIA_MODEL", "llama-3.1-8b-instant")
	viper.SetDefault("RECOMMEND_MODEL", "llama-3.3-70b-versatile")
	viper.SetDefault("TEMPERATURE", 0.0)
	viper.SetDefault("MAX_TOKENS", 1024)
	viper.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "ChatBot")
	viper.SetDefault("SYSTEM_MESSAGE_PATH", "system_message.txt")
	viper.SetDefault("MAX_RESULTS", 10)
	viper.SetDefault("MAX_CHILDREN", 10)
	viper.SetDefault("SESSION_CACHE_SIZE", 1024)
	viper.SetDefault("MAX_RETRIES", 5)
	viper.SetDefault("RETRY_DELAY_SECONDS", 2)
	viper.SetDefault("LLM_REQUEST_TIMEOUT", 120)
	viper.SetDefault("STORE_REQUEST_TIMEOUT", 30)
	viper.SetDefault("LLM_BACKOFF_MAX_SECONDS", 30)
	viper.SetDefault("LLM_BACKOFF_JITTER_RATIO", 0.1)
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 20)
	viper.SetDefault("RATE_LIMIT_BURST_SIZE", 5)

	if err := viper.ReadInConfig(); err != nil {
		if logger != nil {
			logger.Warn("Could not read config file, using defaults/env vars", zap.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		// Config unmarshaling is critical - fail fast during bootstrap
		if logger != nil {
			logger.Fatal("Unable to decode config into struct", zap.Error(err))
		} else {
			fmt.Fprintf(os.Stderr, "FATAL: Unable to decode config into struct: %v\n", err)
			os.Exit(1)
		}
	}

	// Convert seconds to proper time.Duration
	config.RetryDelaySeconds = config.RetryDelaySeconds * time.Second
	config.LLMRequestTimeout = config.LLMRequestTimeout * time.Second
	config.StoreRequestTimeout = config.StoreRequestTimeout * time.Second
	config.LLMBackoffMaxSeconds = config.LLMBackoffMaxSeconds * time.Second

	return &config
}
