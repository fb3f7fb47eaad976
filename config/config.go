package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	SinkLog      = "log"
	SinkDynamoDB = "dynamodb"
	SinkKafka    = "kafka"
)

type Config struct {
	Env            string
	Server         ServerConfig
	OutputSink     string
	SentimentTable string
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		slog.Warn("[Config] Invalid duration, using default",
			slog.String("key", key),
			slog.String("value", raw),
			slog.Duration("default", defaultValue))
		return defaultValue
	}
	return d
}

// AppEnv returns APP_ENV, defaulting to "dev".
func AppEnv() string {
	return getEnv("APP_ENV", "dev")
}

func Load() Config {
	return Config{
		Env: AppEnv(),
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 90*time.Second),
		},
		OutputSink:     getEnv("OUTPUT_SINK", SinkLog),
		SentimentTable: getEnv("SENTIMENT_TABLE_NAME", "CrawlSentiment"),
	}
}
