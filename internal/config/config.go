package config

import (
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/bookmarket-service/internal/platform/logger"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultJWTSecret = "change-me-bookmarket-secret"

// Config holds all configuration for the service.
type Config struct {
	ServiceName    string `mapstructure:"SERVICE_NAME"`
	HTTPPort       string `mapstructure:"HTTP_PORT"`
	GRPCHealthPort string `mapstructure:"GRPC_HEALTH_PORT"`

	MongoURI             string `mapstructure:"MONGO_URI"`
	MongoDatabase        string `mapstructure:"MONGO_DATABASE"`
	MongoUseTransactions bool   `mapstructure:"MONGO_USE_TRANSACTIONS"`

	RedisAddress  string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int           `mapstructure:"REDIS_DB"`
	CacheTTL      time.Duration `mapstructure:"CACHE_TTL"`

	NATSURL string `mapstructure:"NATS_URL"`

	MinIOEndpoint  string `mapstructure:"MINIO_ENDPOINT"`
	MinIOAccessKey string `mapstructure:"MINIO_ACCESS_KEY"`
	MinIOSecretKey string `mapstructure:"MINIO_SECRET_KEY"`
	MinIOBucket    string `mapstructure:"MINIO_BUCKET"`
	MinIOUseSSL    bool   `mapstructure:"MINIO_USE_SSL"`

	UploadMaxBytes          int64  `mapstructure:"UPLOAD_MAX_BYTES"`
	UploadAllowedExtensions string `mapstructure:"UPLOAD_ALLOWED_EXTENSIONS"`

	JWTSecret string        `mapstructure:"JWT_SECRET"`
	JWTTTL    time.Duration `mapstructure:"JWT_TTL"`

	PrometheusMetricsPort  string `mapstructure:"PROMETHEUS_METRICS_PORT"`
	OTExporterOTLPEndpoint string `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPEmail    string `mapstructure:"SMTP_EMAIL"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

var defaults = map[string]interface{}{
	"SERVICE_NAME":                "bookmarket-service",
	"HTTP_PORT":                   "8080",
	"GRPC_HEALTH_PORT":            "50061",
	"MONGO_URI":                   "mongodb://localhost:27017",
	"MONGO_DATABASE":              "bookmarket",
	"MONGO_USE_TRANSACTIONS":      false,
	"REDIS_ADDRESS":               "localhost:6379",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"CACHE_TTL":                   time.Hour,
	"NATS_URL":                    "nats://localhost:4222",
	"MINIO_ENDPOINT":              "localhost:9000",
	"MINIO_ACCESS_KEY":            "minioadmin",
	"MINIO_SECRET_KEY":            "minioadmin",
	"MINIO_BUCKET":                "book-images",
	"MINIO_USE_SSL":               false,
	"UPLOAD_MAX_BYTES":            int64(10 << 20),
	"UPLOAD_ALLOWED_EXTENSIONS":   "jpg,jpeg,png,gif,webp",
	"JWT_SECRET":                  defaultJWTSecret,
	"JWT_TTL":                     24 * time.Hour,
	"PROMETHEUS_METRICS_PORT":     "9095",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "",
	"SMTP_HOST":                   "",
	"SMTP_PORT":                   587,
	"SMTP_EMAIL":                  "",
	"SMTP_PASSWORD":               "",
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "json",
}

// LoadConfig reads configuration from environment variables. The .env file,
// if any, is loaded by main before this is called.
func LoadConfig(appLogger *logger.Logger) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		appLogger.Error("Failed to unmarshal configuration", zap.Error(err))
		return nil, err
	}

	if cfg.JWTSecret == defaultJWTSecret || cfg.JWTSecret == "" {
		appLogger.Warn("JWT_SECRET is set to its default insecure value or is empty. Please set a strong secret in your environment.")
	}

	appLogger.Debug("Configuration loaded",
		zap.String("service_name", cfg.ServiceName),
		zap.String("http_port", cfg.HTTPPort),
		zap.Bool("mongo_uri_present", cfg.MongoURI != ""),
		zap.String("mongo_database", cfg.MongoDatabase),
		zap.Bool("mongo_transactions", cfg.MongoUseTransactions),
		zap.String("redis_address", cfg.RedisAddress),
		zap.String("nats_url", cfg.NATSURL),
		zap.String("minio_endpoint", cfg.MinIOEndpoint),
		zap.Bool("smtp_enabled", cfg.SMTPEnabled()),
		zap.String("otel_endpoint", cfg.OTExporterOTLPEndpoint),
	)
	return &cfg, nil
}

// AllowedExtensions returns the normalized upload extension allow-list, without dots.
func (c *Config) AllowedExtensions() []string {
	var out []string
	for _, ext := range strings.Split(c.UploadAllowedExtensions, ",") {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			out = append(out, ext)
		}
	}
	return out
}

func (c *Config) SMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPEmail != ""
}
