package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	DB        DBConfig
	JWT       JWTConfig
	Auth      AuthConfig
	S3        S3Config
	Log       LogConfig
	Vision    VisionConfig
	Pinterest PinterestConfig
	Queue     QueueConfig
	Email     EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds JWT signing and expiry settings.
type JWTConfig struct {
	Secret             string        `mapstructure:"secret"`
	AccessTokenExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshTokenExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer             string        `mapstructure:"issuer"`
}

// AuthConfig holds the single-operator credential. PasswordHash is a bcrypt
// hash; plain passwords are never stored in config.
type AuthConfig struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

// S3Config holds AWS S3 settings for source image storage.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// VisionConfig holds vision model provider settings.
type VisionConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// PinterestConfig holds Pinterest publishing settings.
type PinterestConfig struct {
	BoardID     string   `mapstructure:"board_id"`
	AccessToken string   `mapstructure:"access_token"`
	UploadMode  string   `mapstructure:"upload_mode"` // "multipart" or "base64"
	DefaultTags []string `mapstructure:"default_tags"`
	TimeoutSecs int      `mapstructure:"timeout_secs"`
}

// QueueConfig holds publish queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	Concurrency      int `mapstructure:"concurrency"`
}

// EmailConfig holds operator notification settings.
type EmailConfig struct {
	Provider        string `mapstructure:"provider"`
	Region          string `mapstructure:"region"`
	FromAddress     string `mapstructure:"from_address"`
	FromName        string `mapstructure:"from_name"`
	OperatorAddress string `mapstructure:"operator_address"`
}

// Load reads configuration from environment variables with the VERSEPIN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VERSEPIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "versepin")
	v.SetDefault("db.password", "versepin_secret")
	v.SetDefault("db.name", "versepin_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "versepin")

	// Auth defaults (operator credential; hash is for "versepin", dev only)
	v.SetDefault("auth.username", "operator")
	v.SetDefault("auth.password_hash", "")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "versepin-images")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 20)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Vision defaults
	v.SetDefault("vision.provider", "gemini")
	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.default_model", "gemini-2.5-flash")
	v.SetDefault("vision.timeout_secs", 120)

	// Pinterest defaults
	v.SetDefault("pinterest.board_id", "")
	v.SetDefault("pinterest.access_token", "")
	v.SetDefault("pinterest.upload_mode", "base64")
	v.SetDefault("pinterest.default_tags", "bible quotes")
	v.SetDefault("pinterest.timeout_secs", 30)

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.concurrency", 3)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ap-south-1")
	v.SetDefault("email.from_address", "noreply@versepin.local")
	v.SetDefault("email.from_name", "VersePin")
	v.SetDefault("email.operator_address", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "VERSEPIN_SERVER_PORT",
		"server.read_timeout":     "VERSEPIN_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "VERSEPIN_SERVER_WRITE_TIMEOUT",
		"server.environment":      "VERSEPIN_SERVER_ENVIRONMENT",
		"db.host":                 "VERSEPIN_DB_HOST",
		"db.port":                 "VERSEPIN_DB_PORT",
		"db.user":                 "VERSEPIN_DB_USER",
		"db.password":             "VERSEPIN_DB_PASSWORD",
		"db.name":                 "VERSEPIN_DB_NAME",
		"db.sslmode":              "VERSEPIN_DB_SSLMODE",
		"db.max_open":             "VERSEPIN_DB_MAX_OPEN",
		"db.max_idle":             "VERSEPIN_DB_MAX_IDLE",
		"jwt.secret":              "VERSEPIN_JWT_SECRET",
		"jwt.access_expiry":       "VERSEPIN_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":      "VERSEPIN_JWT_REFRESH_EXPIRY",
		"jwt.issuer":              "VERSEPIN_JWT_ISSUER",
		"auth.username":           "VERSEPIN_AUTH_USERNAME",
		"auth.password_hash":      "VERSEPIN_AUTH_PASSWORD_HASH",
		"s3.region":               "VERSEPIN_S3_REGION",
		"s3.bucket":               "VERSEPIN_S3_BUCKET",
		"s3.endpoint":             "VERSEPIN_S3_ENDPOINT",
		"s3.access_key":           "VERSEPIN_S3_ACCESS_KEY",
		"s3.secret_key":           "VERSEPIN_S3_SECRET_KEY",
		"s3.max_file_size_mb":     "VERSEPIN_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":       "VERSEPIN_S3_PRESIGN_EXPIRY",
		"log.level":               "VERSEPIN_LOG_LEVEL",
		"log.format":              "VERSEPIN_LOG_FORMAT",
		"vision.provider":         "VERSEPIN_VISION_PROVIDER",
		"vision.api_key":          "VERSEPIN_VISION_API_KEY",
		"vision.default_model":    "VERSEPIN_VISION_DEFAULT_MODEL",
		"vision.timeout_secs":     "VERSEPIN_VISION_TIMEOUT_SECS",
		"pinterest.board_id":      "VERSEPIN_PINTEREST_BOARD_ID",
		"pinterest.access_token":  "VERSEPIN_PINTEREST_ACCESS_TOKEN",
		"pinterest.upload_mode":   "VERSEPIN_PINTEREST_UPLOAD_MODE",
		"pinterest.default_tags":  "VERSEPIN_PINTEREST_DEFAULT_TAGS",
		"pinterest.timeout_secs":  "VERSEPIN_PINTEREST_TIMEOUT_SECS",
		"queue.poll_interval_secs": "VERSEPIN_QUEUE_POLL_INTERVAL_SECS",
		"queue.concurrency":        "VERSEPIN_QUEUE_CONCURRENCY",
		"email.provider":           "VERSEPIN_EMAIL_PROVIDER",
		"email.region":             "VERSEPIN_EMAIL_REGION",
		"email.from_address":       "VERSEPIN_EMAIL_FROM_ADDRESS",
		"email.from_name":          "VERSEPIN_EMAIL_FROM_NAME",
		"email.operator_address":   "VERSEPIN_EMAIL_OPERATOR_ADDRESS",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
