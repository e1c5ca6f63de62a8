package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Auth     AuthConfig
	S3       S3Config
	Log      LogConfig
	CORS     CORSConfig
	LLM      LLMConfig
	OCR      OCRConfig
	Archive  ArchiveConfig
	Realtime RealtimeConfig
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
	Host       string `mapstructure:"host"`
	Port       int    `mapstructure:"port"`
	User       string `mapstructure:"user"`
	Password   string `mapstructure:"password"`
	Name       string `mapstructure:"name"`
	SSLMode    string `mapstructure:"sslmode"`
	MaxOpen    int    `mapstructure:"max_open"`
	MaxIdle    int    `mapstructure:"max_idle"`
	TxAttempts int    `mapstructure:"tx_attempts"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds the settings used to verify caller ID tokens.
type AuthConfig struct {
	Secret   string `mapstructure:"secret"`
	Issuer   string `mapstructure:"issuer"`
	Audience string `mapstructure:"audience"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LLMConfig holds settings for the language model provider.
type LLMConfig struct {
	Provider    string `mapstructure:"provider"`
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// OCRConfig holds settings for the text detection provider.
type OCRConfig struct {
	Provider     string        `mapstructure:"provider"`
	APIKey       string        `mapstructure:"api_key"`
	Endpoint     string        `mapstructure:"endpoint"`
	TimeoutSecs  int           `mapstructure:"timeout_secs"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	LanguageHint string        `mapstructure:"language_hint"`
}

// ArchiveConfig selects where extraction transcripts are kept.
type ArchiveConfig struct {
	Provider string `mapstructure:"provider"`
	Prefix   string `mapstructure:"prefix"`
}

// RealtimeConfig holds server-push settings.
type RealtimeConfig struct {
	BufferSize int           `mapstructure:"buffer_size"`
	Heartbeat  time.Duration `mapstructure:"heartbeat"`
}

// Load reads configuration from environment variables with the TRIPWISE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TRIPWISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "0s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "tripwise")
	v.SetDefault("db.password", "tripwise_secret")
	v.SetDefault("db.name", "tripwise_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)
	v.SetDefault("db.tx_attempts", 5)

	// Auth defaults
	v.SetDefault("auth.secret", "change-me-in-production")
	v.SetDefault("auth.issuer", "tripwise")
	v.SetDefault("auth.audience", "tripwise-app")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "tripwise-extractions")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173")

	// LLM defaults
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.endpoint", "")
	v.SetDefault("llm.timeout_secs", 120)

	// OCR defaults
	v.SetDefault("ocr.provider", "vision")
	v.SetDefault("ocr.api_key", "")
	v.SetDefault("ocr.endpoint", "")
	v.SetDefault("ocr.timeout_secs", 60)
	v.SetDefault("ocr.cache_ttl", "0s")
	v.SetDefault("ocr.language_hint", "")

	// Archive defaults
	v.SetDefault("archive.provider", "noop")
	v.SetDefault("archive.prefix", "extractions")

	// Realtime defaults
	v.SetDefault("realtime.buffer_size", 32)
	v.SetDefault("realtime.heartbeat", "25s")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "TRIPWISE_SERVER_PORT",
		"server.read_timeout":    "TRIPWISE_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "TRIPWISE_SERVER_WRITE_TIMEOUT",
		"server.environment":     "TRIPWISE_SERVER_ENVIRONMENT",
		"db.host":                "TRIPWISE_DB_HOST",
		"db.port":                "TRIPWISE_DB_PORT",
		"db.user":                "TRIPWISE_DB_USER",
		"db.password":            "TRIPWISE_DB_PASSWORD",
		"db.name":                "TRIPWISE_DB_NAME",
		"db.sslmode":             "TRIPWISE_DB_SSLMODE",
		"db.max_open":            "TRIPWISE_DB_MAX_OPEN",
		"db.max_idle":            "TRIPWISE_DB_MAX_IDLE",
		"db.tx_attempts":         "TRIPWISE_DB_TX_ATTEMPTS",
		"auth.secret":            "TRIPWISE_AUTH_SECRET",
		"auth.issuer":            "TRIPWISE_AUTH_ISSUER",
		"auth.audience":          "TRIPWISE_AUTH_AUDIENCE",
		"s3.region":              "TRIPWISE_S3_REGION",
		"s3.bucket":              "TRIPWISE_S3_BUCKET",
		"s3.endpoint":            "TRIPWISE_S3_ENDPOINT",
		"s3.access_key":          "TRIPWISE_S3_ACCESS_KEY",
		"s3.secret_key":          "TRIPWISE_S3_SECRET_KEY",
		"log.level":              "TRIPWISE_LOG_LEVEL",
		"log.format":             "TRIPWISE_LOG_FORMAT",
		"cors.allowed_origins":   "TRIPWISE_CORS_ALLOWED_ORIGINS",
		"llm.provider":           "TRIPWISE_LLM_PROVIDER",
		"llm.api_key":            "TRIPWISE_LLM_API_KEY",
		"llm.model":              "TRIPWISE_LLM_MODEL",
		"llm.endpoint":           "TRIPWISE_LLM_ENDPOINT",
		"llm.timeout_secs":       "TRIPWISE_LLM_TIMEOUT_SECS",
		"ocr.provider":           "TRIPWISE_OCR_PROVIDER",
		"ocr.api_key":            "TRIPWISE_OCR_API_KEY",
		"ocr.endpoint":           "TRIPWISE_OCR_ENDPOINT",
		"ocr.timeout_secs":       "TRIPWISE_OCR_TIMEOUT_SECS",
		"ocr.cache_ttl":          "TRIPWISE_OCR_CACHE_TTL",
		"ocr.language_hint":      "TRIPWISE_OCR_LANGUAGE_HINT",
		"archive.provider":       "TRIPWISE_ARCHIVE_PROVIDER",
		"archive.prefix":         "TRIPWISE_ARCHIVE_PREFIX",
		"realtime.buffer_size":   "TRIPWISE_REALTIME_BUFFER_SIZE",
		"realtime.heartbeat":     "TRIPWISE_REALTIME_HEARTBEAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Cloud platforms set a PORT env var. Use it if TRIPWISE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TRIPWISE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:       v.GetString("db.host"),
		Port:       v.GetInt("db.port"),
		User:       v.GetString("db.user"),
		Password:   v.GetString("db.password"),
		Name:       v.GetString("db.name"),
		SSLMode:    v.GetString("db.sslmode"),
		MaxOpen:    v.GetInt("db.max_open"),
		MaxIdle:    v.GetInt("db.max_idle"),
		TxAttempts: v.GetInt("db.tx_attempts"),
	}
	cfg.Auth = AuthConfig{
		Secret:   v.GetString("auth.secret"),
		Issuer:   v.GetString("auth.issuer"),
		Audience: v.GetString("auth.audience"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.LLM = LLMConfig{
		Provider:    v.GetString("llm.provider"),
		APIKey:      v.GetString("llm.api_key"),
		Model:       v.GetString("llm.model"),
		Endpoint:    v.GetString("llm.endpoint"),
		TimeoutSecs: v.GetInt("llm.timeout_secs"),
	}
	cfg.OCR = OCRConfig{
		Provider:     v.GetString("ocr.provider"),
		APIKey:       v.GetString("ocr.api_key"),
		Endpoint:     v.GetString("ocr.endpoint"),
		TimeoutSecs:  v.GetInt("ocr.timeout_secs"),
		CacheTTL:     v.GetDuration("ocr.cache_ttl"),
		LanguageHint: v.GetString("ocr.language_hint"),
	}
	cfg.Archive = ArchiveConfig{
		Provider: v.GetString("archive.provider"),
		Prefix:   v.GetString("archive.prefix"),
	}
	cfg.Realtime = RealtimeConfig{
		BufferSize: v.GetInt("realtime.buffer_size"),
		Heartbeat:  v.GetDuration("realtime.heartbeat"),
	}

	return cfg, nil
}

// splitList parses a comma-separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
