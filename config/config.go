package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultJWTSecret is only accepted outside production.
const DefaultJWTSecret = "insecure-development-secret"

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string
	RedisEnabled  bool

	// RedisKeyPrefix namespaces the rate limit counters
	RedisKeyPrefix string

	// JWT configuration
	JWTSecret string
	TokenTTL  time.Duration

	// Media storage
	MediaBackend string
	MediaDir     string
	MediaURL     string
	S3Bucket     string
	AWSRegion    string

	// Logging
	LogLevel     string
	LogstashURL  string
	ElasticURL   string
	ElasticIndex string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("cors.origins", "http://localhost:3000")

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.name", "foodgram")
	v.SetDefault("db.ssl_mode", "disable")
	v.SetDefault("db.sqlite_path", "foodgram.db")
	v.SetDefault("db.migrations_dir", "migrations")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.key_prefix", "foodgram")

	v.SetDefault("jwt.ttl", "24h")

	v.SetDefault("media.backend", "local")
	v.SetDefault("media.dir", "./media")
	v.SetDefault("media.url", "/media")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.elastic_index", "foodgram")
}

// LoadConfig reads config.yml from the working directory if it exists and
// overlays environment variables (server.port -> SERVER_PORT). Secrets that
// are not set in the environment are read from Docker secrets.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath(".")
	if dir := os.Getenv("CONFIG_DIR"); dir != "" {
		v.AddConfigPath(dir)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	ttl := v.GetDuration("jwt.ttl")
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid jwt.ttl %q", v.GetString("jwt.ttl"))
	}

	cfg := &Config{
		Environment:    GetEnvironment(),
		ServerPort:     v.GetString("server.port"),
		ServerHost:     v.GetString("server.host"),
		CORSOrigins:    splitList(v.GetString("cors.origins")),
		DBDriver:       v.GetString("db.driver"),
		DBHost:         v.GetString("db.host"),
		DBPort:         v.GetString("db.port"),
		DBUser:         v.GetString("db.user"),
		DBPassword:     secretOrValue(v, "db.password", "db_password"),
		DBName:         v.GetString("db.name"),
		DBSSLMode:      v.GetString("db.ssl_mode"),
		SQLitePath:     v.GetString("db.sqlite_path"),
		MigrationsDir:  v.GetString("db.migrations_dir"),
		RedisHost:      v.GetString("redis.host"),
		RedisPort:      v.GetString("redis.port"),
		RedisPassword:  secretOrValue(v, "redis.password", "redis_password"),
		RedisDB:        v.GetInt("redis.db"),
		RedisURL:       v.GetString("redis.url"),
		RedisEnabled:   v.GetBool("redis.enabled"),
		RedisKeyPrefix: v.GetString("redis.key_prefix"),
		JWTSecret:      secretOrValue(v, "jwt.secret", "jwt_secret"),
		TokenTTL:       ttl,
		MediaBackend:   v.GetString("media.backend"),
		MediaDir:       v.GetString("media.dir"),
		MediaURL:       v.GetString("media.url"),
		S3Bucket:       v.GetString("s3.bucket"),
		AWSRegion:      v.GetString("aws.region"),
		LogLevel:       v.GetString("log.level"),
		LogstashURL:    v.GetString("log.logstash_url"),
		ElasticURL:     v.GetString("log.elastic_url"),
		ElasticIndex:   v.GetString("log.elastic_index"),
	}

	if cfg.JWTSecret == "" && cfg.Environment != Production {
		cfg.JWTSecret = DefaultJWTSecret
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the Postgres connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr returns the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func secretOrValue(v *viper.Viper, key, secret string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	return readSecret(secret)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
