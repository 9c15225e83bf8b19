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
	Server ServerConfig
	DB     DBConfig
	JWT    JWTConfig
	Redis  RedisConfig
	CORS   CORSConfig
	Log    LogConfig
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

// RedisConfig holds the stats cache settings. An empty Addr disables
// caching entirely.
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	OverviewTTL time.Duration `mapstructure:"overview_ttl"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the BOKSTAT_
// prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOKSTAT")
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
	v.SetDefault("db.user", "bokstat")
	v.SetDefault("db.password", "bokstat_secret")
	v.SetDefault("db.name", "bokstat_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.refresh_expiry", "168h")
	v.SetDefault("jwt.issuer", "bokningsstatistik")

	// Redis defaults (empty addr disables the cache)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.overview_ttl", "60s")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	})

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "BOKSTAT_SERVER_PORT",
		"server.read_timeout":  "BOKSTAT_SERVER_READ_TIMEOUT",
		"server.write_timeout": "BOKSTAT_SERVER_WRITE_TIMEOUT",
		"server.environment":   "BOKSTAT_SERVER_ENVIRONMENT",
		"db.host":              "BOKSTAT_DB_HOST",
		"db.port":              "BOKSTAT_DB_PORT",
		"db.user":              "BOKSTAT_DB_USER",
		"db.password":          "BOKSTAT_DB_PASSWORD",
		"db.name":              "BOKSTAT_DB_NAME",
		"db.sslmode":           "BOKSTAT_DB_SSLMODE",
		"db.max_open":          "BOKSTAT_DB_MAX_OPEN",
		"db.max_idle":          "BOKSTAT_DB_MAX_IDLE",
		"jwt.secret":           "BOKSTAT_JWT_SECRET",
		"jwt.access_expiry":    "BOKSTAT_JWT_ACCESS_EXPIRY",
		"jwt.refresh_expiry":   "BOKSTAT_JWT_REFRESH_EXPIRY",
		"jwt.issuer":           "BOKSTAT_JWT_ISSUER",
		"redis.addr":           "BOKSTAT_REDIS_ADDR",
		"redis.password":       "BOKSTAT_REDIS_PASSWORD",
		"redis.db":             "BOKSTAT_REDIS_DB",
		"redis.overview_ttl":   "BOKSTAT_REDIS_OVERVIEW_TTL",
		"cors.allowed_origins": "BOKSTAT_CORS_ALLOWED_ORIGINS",
		"log.level":            "BOKSTAT_LOG_LEVEL",
		"log.format":           "BOKSTAT_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BOKSTAT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BOKSTAT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:             v.GetString("jwt.secret"),
		AccessTokenExpiry:  v.GetDuration("jwt.access_expiry"),
		RefreshTokenExpiry: v.GetDuration("jwt.refresh_expiry"),
		Issuer:             v.GetString("jwt.issuer"),
	}
	cfg.Redis = RedisConfig{
		Addr:        v.GetString("redis.addr"),
		Password:    v.GetString("redis.password"),
		DB:          v.GetInt("redis.db"),
		OverviewTTL: v.GetDuration("redis.overview_ttl"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: v.GetStringSlice("cors.allowed_origins"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
