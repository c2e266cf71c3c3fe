package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the settings shared by the dashboard server and the CLI tools.
type Config struct {
	DBHost     string `mapstructure:"DB_HOST" validate:"required"`
	DBPort     string `mapstructure:"DB_PORT" validate:"required,numeric"`
	DBName     string `mapstructure:"DB_NAME" validate:"required"`
	DBUser     string `mapstructure:"DB_USER" validate:"required"`
	DBPassword string `mapstructure:"DB_PASSWORD" validate:"required"`

	AppPort     string        `mapstructure:"APP_PORT" validate:"required"`
	CacheTTL    time.Duration `mapstructure:"CACHE_TTL" validate:"gt=0"`
	RabbitMQURL string        `mapstructure:"RABBITMQ_URL" validate:"omitempty,url"`
	JWTSecret   string        `mapstructure:"DASHBOARD_JWT_SECRET"`
	ScriptsDir  string        `mapstructure:"SCRIPTS_DIR"`
}

// Load reads an optional .env file, then the environment, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	return FromViper(v)
}

// SetDefaults registers every known key so AutomaticEnv can resolve it.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("DB_HOST", "")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "")
	v.SetDefault("DB_USER", "")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("DASHBOARD_JWT_SECRET", "")
	v.SetDefault("SCRIPTS_DIR", "")
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBName:      v.GetString("DB_NAME"),
		DBUser:      v.GetString("DB_USER"),
		DBPassword:  v.GetString("DB_PASSWORD"),
		AppPort:     v.GetString("APP_PORT"),
		CacheTTL:    v.GetDuration("CACHE_TTL"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		JWTSecret:   v.GetString("DASHBOARD_JWT_SECRET"),
		ScriptsDir:  v.GetString("SCRIPTS_DIR"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// DSN returns the PostgreSQL connection URL built from the DB_* settings.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "client_encoding=UTF8",
	}
	return u.String()
}
