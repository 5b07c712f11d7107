package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable of the service, sourced from environment
// variables (a local .env file is honoured for development).
type Config struct {
	Env  string `envconfig:"APP_ENV" default:"development"`
	Addr string `envconfig:"ADDR" default:":8080"`

	SessionSecret string `envconfig:"SESSION_SECRET" default:"change-me"`

	Database DatabaseConfig
	Redis    RedisConfig
	WhatsApp WhatsAppConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
	Admin    AdminConfig
}

type DatabaseConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	User     string `envconfig:"POSTGRES_USER" default:"agristore"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"agristore"`
	Name     string `envconfig:"POSTGRES_DB" default:"agristore"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Kolkata"`
}

// DSN renders the gorm/postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, d.TimeZone,
	)
}

// RedisConfig is optional: an empty URL disables caching and rate limiting.
type RedisConfig struct {
	URL string `envconfig:"REDIS_URL"`
}

type WhatsAppConfig struct {
	// Number is the shop's WhatsApp contact in international format,
	// digits only.
	Number string `envconfig:"WHATSAPP_NUMBER" default:"919368340997"`
}

// GeminiConfig is optional: without an API key the assistant runs
// unconfigured and its endpoints report 503.
type GeminiConfig struct {
	APIKey string `envconfig:"GEMINI_API_KEY"`
	Model  string `envconfig:"GEMINI_MODEL" default:"gemini-3-flash-preview"`
}

// StorageConfig points at the object-storage REST endpoint used for
// product images. An empty URL leaves the uploader unconfigured.
type StorageConfig struct {
	URL    string `envconfig:"STORAGE_URL"`
	APIKey string `envconfig:"STORAGE_API_KEY"`
	Bucket string `envconfig:"STORAGE_BUCKET" default:"product-images"`
}

// AdminConfig seeds the initial admin account on startup. Both fields
// empty means no seeding (an account already exists, or is managed out
// of band).
type AdminConfig struct {
	Email    string `envconfig:"ADMIN_EMAIL"`
	Password string `envconfig:"ADMIN_PASSWORD"`
}

// Load reads .env (if present) and binds the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process environment config: %w", err)
	}
	return cfg, nil
}
