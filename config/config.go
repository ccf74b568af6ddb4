package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Booking  BookingConfig  `yaml:"booking"`
	Auth     AuthConfig     `yaml:"auth"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type HTTPConfig struct {
	Address    string `yaml:"address" envconfig:"HTTP_ADDRESS"`
	SwaggerDir string `yaml:"swagger_dir" envconfig:"SWAGGER_DIR"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" envconfig:"DB_HOST"`
	Port     int    `yaml:"port" envconfig:"DB_PORT"`
	User     string `yaml:"user" envconfig:"DB_USER"`
	Password string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name     string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"DB_SSL_MODE"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"REDIS_ADDR"`
	Password string `yaml:"password" envconfig:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" envconfig:"REDIS_DB"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers" envconfig:"KAFKA_BROKERS"`
	BookingTopic       string   `yaml:"booking_topic" envconfig:"KAFKA_BOOKING_TOPIC"`
	NotificationsTopic string   `yaml:"notifications_topic" envconfig:"KAFKA_NOTIFICATIONS_TOPIC"`
	GroupID            string   `yaml:"group_id" envconfig:"KAFKA_GROUP_ID"`
}

type BookingConfig struct {
	HoldTTLMinutes       int `yaml:"hold_ttl_minutes"`
	VenueCacheTTLSeconds int `yaml:"venue_cache_ttl_seconds"`
}

type AuthConfig struct {
	JWTSecret       string `yaml:"jwt_secret" envconfig:"JWT_SECRET"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes" envconfig:"TOKEN_TTL_MIN"`
	OTPTTLMinutes   int    `yaml:"otp_ttl_minutes"`
}

type WorkerConfig struct {
	CompletionSweepMinutes int `yaml:"completion_sweep_minutes"`
}

// SweepInterval never returns a non-positive duration: a missing or zero
// completion_sweep_minutes would otherwise panic time.NewTicker.
func (w WorkerConfig) SweepInterval() time.Duration {
	if w.CompletionSweepMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(w.CompletionSweepMinutes) * time.Minute
}

// LoadConfig reads the yaml file, then lets environment variables (including
// a .env file when present) override individual values.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	return &cfg, nil
}
