package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	GRPC      GRPCConfig      `yaml:"grpc"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Auth      AuthConfig      `yaml:"auth"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Cache     CacheConfig     `yaml:"cache"`
	Worker    WorkerConfig    `yaml:"worker"`
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
}

type HTTPConfig struct {
	Address    string `yaml:"address" env:"AIR_HTTP_ADDRESS"`
	SwaggerDir string `yaml:"swagger_dir" env:"AIR_SWAGGER_DIR"`
}

type GRPCConfig struct {
	Address string `yaml:"address" env:"AIR_GRPC_ADDRESS"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host" env:"AIR_DB_HOST"`
	Port     int    `yaml:"port" env:"AIR_DB_PORT"`
	User     string `yaml:"user" env:"AIR_DB_USER"`
	Password string `yaml:"password" env:"AIR_DB_PASSWORD"`
	Name     string `yaml:"name" env:"AIR_DB_NAME"`
	SSLMode  string `yaml:"ssl_mode" env:"AIR_DB_SSLMODE"`
	MaxConns int    `yaml:"max_conns" env:"AIR_DB_MAX_CONNS"`
	Migrate  bool   `yaml:"migrate" env:"AIR_DB_MIGRATE"`
}

func (d DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
	if d.MaxConns > 0 {
		dsn += fmt.Sprintf(" pool_max_conns=%d", d.MaxConns)
	}
	return dsn
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"AIR_REDIS_ADDR"`
	Password string `yaml:"password" env:"AIR_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"AIR_REDIS_DB"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers" env:"AIR_KAFKA_BROKERS" envSeparator:","`
	OrderEventsTopic   string   `yaml:"order_events_topic" env:"AIR_KAFKA_ORDER_EVENTS_TOPIC"`
	NotificationsTopic string   `yaml:"notifications_topic" env:"AIR_KAFKA_NOTIFICATIONS_TOPIC"`
	GroupID            string   `yaml:"group_id" env:"AIR_KAFKA_GROUP_ID"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"AIR_JWT_SECRET"`
}

type RateLimitConfig struct {
	OrdersPerSecond float64 `yaml:"orders_per_second" env:"AIR_RATE_ORDERS_PER_SECOND"`
	Burst           int     `yaml:"burst" env:"AIR_RATE_BURST"`
}

type CacheConfig struct {
	ReferenceTTLSeconds int `yaml:"reference_ttl_seconds" env:"AIR_CACHE_REFERENCE_TTL_SECONDS"`
}

func (c CacheConfig) ReferenceTTL() time.Duration {
	return time.Duration(c.ReferenceTTLSeconds) * time.Second
}

type WorkerConfig struct {
	SweepIntervalMinutes  int `yaml:"sweep_interval_minutes" env:"AIR_WORKER_SWEEP_INTERVAL_MINUTES"`
	ReminderWindowMinutes int `yaml:"reminder_window_minutes" env:"AIR_WORKER_REMINDER_WINDOW_MINUTES"`
	LockTTLSeconds        int `yaml:"lock_ttl_seconds" env:"AIR_WORKER_LOCK_TTL_SECONDS"`
}

type StorageConfig struct {
	MediaRoot string `yaml:"media_root" env:"AIR_MEDIA_ROOT"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"AIR_LOG_LEVEL"`
	Pretty bool   `yaml:"pretty" env:"AIR_LOG_PRETTY"`
}

// LoadConfig reads the YAML file at path, then applies variables from an
// optional .env file and the process environment on top of it.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply env overrides: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.HTTP.Address == "" {
		c.HTTP.Address = ":8080"
	}
	if c.GRPC.Address == "" {
		c.GRPC.Address = ":9090"
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Kafka.OrderEventsTopic == "" {
		c.Kafka.OrderEventsTopic = "air.orders"
	}
	if c.Kafka.NotificationsTopic == "" {
		c.Kafka.NotificationsTopic = "air.notifications"
	}
	if c.Kafka.GroupID == "" {
		c.Kafka.GroupID = "air-worker"
	}
	if c.RateLimit.OrdersPerSecond == 0 {
		c.RateLimit.OrdersPerSecond = 20
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 40
	}
	if c.Cache.ReferenceTTLSeconds == 0 {
		c.Cache.ReferenceTTLSeconds = 300
	}
	if c.Worker.SweepIntervalMinutes == 0 {
		c.Worker.SweepIntervalMinutes = 5
	}
	if c.Worker.ReminderWindowMinutes == 0 {
		c.Worker.ReminderWindowMinutes = 180
	}
	if c.Worker.LockTTLSeconds == 0 {
		c.Worker.LockTTLSeconds = 240
	}
	if c.Storage.MediaRoot == "" {
		c.Storage.MediaRoot = "media"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
