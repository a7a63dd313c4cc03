package config

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Env          string             `yaml:"env" env-default:"local"`
	HTTP         HTTPConfig         `yaml:"http"`
	Storage      StorageConfig      `yaml:"storage"`
	Postgres     PostgresConfig     `yaml:"postgres"`
	Kafka        KafkaConfig        `yaml:"kafka"`
	Gateways     GatewaysConfig     `yaml:"gateways"`
	Notification NotificationConfig `yaml:"notification"`
	Cache        CacheConfig        `yaml:"cache"`
	Admin        AdminConfig        `yaml:"admin"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
}

type HTTPConfig struct {
	Port            int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"15s"`
	// MaxBodyBytes caps webhook and order request bodies.
	MaxBodyBytes int64 `yaml:"max_body_bytes" env-default:"1048576"`
}

type StorageConfig struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"postgres"`
}

type PostgresConfig struct {
	Port            string        `yaml:"port" env-default:"5432"`
	Host            string        `yaml:"host" env:"POSTGRES_HOST" env-default:"localhost"`
	DbName          string        `yaml:"db_name"`
	User            string        `yaml:"user"`
	Pwd             string        `yaml:"password" env:"POSTGRES_PASSWORD"`
	SslMode         string        `yaml:"sslmode" env-default:"disable"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"20"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"30m"`
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=%s",
		c.Host, c.Port, c.User, c.DbName, c.Pwd, c.SslMode)
}

type KafkaConfig struct {
	BrokerList      []string `yaml:"broker_list" env:"KAFKA_BROKERS" env-separator:","`
	OrderEventTopic string   `yaml:"order_event_topic" env-default:"order_events"`
}

type GatewaysConfig struct {
	Cashfree GatewayConfig `yaml:"cashfree" env-prefix:"CASHFREE_"`
	Razorpay GatewayConfig `yaml:"razorpay" env-prefix:"RAZORPAY_"`
}

// GatewayConfig holds the webhook signing secret. An empty secret is allowed at
// startup; the webhook answers 500 until it is configured.
type GatewayConfig struct {
	Secret string `yaml:"secret" env:"WEBHOOK_SECRET"`
}

type NotificationConfig struct {
	Enabled    bool          `yaml:"enabled" env-default:"true"`
	Timeout    time.Duration `yaml:"timeout" env-default:"10s"`
	From       string        `yaml:"from" env-default:"orders@framestore.local"`
	StoreName  string        `yaml:"store_name" env-default:"Frame Store"`
	EmailTopic string        `yaml:"email_topic" env-default:"email_jobs"`
}

type CacheConfig struct {
	Size int           `yaml:"size" env-default:"1024"`
	TTL  time.Duration `yaml:"ttl" env-default:"5m"`
}

type AdminConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"ADMIN_JWT_SECRET"`
}

type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" env-default:"5"`
	Burst int     `yaml:"burst" env-default:"10"`
}

func InitConfig() Config {
	configPath := getConfigPath()

	if configPath == "" {
		panic("config path is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

// Load reads the YAML file and then applies environment overrides.
func Load(configPath string) (Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Config{}, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	switch cfg.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	return cfg, nil
}

func getConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	return path
}
