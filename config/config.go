package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server      ServerConfig
	Logger      LoggerConfig
	Postgres    PostgresConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Kafka       KafkaConfig
	Elastic     ElasticsearchConfig
	Locale      LocaleConfig
	Preparation PreparationConfig
	Receipt     ReceiptConfig
}

type ServerConfig struct {
	AppEnv      string
	GRPCPort    string
	AutoMigrate bool
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfig struct {
	Brokers            []string
	SalesTopic         string
	PendingOrdersGroup string
	InventoryGroup     string
}

type ElasticsearchConfig struct {
	Addresses []string
	Username  string
	Password  string
}

type LocaleConfig struct {
	Language    string
	PhoneRegion string
}

type PreparationConfig struct {
	LockTTL    time.Duration
	SessionTTL time.Duration
}

type ReceiptConfig struct {
	Title string
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:      getEnv("APP_ENV", "dev"),
			GRPCPort:    getEnv("GRPC_PORT", ":8084"),
			AutoMigrate: getEnvBool("AUTO_MIGRATE", true),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5433"),
			User:            getEnv("POSTGRES_USER", "omnipos"),
			Password:        getEnv("POSTGRES_PASSWORD", "omnipos"),
			DBName:          getEnv("POSTGRES_DB", "omnipos_backoffice"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET_KEY", "your-secret-key-change-this-in-prod"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers:            getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			SalesTopic:         getEnv("KAFKA_TOPIC_SALES", "sales.events"),
			PendingOrdersGroup: getEnv("KAFKA_GROUP_PENDING_ORDERS", "pending-orders"),
			InventoryGroup:     getEnv("KAFKA_GROUP_INVENTORY", "inventory"),
		},
		Elastic: ElasticsearchConfig{
			Addresses: getEnvSlice("ELASTICSEARCH_ADDRESSES", []string{"http://localhost:9200"}),
			Username:  getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:  getEnv("ELASTICSEARCH_PASSWORD", ""),
		},
		Locale: LocaleConfig{
			Language:    getEnv("LOCALE_LANGUAGE", "pt-BR"),
			PhoneRegion: getEnv("LOCALE_PHONE_REGION", "BR"),
		},
		Preparation: PreparationConfig{
			LockTTL:    getEnvDuration("PREPARATION_LOCK_TTL", 15*time.Second),
			SessionTTL: getEnvDuration("PREPARATION_SESSION_TTL", 12*time.Hour),
		},
		Receipt: ReceiptConfig{
			Title: getEnv("RECEIPT_TITLE", "OmniPOS"),
		},
	}
}

// Validate reports the first missing or unusable setting.
func (c *Config) Validate() error {
	switch {
	case c.Server.GRPCPort == "":
		return errors.New("GRPC_PORT is required")
	case c.Postgres.Host == "" || c.Postgres.DBName == "":
		return errors.New("POSTGRES_HOST and POSTGRES_DB are required")
	case c.JWT.SecretKey == "":
		return errors.New("JWT_SECRET_KEY is required")
	case len(c.Kafka.Brokers) == 0 || c.Kafka.SalesTopic == "":
		return errors.New("KAFKA_BROKERS and KAFKA_TOPIC_SALES are required")
	case c.Preparation.LockTTL <= 0:
		return errors.New("PREPARATION_LOCK_TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		out := parts[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
