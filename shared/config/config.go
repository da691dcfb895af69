package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	TransportAWS    = "aws"
	TransportMemory = "memory"

	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	ServiceName string    `mapstructure:"service_name"`
	Env         string    `mapstructure:"env"`
	Port        string    `mapstructure:"port"`
	LogLevel    string    `mapstructure:"log_level"`
	Transport   string    `mapstructure:"transport"`
	Storage     string    `mapstructure:"storage"`
	Database    Database  `mapstructure:"database"`
	AWS         AWS       `mapstructure:"aws"`
	Redis       Redis     `mapstructure:"redis"`
	Telemetry   Telemetry `mapstructure:"telemetry"`
}

type Database struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
	Migrate  bool   `mapstructure:"migrate"`
}

type AWS struct {
	Region      string `mapstructure:"region"`
	SNSTopicArn string `mapstructure:"sns_topic_arn"`
	SQSQueueURL string `mapstructure:"sqs_queue_url"`
	Workers     int32  `mapstructure:"workers"`
}

type Redis struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	ClaimTTL time.Duration `mapstructure:"claim_ttl"`
}

type Telemetry struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// Read loads the configuration of serviceName. A JSON file named after
// ENVIRONMENT (default "local") is read from configDirs when present, and
// every key can be overridden by an environment variable such as
// <PREFIX>_DATABASE_HOST.
func Read(serviceName, envPrefix string, configDirs ...string) (*Config, error) {
	v := viper.New()

	v.SetConfigName(configName())
	v.SetConfigType("json")
	for _, dir := range configDirs {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, serviceName)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "error reading config file")
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "error unmarshaling config")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func configName() string {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		return "local"
	}
	return env
}

func setDefaults(v *viper.Viper, serviceName string) {
	v.SetDefault("service_name", serviceName)
	v.SetDefault("env", "local")
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("transport", TransportAWS)
	v.SetDefault("storage", StoragePostgres)

	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "order_saga")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.migrate", true)

	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.sns_topic_arn", "arn:aws:sns:us-east-1:000000000000:saga-events.fifo")
	v.SetDefault("aws.sqs_queue_url", fmt.Sprintf("http://localhost:4566/000000000000/%s.fifo", serviceName))
	v.SetDefault("aws.workers", 10)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.claim_ttl", 24*time.Hour)

	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.otlp_endpoint", "")
}

// Validate rejects unknown transport and storage modes
func (c *Config) Validate() error {
	switch c.Transport {
	case TransportAWS, TransportMemory:
	default:
		return errors.Errorf("unknown transport %q", c.Transport)
	}

	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return errors.Errorf("unknown storage %q", c.Storage)
	}

	return nil
}

// GetDatabaseURL returns database.url when set, otherwise builds it from
// the individual components
func (c *Config) GetDatabaseURL() string {
	if c.Database.URL != "" {
		return c.Database.URL
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}
