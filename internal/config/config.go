package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var ErrMissingConfig = errors.New("missing required configuration")

const (
	SourceMongo = "mongo"
	SourceMySQL = "mysql"
)

type Config struct {
	Port     string `yaml:"port"`
	Env      string `yaml:"env"`
	Version  string `yaml:"version"`
	LogLevel string `yaml:"log_level"`

	CatalogSource string `yaml:"catalog_source"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	RestaurantUID string `yaml:"restaurant_uid"`
	MySQLDSN      string `yaml:"mysql_dsn"`
	SeedFile      string `yaml:"seed_file"`

	RedisAddr string `yaml:"redis_addr"`

	KafkaBrokers []string `yaml:"kafka_brokers"`
	KafkaTopic   string   `yaml:"kafka_topic"`
	KafkaGroupID string   `yaml:"kafka_group_id"`

	CatalogCacheTTL time.Duration `yaml:"catalog_cache_ttl"`
	CartRetention   time.Duration `yaml:"cart_retention"`
	CartIdleTimeout time.Duration `yaml:"cart_idle_timeout"`
}

func defaults() Config {
	return Config{
		Port:            "3000",
		Env:             "development",
		Version:         "1.0.0",
		CatalogSource:   SourceMongo,
		MongoDatabase:   "restaurant",
		RedisAddr:       "localhost:6379",
		KafkaBrokers:    getKafkaBrokerURLs(),
		KafkaTopic:      "cart-notifications",
		KafkaGroupID:    "restaurant-service-group",
		CatalogCacheTTL: 5 * time.Minute,
		CartRetention:   24 * time.Hour,
		CartIdleTimeout: 30 * time.Minute,
	}
}

// Load reads the YAML file named by CONFIG_PATH, if any, then applies
// environment overrides and validates the result.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.Env, "ENV")
	setString(&c.Version, "APP_VERSION")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.CatalogSource, "CATALOG_SOURCE")
	setString(&c.MongoURI, "MONGO_URI")
	setString(&c.MongoDatabase, "MONGO_DATABASE")
	setString(&c.RestaurantUID, "RESTAURANT_UID")
	setString(&c.MySQLDSN, "MYSQL_DSN")
	setString(&c.SeedFile, "SEED_FILE")
	setString(&c.RedisAddr, "REDIS_ADDR")
	setString(&c.KafkaTopic, "KAFKA_TOPIC")
	setString(&c.KafkaGroupID, "KAFKA_GROUP_ID")
	if os.Getenv("KAFKA_BROKERS") != "" {
		c.KafkaBrokers = getKafkaBrokerURLs()
	}

	for key, dst := range map[string]*time.Duration{
		"CATALOG_CACHE_TTL": &c.CatalogCacheTTL,
		"CART_RETENTION":    &c.CartRetention,
		"CART_IDLE_TIMEOUT": &c.CartIdleTimeout,
	} {
		if err := setDuration(dst, key); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validate() error {
	c.CatalogSource = strings.ToLower(strings.TrimSpace(c.CatalogSource))
	switch c.CatalogSource {
	case SourceMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("%w: MONGO_URI", ErrMissingConfig)
		}
	case SourceMySQL:
		if c.MySQLDSN == "" {
			return fmt.Errorf("%w: MYSQL_DSN", ErrMissingConfig)
		}
	default:
		return fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	if c.SeedFile != "" && c.CatalogSource != SourceMongo {
		return errors.New("SEED_FILE requires CATALOG_SOURCE=mongo")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Level is LOG_LEVEL, or debug in development and info elsewhere.
func (c *Config) Level() zerolog.Level {
	if c.LogLevel != "" {
		if level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err == nil {
			return level
		}
	}
	if c.IsDevelopment() {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// setDuration accepts Go durations ("90s") or a bare number of seconds.
func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
		return nil
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = time.Duration(secs) * time.Second
	return nil
}
