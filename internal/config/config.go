package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// insecureSecret is the built-in profile token secret, accepted only when
// IDEABRIDGE_ENV=development.
const insecureSecret = "supersecretkey"

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	Addr           string        `yaml:"addr"`
	JWTSecret      string        `yaml:"jwt_secret"`
	APITimeout     time.Duration `yaml:"timeout"`
	TokenDuration  time.Duration `yaml:"token_duration"`
	Backend        string        `yaml:"backend"`
	DatabasePath   string        `yaml:"database_path"`
	MigrateOnStart bool          `yaml:"migrate_on_start"`
	Redis          RedisConfig   `yaml:"redis"`
	LogLevel       string        `yaml:"log_level"`
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// LoadConfig builds the configuration from IDEABRIDGE_* environment defaults
// and, when path is set, overlays the YAML file on top.
func LoadConfig(path string) (*Config, error) {
	apiTimeout := 15 * time.Second
	tokenDuration := 30 * 24 * time.Hour

	cfg := &Config{
		Addr:           getEnv("IDEABRIDGE_ADDR", ":8080"),
		JWTSecret:      getEnv("IDEABRIDGE_JWT_SECRET", insecureSecret),
		APITimeout:     apiTimeout,
		TokenDuration:  tokenDuration,
		Backend:        getEnv("IDEABRIDGE_BACKEND", BackendSQLite),
		DatabasePath:   getEnv("IDEABRIDGE_DATABASE_PATH", "ideabridge.db"),
		MigrateOnStart: getEnvBool("IDEABRIDGE_MIGRATE_ON_START", true),
		Redis: RedisConfig{
			Address:  getEnv("IDEABRIDGE_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("IDEABRIDGE_REDIS_PASSWORD", ""),
			Prefix:   getEnv("IDEABRIDGE_REDIS_PREFIX", "ideabridge:"),
		},
		LogLevel: getEnv("IDEABRIDGE_LOG_LEVEL", "info"),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.Addr == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("jwt_secret is required"))
	} else if c.JWTSecret == insecureSecret && os.Getenv("IDEABRIDGE_ENV") != "development" {
		errs = append(errs, errors.New("jwt_secret uses the insecure default; set IDEABRIDGE_JWT_SECRET or IDEABRIDGE_ENV=development"))
	}
	if c.APITimeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %v", c.APITimeout))
	}
	if c.TokenDuration <= 0 {
		errs = append(errs, fmt.Errorf("token_duration must be positive, got %v", c.TokenDuration))
	}

	switch c.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.DatabasePath == "" {
			errs = append(errs, errors.New("database_path is required for the sqlite backend"))
		}
	case BackendRedis:
		if c.Redis.Address == "" {
			errs = append(errs, errors.New("redis.address is required for the redis backend"))
		}
		if c.Redis.DB < 0 {
			errs = append(errs, fmt.Errorf("redis.db must not be negative, got %d", c.Redis.DB))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown backend %q", c.Backend))
	}

	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}

func getEnvBool(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
