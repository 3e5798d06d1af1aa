package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
)

const (
	StoreBackendMemory = "memory"
	StoreBackendRedis  = "redis"
)

type Config struct {
	Primary   Primary         `koanf:"primary"`
	Server    ServerConfig    `koanf:"server"`
	Daraja    DarajaConfig    `koanf:"daraja"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Store     StoreConfig     `koanf:"store"`
	Redis     RedisConfig     `koanf:"redis" validate:"-"`
	Database  DatabaseConfig  `koanf:"database" validate:"-"`
	Logger    LoggerConfig    `koanf:"logger"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port           string        `koanf:"port" validate:"required"`
	ReadTimeout    time.Duration `koanf:"read_timeout" validate:"required,gt=0"`
	WriteTimeout   time.Duration `koanf:"write_timeout" validate:"required,gt=0"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" validate:"required,gt=0"`
	RequestTimeout time.Duration `koanf:"request_timeout" validate:"required,gt=0"`
	TrustProxy     bool          `koanf:"trust_proxy"`
	CORSOrigins    []string      `koanf:"cors_origins"`
}

type DarajaConfig struct {
	BaseURL            string        `koanf:"base_url" validate:"required,url"`
	ConsumerKey        string        `koanf:"consumer_key" validate:"required"`
	ConsumerSecret     string        `koanf:"consumer_secret" validate:"required"`
	ShortCode          string        `koanf:"short_code" validate:"required,numeric"`
	PartyB             string        `koanf:"party_b" validate:"omitempty,numeric"`
	Passkey            string        `koanf:"passkey" validate:"required"`
	TransactionType    string        `koanf:"transaction_type" validate:"required,oneof=CustomerBuyGoodsOnline CustomerPayBillOnline"`
	CallbackURL        string        `koanf:"callback_url" validate:"required,url"`
	Timeout            time.Duration `koanf:"timeout" validate:"required,gt=0"`
	TokenSafetyMargin  time.Duration `koanf:"token_safety_margin"`
	DefaultReference   string        `koanf:"default_reference" validate:"required"`
	DefaultDescription string        `koanf:"default_description" validate:"required"`
}

// Receiver is PartyB when set, otherwise the business short code.
func (c DarajaConfig) Receiver() string {
	if c.PartyB != "" {
		return c.PartyB
	}
	return c.ShortCode
}

type RateLimitConfig struct {
	Window      time.Duration `koanf:"window" validate:"required,gt=0"`
	MaxRequests int           `koanf:"max_requests" validate:"required,min=1"`
}

type StoreConfig struct {
	Backend      string        `koanf:"backend" validate:"required,oneof=memory redis"`
	Retention    time.Duration `koanf:"retention" validate:"required,gt=0"`
	ReapInterval time.Duration `koanf:"reap_interval" validate:"required,gt=0"`
}

type RedisConfig struct {
	Addr      string `koanf:"addr" validate:"required"`
	Password  string `koanf:"password"`
	DB        int    `koanf:"db" validate:"min=0"`
	KeyPrefix string `koanf:"key_prefix" validate:"required"`
}

type DatabaseConfig struct {
	Enabled         bool          `koanf:"enabled"`
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"required"`
	User            string        `koanf:"user" validate:"required"`
	Password        string        `koanf:"password" validate:"required"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"ssl_mode" validate:"required"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"required"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"required"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime" validate:"required,gt=0"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time" validate:"required,gt=0"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

func defaults() map[string]any {
	return map[string]any{
		"primary.env": "development",

		"server.port":            "3000",
		"server.read_timeout":    "15s",
		"server.write_timeout":   "40s",
		"server.idle_timeout":    "60s",
		"server.request_timeout": "35s",
		"server.trust_proxy":     false,
		"server.cors_origins": []string{
			"https://spectre-tech.netlify.app",
			"http://localhost:3000",
			"http://127.0.0.1:5500",
			"http://localhost:5500",
		},

		"daraja.base_url":            "https://sandbox.safaricom.co.ke",
		"daraja.transaction_type":    "CustomerBuyGoodsOnline",
		"daraja.timeout":             "30s",
		"daraja.token_safety_margin": "60s",
		"daraja.default_reference":   "SpectreTech",
		"daraja.default_description": "Payment",

		"rate_limit.window":       "60s",
		"rate_limit.max_requests": 10,

		"store.backend":       StoreBackendMemory,
		"store.retention":     "10m",
		"store.reap_interval": "30s",

		"redis.addr":       "localhost:6379",
		"redis.db":         0,
		"redis.key_prefix": "mpesa:txn:",

		"database.enabled":            false,
		"database.port":               5432,
		"database.ssl_mode":           "disable",
		"database.max_open_conns":     10,
		"database.max_idle_conns":     2,
		"database.conn_max_lifetime":  "1h",
		"database.conn_max_idle_time": "10m",
		"database.auto_migrate":       true,

		"logger.level":  "info",
		"logger.format": "text",
	}
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		logger.Error("failed to load defaults", "error", err)
		return nil, err
	}

	err := k.Load(env.Provider("GATEWAY_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "GATEWAY_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	if err := mainConfig.Validate(); err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

// Validate checks the struct tags. Redis and Database are only checked when
// the configuration actually uses them.
func (c *Config) Validate() error {
	validate := validator.New()

	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.Server.RequestTimeout <= c.Daraja.Timeout {
		return fmt.Errorf("server.request_timeout (%s) must exceed daraja.timeout (%s)", c.Server.RequestTimeout, c.Daraja.Timeout)
	}

	if c.Store.Backend == StoreBackendRedis {
		if err := validate.Struct(c.Redis); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}

	if c.Database.Enabled {
		if err := validate.Struct(c.Database); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}

	return nil
}
