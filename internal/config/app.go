package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host                string `mapstructure:"host"`
	Port                string `mapstructure:"port"`
	User                string `mapstructure:"user"`
	Pass                string `mapstructure:"pass"`
	Name                string `mapstructure:"name"`
	MaxConns            int32  `mapstructure:"max_conns"`
	ConnectAttempts     int    `mapstructure:"connect_attempts"`
	ConnectRetryDelayMs int    `mapstructure:"connect_retry_delay_ms"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type Telegram struct {
	Token              string `mapstructure:"token"`
	AdminIDs           string `mapstructure:"admin_ids"`
	Workers            int    `mapstructure:"workers"`
	PollTimeoutSeconds int    `mapstructure:"poll_timeout_seconds"`
	Debug              bool   `mapstructure:"debug"`
}

// ParsedAdminIDs parses the comma separated admin list, e.g. "123,456".
func (t Telegram) ParsedAdminIDs() ([]int64, error) {
	var ids []int64
	for _, raw := range strings.Split(t.AdminIDs, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid admin user id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

type Calculation struct {
	Precision      int32  `mapstructure:"precision"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

type Cache struct {
	MaxItems   int64 `mapstructure:"max_items"`
	TTLSeconds int   `mapstructure:"ttl_seconds"`
}

type Scheduler struct {
	ReconcileIntervalSec int `mapstructure:"reconcile_interval_sec"`
}

type Kafka struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type Logging struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type FeeRange struct {
	Min     string `mapstructure:"min"`
	Max     string `mapstructure:"max"`
	Flat    string `mapstructure:"flat"`
	Percent string `mapstructure:"percent"`
}

// Defaults are seeded into empty tables on startup. Empty values seed nothing.
type Defaults struct {
	BuyRate  string     `mapstructure:"buy_rate"`
	SellRate string     `mapstructure:"sell_rate"`
	Fees     []FeeRange `mapstructure:"fees"`
}

type AppConfig struct {
	HTTPServer  HTTPServer  `mapstructure:"http_server"`
	DbServer    DbServer    `mapstructure:"db_server"`
	Telegram    Telegram    `mapstructure:"telegram"`
	Calculation Calculation `mapstructure:"calculation"`
	Cache       Cache       `mapstructure:"cache"`
	Scheduler   Scheduler   `mapstructure:"scheduler"`
	Kafka       Kafka       `mapstructure:"kafka"`
	Logging     Logging     `mapstructure:"logging"`
	Defaults    Defaults    `mapstructure:"defaults"`
}

func Init() (*AppConfig, error) {
	return Load("config.yaml")
}

func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	// .env is optional, real deployments pass plain env vars
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("db_server.max_conns", 10)
	v.SetDefault("db_server.connect_attempts", 5)
	v.SetDefault("db_server.connect_retry_delay_ms", 500)
	v.SetDefault("telegram.workers", 8)
	v.SetDefault("telegram.poll_timeout_seconds", 60)
	v.SetDefault("calculation.precision", 2)
	v.SetDefault("calculation.currency_symbol", "Rp")
	v.SetDefault("cache.max_items", 16)
	v.SetDefault("scheduler.reconcile_interval_sec", 300)
	v.SetDefault("kafka.topic", "usdtcalc.transactions")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.max_size_mb", 100)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age_days", 30)

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// telegram env vars
	_ = v.BindEnv("telegram.token", "TELEGRAM_BOT_TOKEN")
	_ = v.BindEnv("telegram.admin_ids", "ADMIN_USER_IDS")

	_ = v.BindEnv("http_server.port", "HTTP_PORT")
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("kafka.enabled", "KAFKA_ENABLED")

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if cfg.Telegram.Token == "" {
		return nil, errors.New("telegram bot token is required")
	}
	if _, err := cfg.Telegram.ParsedAdminIDs(); err != nil {
		return nil, err
	}
	if cfg.Calculation.Precision < 0 {
		return nil, fmt.Errorf("calculation precision must not be negative, got %d", cfg.Calculation.Precision)
	}

	return &cfg, nil
}
