package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jamsturg/bitget-trading-bot/internal/models"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	configDir         = "configs"

	defaultBaseURL = "https://api.bitget.com/api/mix/v1"
	defaultWsURL   = "wss://ws.bitget.com/mix/v1/stream"
)

// Config ...
type Config struct {
	Debug bool `mapstructure:"debug"`

	Bitget struct {
		BaseURL    string `mapstructure:"base_url"`
		WsURL      string `mapstructure:"ws_url"`
		APIKey     string `mapstructure:"api_key"`
		APISecret  string `mapstructure:"api_secret"`
		Passphrase string `mapstructure:"passphrase"`
	} `mapstructure:"bitget"`

	Trading struct {
		// RiskPerTrade — сколько USDT мы готовы потерять по СТОПУ на одной сделке.
		RiskPerTrade   float64 `mapstructure:"risk_per_trade"`
		Leverage       int     `mapstructure:"leverage"`
		MaxRiskPercent float64 `mapstructure:"max_risk_percent"`
		MaxPositions   int     `mapstructure:"max_positions"`
	} `mapstructure:"trading"`

	Monitor struct {
		Interval time.Duration `mapstructure:"interval"`
	} `mapstructure:"monitor"`

	Telegram struct {
		Token  string `mapstructure:"token"`
		ChatID int64  `mapstructure:"chat_id"`
	} `mapstructure:"telegram"`

	DB string `mapstructure:"db_dsn"`

	Jaeger struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"jaeger"`

	Health struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"health"`

	// Файл со списком заявок (относительно configs/).
	TradesFile string `mapstructure:"trades_file"`

	Trades []models.TradeOpportunity `mapstructure:"-"`
}

func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}

	return Load(filepath.Join(configDir, configFileName))
}

// Load читает основной конфиг через viper (yaml или json), накатывает
// env-оверрайды и подтягивает файл заявок.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("bitget.base_url", defaultBaseURL)
	v.SetDefault("bitget.ws_url", defaultWsURL)
	v.SetDefault("trading.risk_per_trade", 6.0)
	v.SetDefault("trading.leverage", 10)
	v.SetDefault("trading.max_risk_percent", 2.0)
	v.SetDefault("trading.max_positions", 5)
	v.SetDefault("monitor.interval", "60s")
	v.SetDefault("health.addr", ":8080")
	v.SetDefault("trades_file", "trades.yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "decode config file")
	}

	applyEnvOverrides(config)

	if err := validateCredentials(config); err != nil {
		return nil, err
	}

	trades, err := LoadTrades(filepath.Join(filepath.Dir(path), config.TradesFile))
	if err != nil {
		return nil, err
	}
	config.Trades = trades

	return config, nil
}

// LoadTrades декодирует файл заявок.
func LoadTrades(path string) ([]models.TradeOpportunity, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open trades file")
	}
	defer func() {
		_ = file.Close()
	}()

	var doc struct {
		Trades []models.TradeOpportunity `yaml:"trades"`
	}
	if err := yaml.NewDecoder(file).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode trades file")
	}
	return doc.Trades, nil
}

func applyEnvOverrides(config *Config) {
	config.Debug = boolFromEnv("DEBUG", config.Debug)

	config.Bitget.APIKey = getenvDefault("BITGET_API_KEY", config.Bitget.APIKey)
	config.Bitget.APISecret = getenvDefault("BITGET_API_SECRET", config.Bitget.APISecret)
	config.Bitget.Passphrase = getenvDefault("BITGET_PASSPHRASE", config.Bitget.Passphrase)

	config.Trading.RiskPerTrade = floatFromEnv("RISK_PER_TRADE", config.Trading.RiskPerTrade)
	config.Trading.Leverage = intFromEnv("LEVERAGE", config.Trading.Leverage)
	config.Trading.MaxRiskPercent = floatFromEnv("MAX_RISK_PERCENT", config.Trading.MaxRiskPercent)
	config.Trading.MaxPositions = intFromEnv("MAX_POSITIONS", config.Trading.MaxPositions)

	config.Telegram.Token = getenvDefault("TELEGRAM_TOKEN", config.Telegram.Token)
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.Telegram.ChatID = id
		}
	}

	config.DB = getenvDefault("DATABASE_DSN", config.DB)
}

// validateCredentials: пустые креды — ошибка на старте, а не отказ подписи в рантайме.
func validateCredentials(config *Config) error {
	missing := []string{}
	if strings.TrimSpace(config.Bitget.APIKey) == "" {
		missing = append(missing, "api_key")
	}
	if strings.TrimSpace(config.Bitget.APISecret) == "" {
		missing = append(missing, "api_secret")
	}
	if strings.TrimSpace(config.Bitget.Passphrase) == "" {
		missing = append(missing, "passphrase")
	}
	if len(missing) > 0 {
		return errors.Errorf("bitget credentials missing or empty: %s", strings.Join(missing, ", "))
	}
	return nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "1" || v == "true" || v == "TRUE" {
			return true
		}
		if v == "0" || v == "false" || v == "FALSE" {
			return false
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
