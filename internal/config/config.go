package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Pricing  PricingConfig  `toml:"pricing"`
	Events   EventsConfig   `toml:"events"`
	Mailer   MailerConfig   `toml:"mailer"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN собирает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// PricingConfig бизнес-параметры ценообразования и отмены
// Ставка НДС — конфигурация, а не константа: она передается в каждый
// вызов расчета цены и может отличаться между юрисдикциями и тестами
type PricingConfig struct {
	VATRate              float64 `toml:"vat_rate"`               // процент, например 18
	FreeCancellationDays int     `toml:"free_cancellation_days"` // порог бесплатной отмены
	BookingNumberStart   int64   `toml:"booking_number_start"`   // первый человекочитаемый номер брони
}

// EventsConfig настройки публикации событий в RabbitMQ
type EventsConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
}

// MailerConfig настройки клиента почтового сервиса
type MailerConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Load читает и валидирует конфигурацию из toml-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Pricing.VATRate < 0 {
		return nil, fmt.Errorf("config: pricing.vat_rate must be non-negative")
	}
	if cfg.Pricing.FreeCancellationDays == 0 {
		cfg.Pricing.FreeCancellationDays = 3
	}
	if cfg.Pricing.BookingNumberStart == 0 {
		cfg.Pricing.BookingNumberStart = 1001
	}

	return &cfg, nil
}
