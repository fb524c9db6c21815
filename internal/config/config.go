package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SlotOptimizer/internal/domain"
	"github.com/m04kA/SMC-SlotOptimizer/internal/slotengine"
	"github.com/m04kA/SMC-SlotOptimizer/pkg/types"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server            ServerConfig            `toml:"server"`
	Database          DatabaseConfig          `toml:"database"`
	Logs              LogsConfig              `toml:"logs"`
	Metrics           MetricsConfig           `toml:"metrics"`
	Engine            EngineConfig            `toml:"engine"`
	RateLimit         RateLimitConfig         `toml:"rate_limit"`
	MatchingOptimizer MatchingOptimizerConfig `toml:"matching_optimizer"`
}

// ServerConfig настройки HTTP-сервера. Таймауты в секундах.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
	RequestTimeout  int `toml:"request_timeout"`
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

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// EngineConfig параметры движка подбора слотов и ограничения на размер запроса
type EngineConfig struct {
	MinGapMinutes           int    `toml:"min_gap_minutes"`
	DayStart                string `toml:"day_start"`
	DayEnd                  string `toml:"day_end"`
	StepMinutes             int    `toml:"step_minutes"`
	Rule                    string `toml:"rule"` // boundary | gap_multiple
	Workers                 int    `toml:"workers"`
	MaxTherapists           int    `toml:"max_therapists"`
	MaxBookingsPerTherapist int    `toml:"max_bookings_per_therapist"`
}

// Params параметры движка по умолчанию для запросов
func (c EngineConfig) Params() slotengine.Params {
	return slotengine.Params{
		MinGapMinutes: c.MinGapMinutes,
		DayStart:      types.TimeString(c.DayStart),
		DayEnd:        types.TimeString(c.DayEnd),
	}
}

// NewEngine собирает движок по конфигурации
func (c EngineConfig) NewEngine() (*slotengine.Engine, error) {
	classifier, err := slotengine.RuleByName(c.Rule)
	if err != nil {
		return nil, err
	}
	return slotengine.NewEngine(slotengine.Options{
		Classifier:  classifier,
		StepMinutes: c.StepMinutes,
		Workers:     c.Workers,
	}), nil
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `toml:"requests_per_second"` // 0 - лимит выключен
	Burst             int     `toml:"burst"`
}

type MatchingOptimizerConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// RequestTimeout таймаут обработки одного запроса
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeout) * time.Second
}

// Load читает конфигурацию из TOML-файла, заполняет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 10)
	setDefault(&c.Server.WriteTimeout, 10)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 10)
	setDefault(&c.Server.RequestTimeout, 5)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "slot-optimizer"
	}

	setDefault(&c.Engine.MinGapMinutes, domain.DefaultMinGapMinutes)
	setDefault(&c.Engine.StepMinutes, domain.DefaultStepMinutes)
	setDefault(&c.Engine.Workers, 1)
	setDefault(&c.Engine.MaxTherapists, 50)
	setDefault(&c.Engine.MaxBookingsPerTherapist, 40)
	if c.Engine.DayStart == "" {
		c.Engine.DayStart = domain.DefaultDayStart.String()
	}
	if c.Engine.DayEnd == "" {
		c.Engine.DayEnd = domain.DefaultDayEnd.String()
	}
	if c.Engine.Rule == "" {
		c.Engine.Rule = slotengine.RuleBoundary
	}

	setDefault(&c.RateLimit.Burst, 10)
	setDefault(&c.MatchingOptimizer.Timeout, 5)
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}

	start, err := types.ParseMinutes(c.Engine.DayStart)
	if err != nil {
		return fmt.Errorf("%w: engine.day_start: %v", ErrInvalidConfig, err)
	}
	end, err := types.ParseMinutes(c.Engine.DayEnd)
	if err != nil {
		return fmt.Errorf("%w: engine.day_end: %v", ErrInvalidConfig, err)
	}
	if start >= end {
		return fmt.Errorf("%w: engine.day_start must be before engine.day_end", ErrInvalidConfig)
	}
	if c.Engine.MinGapMinutes > domain.MaxMinGapMinutes {
		return fmt.Errorf("%w: engine.min_gap_minutes must be <= %d", ErrInvalidConfig, domain.MaxMinGapMinutes)
	}
	if _, err := slotengine.RuleByName(c.Engine.Rule); err != nil {
		return fmt.Errorf("%w: engine.rule: %v", ErrInvalidConfig, err)
	}

	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: rate_limit.requests_per_second must not be negative", ErrInvalidConfig)
	}
	if c.MatchingOptimizer.Enabled && c.MatchingOptimizer.URL == "" {
		return fmt.Errorf("%w: matching_optimizer.url is required when enabled", ErrInvalidConfig)
	}
	return nil
}

func setDefault(v *int, def int) {
	if *v <= 0 {
		*v = def
	}
}
