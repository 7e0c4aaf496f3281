// Package config loads the service configuration from a YAML file, an
// optional .env file and environment overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"savings-planner/service"
)

// DefaultPath is read when neither --config nor CONFIG_PATH is given.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr         string        `yaml:"addr"`
		ReadTimeout  time.Duration `yaml:"read_timeout"`
		WriteTimeout time.Duration `yaml:"write_timeout"`
		IdleTimeout  time.Duration `yaml:"idle_timeout"`
	} `yaml:"server"`
	RateLimit struct {
		Capacity int           `yaml:"capacity"`
		Window   time.Duration `yaml:"window"`
	} `yaml:"rate_limit"`
	Redis struct {
		Addr string        `yaml:"addr"` // empty keeps the cache in memory
		TTL  time.Duration `yaml:"ttl"`
	} `yaml:"redis"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"` // empty keeps plans in memory
	} `yaml:"database"`
	Limits struct {
		MaxPeriodCount int    `yaml:"max_period_count"`
		MaxAmount      string `yaml:"max_amount"`
		MaxRatePercent string `yaml:"max_rate_percent"`
	} `yaml:"limits"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"` // empty disables the refresh job
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	// .env es opcional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		c.Database.SQLitePath = v
	}
	if v := os.Getenv("REFRESH_CRON"); v != "" {
		c.Schedule.RefreshCron = v
	}
	if v := os.Getenv("RATE_LIMIT_CAPACITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_CAPACITY: %w", err)
		}
		c.RateLimit.Capacity = n
	}
	if v := os.Getenv("MAX_PERIOD_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MAX_PERIOD_COUNT: %w", err)
		}
		c.Limits.MaxPeriodCount = n
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60 * time.Second
	}
	if c.RateLimit.Capacity == 0 {
		c.RateLimit.Capacity = 5
	}
	if c.RateLimit.Window == 0 {
		c.RateLimit.Window = time.Minute
	}
	if c.Redis.TTL == 0 {
		c.Redis.TTL = time.Hour
	}
	if c.Limits.MaxPeriodCount == 0 {
		c.Limits.MaxPeriodCount = service.DefaultMaxPeriodCount
	}
	if c.Limits.MaxAmount == "" {
		c.Limits.MaxAmount = strconv.Itoa(service.DefaultMaxAmount)
	}
	if c.Limits.MaxRatePercent == "" {
		c.Limits.MaxRatePercent = strconv.Itoa(service.DefaultMaxAnnualRatePercent)
	}
}

// Validate checks that all values are usable.
func (c *Config) Validate() error {
	if c.RateLimit.Capacity < 0 {
		return fmt.Errorf("rate_limit.capacity must not be negative")
	}
	if c.RateLimit.Window < 0 {
		return fmt.Errorf("rate_limit.window must not be negative")
	}
	if c.Limits.MaxPeriodCount < 0 {
		return fmt.Errorf("limits.max_period_count must not be negative")
	}
	if _, err := c.ServiceLimits(); err != nil {
		return err
	}
	return nil
}

// ServiceLimits converts the limits section into service ceilings.
func (c *Config) ServiceLimits() (service.Limits, error) {
	maxAmount, err := decimal.NewFromString(c.Limits.MaxAmount)
	if err != nil {
		return service.Limits{}, fmt.Errorf("limits.max_amount: %w", err)
	}
	if !maxAmount.IsPositive() {
		return service.Limits{}, fmt.Errorf("limits.max_amount must be positive")
	}
	maxRate, err := decimal.NewFromString(c.Limits.MaxRatePercent)
	if err != nil {
		return service.Limits{}, fmt.Errorf("limits.max_rate_percent: %w", err)
	}
	return service.Limits{
		MaxPeriodCount:       c.Limits.MaxPeriodCount,
		MaxAmount:            maxAmount,
		MaxAnnualRatePercent: maxRate,
	}, nil
}
