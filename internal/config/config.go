package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. MONDAYRANGE_DATA_FILTERED_PATH.
const EnvPrefix = "MONDAYRANGE"

// Config holds all application configuration.
type Config struct {
	Input struct {
		RawPath   string `yaml:"raw_path" envconfig:"RAW_PATH"`
		Delimiter string `yaml:"delimiter" envconfig:"DELIMITER" validate:"len=1"`
		Encoding  string `yaml:"encoding" envconfig:"ENCODING" validate:"oneof=latin1 utf8"`
	} `yaml:"input" envconfig:"INPUT"`
	Data struct {
		FilteredPath string `yaml:"filtered_path" envconfig:"FILTERED_PATH" validate:"required"`
	} `yaml:"data" envconfig:"DATA"`
	Report struct {
		XLSXPath        string `yaml:"xlsx_path" envconfig:"XLSX_PATH"`
		PartialXLSXPath string `yaml:"partial_xlsx_path" envconfig:"PARTIAL_XLSX_PATH"`
		JSONPath        string `yaml:"json_path" envconfig:"JSON_PATH"`
		ChartPath       string `yaml:"chart_path" envconfig:"CHART_PATH"`
	} `yaml:"report" envconfig:"REPORT"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
	} `yaml:"database" envconfig:"DATABASE"`
	Schedule struct {
		Cron string `yaml:"cron" envconfig:"CRON"`
	} `yaml:"schedule" envconfig:"SCHEDULE"`
	Log struct {
		Level  string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn error"`
		Pretty bool   `yaml:"pretty" envconfig:"PRETTY"`
	} `yaml:"log" envconfig:"LOG"`
}

var validate = validator.New()

// Load reads a .env file if present, then the YAML config at path, then
// applies environment variable overrides and defaults. A missing config
// file is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
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

	// Environment variable overrides
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	// Defaults
	if cfg.Input.Delimiter == "" {
		cfg.Input.Delimiter = ";"
	}
	if cfg.Input.Encoding == "" {
		cfg.Input.Encoding = "latin1"
	}
	if cfg.Data.FilteredPath == "" {
		cfg.Data.FilteredPath = "filtered_candles.csv"
	}
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 0 7 * * 6"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DelimiterRune returns the configured vendor delimiter.
func (c *Config) DelimiterRune() rune {
	for _, r := range c.Input.Delimiter {
		return r
	}
	return ';'
}
