package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/sonido-mfcc/logging"
	"github.com/RyanBlaney/sonido-mfcc/mfcc"
)

// EnvPrefix prefixes every environment variable, e.g.
// SONIDO_MFCC_EXTRACTION_N_MFCC=13
const EnvPrefix = "SONIDO_MFCC"

// Output formats
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputCSV  = "csv"
)

// Config is the application configuration
type Config struct {
	LogLevel     string                `mapstructure:"log_level"`
	OutputFormat string                `mapstructure:"output_format"`
	Workers      int                   `mapstructure:"workers"` // 0 uses GOMAXPROCS
	Extraction   mfcc.ExtractionConfig `mapstructure:"extraction"`
}

// NewViper returns a viper instance with defaults and environment
// variable lookup configured
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// ReadFile merges a YAML or JSON configuration file into v
func ReadFile(v *viper.Viper, path string) error {
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("unable to read config file %s: %w", path, err)
	}
	return nil
}

// Load unmarshals and validates the configuration held by v
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the application settings and the sample-rate
// independent extraction settings
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	switch c.OutputFormat {
	case OutputJSON, OutputYAML, OutputCSV:
	default:
		return fmt.Errorf("unsupported output format: %q", c.OutputFormat)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.Workers)
	}

	return c.Extraction.Validate(0)
}
