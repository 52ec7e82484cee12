package config

import (
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"fairflow/internal/dataset"
)

// Config represents the complete application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Survey    SurveyConfig    `yaml:"survey" envconfig:"SURVEY"`
	Ridership RidershipConfig `yaml:"ridership" envconfig:"RIDERSHIP"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// SurveyConfig locates the survey source and its funnel definition.
type SurveyConfig struct {
	// File is the downloaded survey workbook. CSV exports work too; the
	// loader picks by extension.
	File string `yaml:"file" envconfig:"FILE"`
	// Sheet selects the worksheet; empty means the first sheet.
	Sheet string `yaml:"sheet" envconfig:"SHEET"`
	// SkipRows is the preamble offset above the header row of the known
	// export.
	SkipRows int `yaml:"skip_rows" envconfig:"SKIP_ROWS"`
	// FunnelFile optionally overrides the built-in Fair Fares funnel
	// definition with a YAML chain.
	FunnelFile string `yaml:"funnel_file" envconfig:"FUNNEL_FILE"`
	// Sheets configures reading the survey straight from Google Sheets
	// instead of a downloaded file.
	Sheets dataset.SheetsConfig `yaml:"sheets" envconfig:"SHEETS"`
}

// RidershipConfig locates the origin-destination datasets.
type RidershipConfig struct {
	// Files are the yearly exports, stitched together in order.
	Files []string `yaml:"files" envconfig:"FILES"`
	// TopN is the default ranking depth for destination analyses.
	TopN int `yaml:"top_n" envconfig:"TOP_N"`
}

// Load loads configuration from an optional config file and environment
// variables, layered over the built-in defaults. Precedence: environment
// variables, then the file, then defaults. The struct tags carry no
// envconfig defaults so Process only touches fields whose variables are
// actually set, leaving file-configured values intact.
func Load() (*Config, error) {
	cfg := Default()

	if path := findConfigFile(); path != "" {
		if err := loadFromFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process("FAIRFLOW", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile merges a YAML file into cfg; keys absent from the file keep
// their current values.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// findConfigFile checks the common config file locations.
func findConfigFile() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

// validate validates the configuration.
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}
	if c.Survey.SkipRows < 0 {
		return fmt.Errorf("survey skip rows must not be negative: %d", c.Survey.SkipRows)
	}
	if c.Ridership.TopN <= 0 {
		return fmt.Errorf("ridership top N must be positive: %d", c.Ridership.TopN)
	}
	if c.Logging.Format != "json" {
		// The log pipeline only understands JSON.
		c.Logging.Format = "json"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/fairflow.log"
	}
	return nil
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     100,
				Burst:   50,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "both",
			FilePath: "logs/fairflow.log",
		},
		Survey: SurveyConfig{
			File:     "data/CunyMetroCard191.xlsx",
			SkipRows: 8,
		},
		Ridership: RidershipConfig{
			TopN: 5,
		},
	}
}
