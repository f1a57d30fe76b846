package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DataDir      string `env:"DATA_DIR" env-default:"./data"`
	ReportPath   string `env:"REPORT_PATH" env-default:"./index.html"`
	ExportPath   string `env:"EXPORT_PATH" env-default:"./merged_deduplicated_data.csv"`
	ExportFormat string `env:"EXPORT_FORMAT" env-default:"csv"`

	// PDFPath enables the PDF snapshot of the report when set.
	PDFPath   string `env:"PDF_PATH" env-default:""`
	ChromeBin string `env:"CHROME_BIN" env-default:""`

	MaxConcurrency int    `env:"MAX_CONCURRENCY" env-default:"4"`
	MaxRetries     int    `env:"MAX_RETRIES" env-default:"3"`
	ProfilePath    string `env:"PROFILE_PATH" env-default:""`
	LogLevel       string `env:"LOG_LEVEL" env-default:"info"`
}

// Load reads the .env file if present and returns a populated Config.
func Load() (*Config, error) {
	// A missing .env is normal; system env vars are used instead.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if cfg.MaxConcurrency < 1 {
		cfg.MaxConcurrency = 1
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}
	return cfg, nil
}

// LoadProfile returns the pipeline profile named by ProfilePath, or the
// default profile when no path is configured.
func (c *Config) LoadProfile() (*Profile, error) {
	if c.ProfilePath == "" {
		return DefaultProfile(), nil
	}
	return ReadProfile(c.ProfilePath)
}
