// Package config loads image-to-text configuration from defaults, an optional
// YAML file, a .env file and environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/image-to-text/internal/format"
	"github.com/ironsheep/image-to-text/internal/ocr"
)

// Config holds all configuration.
type Config struct {
	OCR    OCRConfig        `yaml:"ocr"`
	Format format.Overrides `yaml:"format"`
	Batch  BatchConfig      `yaml:"batch"`
	Log    LogConfig        `yaml:"log"`
}

// OCRConfig holds engine settings.
type OCRConfig struct {
	Languages ocr.Languages `yaml:"languages"`

	ocr.Config `yaml:",inline"`
}

// BatchConfig holds batch conversion settings.
type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// Load reads configuration from environment variables and an optional config
// file. An empty path skips the file.
func Load(path string) (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Languages: ocr.Languages{ocr.DefaultLanguage},
		},
		Batch: BatchConfig{
			Concurrency: 2,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("IMAGE_TEXT_LANGUAGE"); v != "" {
		cfg.OCR.Languages = ocr.ParseLanguages(v)
	}

	if v := os.Getenv("TESSDATA_PREFIX"); v != "" {
		cfg.OCR.TessdataPrefix = v
	}

	if v := os.Getenv("IMAGE_TEXT_PSM"); v != "" {
		psm, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("IMAGE_TEXT_PSM: %w", err)
		}
		cfg.OCR.PageSegMode = psm
	}

	if v := os.Getenv("IMAGE_TEXT_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("IMAGE_TEXT_CONCURRENCY: %w", err)
		}
		cfg.Batch.Concurrency = n
	}

	if v := os.Getenv("IMAGE_TEXT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}

	if v := os.Getenv("IMAGE_TEXT_LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}

	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if len(c.OCR.Languages) == 0 {
		errs = append(errs, errors.New("ocr.languages must name at least one language"))
	}
	for _, lang := range c.OCR.Languages {
		if strings.TrimSpace(lang) == "" || strings.ContainsAny(lang, " /\\") {
			errs = append(errs, fmt.Errorf("ocr.languages: invalid language code %q", lang))
		}
	}

	if c.OCR.PageSegMode < 0 || c.OCR.PageSegMode > 13 {
		errs = append(errs, fmt.Errorf("ocr.page_seg_mode must be between 0 and 13, got %d", c.OCR.PageSegMode))
	}

	if c.Batch.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("batch.concurrency must be at least 1, got %d", c.Batch.Concurrency))
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}
