// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fjacquet/lease-audit/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LEASE_AUDIT_LOG_LEVEL.
const EnvPrefix = "LEASE_AUDIT"

// Supported report formats, kept here so the config layer does not import the renderer.
var reportFormats = []string{"text", "json", "yaml", "xml", "csv", "xlsx"}

// LogConfig controls the logrus adapter.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// AIConfig controls the optional Gemini extraction.
type AIConfig struct {
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
	Model          string `mapstructure:"model" yaml:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	MaxInputChars  int    `mapstructure:"max_input_chars" yaml:"max_input_chars"`
	APIKey         string `mapstructure:"api_key" yaml:"-"` // Never serialize API key
}

// Timeout returns the request timeout as a duration.
func (a AIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// Active reports whether an AI client should be created.
func (a AIConfig) Active() bool {
	return a.Enabled && a.APIKey != ""
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	Format         string `mapstructure:"format" yaml:"format"`
	Currency       string `mapstructure:"currency" yaml:"currency"`
	MaxDescription int    `mapstructure:"max_description" yaml:"max_description"`
}

// ExtractionConfig controls document text extraction.
type ExtractionConfig struct {
	MaxPages int `mapstructure:"max_pages" yaml:"max_pages"`
}

// Config represents the complete application configuration
type Config struct {
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
	AI         AIConfig         `mapstructure:"ai" yaml:"ai"`
	Report     ReportConfig     `mapstructure:"report" yaml:"report"`
	Extraction ExtractionConfig `mapstructure:"extraction" yaml:"extraction"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.lease-audit")
	v.AddConfigPath(".lease-audit")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logging.GetLogger().WithError(err).Warn("Error reading config file, using defaults",
				logging.F(logging.FieldFile, v.ConfigFileUsed()))
		}
	}

	// 5. The API key is read from the unprefixed variable
	if err := v.BindEnv("ai.api_key", "GEMINI_API_KEY"); err != nil {
		logging.GetLogger().WithError(err).Warn("Failed to bind GEMINI_API_KEY")
	}

	// LOG_LEVEL is honoured as well, since main reads it before configuration loads
	if err := v.BindEnv("log.level", EnvPrefix+"_LOG_LEVEL", "LOG_LEVEL"); err != nil {
		logging.GetLogger().WithError(err).Warn("Failed to bind LOG_LEVEL")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Log:        LogConfig{Level: "info", Format: "text"},
		AI:         AIConfig{Model: "gemini-2.0-flash", TimeoutSeconds: 30, MaxInputChars: 12000},
		Report:     ReportConfig{Format: "text", Currency: "USD", MaxDescription: 50},
		Extraction: ExtractionConfig{MaxPages: 50},
	}
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)

	v.SetDefault("ai.enabled", d.AI.Enabled)
	v.SetDefault("ai.model", d.AI.Model)
	v.SetDefault("ai.timeout_seconds", d.AI.TimeoutSeconds)
	v.SetDefault("ai.max_input_chars", d.AI.MaxInputChars)

	v.SetDefault("report.format", d.Report.Format)
	v.SetDefault("report.currency", d.Report.Currency)
	v.SetDefault("report.max_description", d.Report.MaxDescription)

	v.SetDefault("extraction.max_pages", d.Extraction.MaxPages)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if !isReportFormat(config.Report.Format) {
		return fmt.Errorf("invalid report format: %s (must be one of %s)",
			config.Report.Format, strings.Join(reportFormats, ", "))
	}

	if len(config.Report.Currency) != 3 {
		return fmt.Errorf("report.currency must be a 3-letter code, got: %s", config.Report.Currency)
	}

	if config.Report.MaxDescription < 10 {
		return fmt.Errorf("report.max_description must be at least 10, got: %d", config.Report.MaxDescription)
	}

	if config.Extraction.MaxPages < 1 {
		return fmt.Errorf("extraction.max_pages must be positive, got: %d", config.Extraction.MaxPages)
	}

	if config.AI.MaxInputChars < 1 {
		return fmt.Errorf("ai.max_input_chars must be positive, got: %d", config.AI.MaxInputChars)
	}

	if config.AI.Enabled {
		if config.AI.TimeoutSeconds < 1 || config.AI.TimeoutSeconds > 300 {
			return fmt.Errorf("ai.timeout_seconds must be between 1 and 300, got: %d", config.AI.TimeoutSeconds)
		}
		if config.AI.Model == "" {
			return fmt.Errorf("ai.model is required when AI is enabled")
		}
	}

	return nil
}

func isReportFormat(format string) bool {
	for _, f := range reportFormats {
		if f == format {
			return true
		}
	}
	return false
}

// NewLogger builds the logrus-backed logger described by the configuration.
func NewLogger(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(strings.ToLower(config.Log.Level), strings.ToLower(config.Log.Format))
}
