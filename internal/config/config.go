// Package config provides configuration management for the budget extractor.
//
// This package handles:
// - Loading and saving configuration from YAML files
// - Output formatting preferences (format, precision)
// - Extraction defaults (tool paths, default output directory, target year mode)
// - Logging configuration with multiple output destinations
// - Configuration validation with detailed error reporting
//
// The configuration is stored in ~/.budgetextract/config.yaml by default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultPrecision = 2
)

// Config represents the complete configuration structure.
type Config struct {
	Output     OutputConfig     `yaml:"output"     json:"output"`
	Extraction ExtractionConfig `yaml:"extraction" json:"extraction"`
	Logging    LoggingConfig    `yaml:"logging"    json:"logging"`

	configPath string
}

// OutputConfig defines output formatting preferences.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Precision     int    `yaml:"precision"      json:"precision"`
}

// ExtractionConfig defines defaults for the extraction pipeline.
type ExtractionConfig struct {
	DefaultOutputDir string `yaml:"default_output_dir" json:"default_output_dir"`
	PdftotextPath    string `yaml:"pdftotext_path"      json:"pdftotext_path"`
	PdfinfoPath      string `yaml:"pdfinfo_path"        json:"pdfinfo_path"`
	// TargetYearMode is validated ("auto" or "filename") and stored; the
	// extraction pipeline does not read it and always takes the target fiscal
	// year from the input file name.
	TargetYearMode string `yaml:"target_year_mode" json:"target_year_mode"`
}

// LoggingConfig defines logging preferences.
type LoggingConfig struct {
	Level   string      `yaml:"level"   json:"level"`
	Format  string      `yaml:"format"  json:"format"`  // "json", "text" or "console"
	Outputs []LogOutput `yaml:"outputs" json:"outputs"` // Multiple output destinations
	File    string      `yaml:"file"    json:"file"`    // Legacy: single file output
	Audit   AuditConfig `yaml:"audit"   json:"audit"`
}

// AuditConfig defines the audit trail logging preferences.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	File    string `yaml:"file"    json:"file"`
}

// LogOutput defines a logging output destination.
type LogOutput struct {
	Type      string `yaml:"type"                  json:"type"`                  // "console", "file", "syslog"
	Level     string `yaml:"level,omitempty"       json:"level,omitempty"`       // Optional: override global level
	Path      string `yaml:"path,omitempty"        json:"path,omitempty"`        // For file type
	Format    string `yaml:"format,omitempty"      json:"format,omitempty"`      // Optional: override global format
	MaxSizeMB int    `yaml:"max_size_mb,omitempty" json:"max_size_mb,omitempty"` // File rotation
	MaxFiles  int    `yaml:"max_files,omitempty"   json:"max_files,omitempty"`   // File rotation
}

// New creates a new configuration with defaults.
func New() *Config {
	homeDir, _ := os.UserHomeDir()
	baseDir := filepath.Join(homeDir, ".budgetextract")

	cfg := &Config{
		Output: OutputConfig{
			DefaultFormat: "json",
			Precision:     defaultPrecision,
		},
		Extraction: ExtractionConfig{
			DefaultOutputDir: filepath.Join(baseDir, "output"),
			PdftotextPath:    "pdftotext",
			PdfinfoPath:      "pdfinfo",
			TargetYearMode:   "auto",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   filepath.Join(baseDir, "logs", "budgetextract.log"),
			Outputs: []LogOutput{
				{
					Type:   "console",
					Level:  "info",
					Format: "text",
				},
			},
		},

		configPath: filepath.Join(baseDir, "config.yaml"),
	}

	// Load from file if exists
	if err := cfg.Load(); err != nil {
		switch {
		case os.IsNotExist(err):
			// Config file doesn't exist - this is fine, use defaults
		case os.IsPermission(err):
			fmt.Fprintf(os.Stderr, "Warning: Permission denied reading config file: %v\n", err)
		default:
			fmt.Fprintf(os.Stderr, "Warning: Config file may be corrupted, using defaults: %v\n", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg
}

// Load loads configuration from the config file.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, c)
}

// Save saves the current configuration to the config file.
func (c *Config) Save() error {
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(c.configPath, data, 0600)
}

// Set sets a configuration value using dot notation.
func (c *Config) Set(key, value string) error {
	parts := strings.Split(key, ".")
	if len(parts) < 1 {
		return errors.New("invalid key format")
	}

	switch parts[0] {
	case "output":
		return c.setOutputValue(parts[1:], value)
	case "extraction":
		return c.setExtractionValue(parts[1:], value)
	case "logging":
		return c.setLoggingValue(parts[1:], value)
	default:
		return fmt.Errorf("unknown configuration section: %s", parts[0])
	}
}

// Get gets a configuration value using dot notation.
func (c *Config) Get(key string) (interface{}, error) {
	parts := strings.Split(key, ".")
	if len(parts) < 1 {
		return nil, errors.New("invalid key format")
	}

	switch parts[0] {
	case "output":
		return c.getOutputValue(parts[1:])
	case "extraction":
		return c.getExtractionValue(parts[1:])
	case "logging":
		return c.getLoggingValue(parts[1:])
	default:
		return nil, fmt.Errorf("unknown configuration section: %s", parts[0])
	}
}

// List returns all configuration as a map.
func (c *Config) List() map[string]interface{} {
	return map[string]interface{}{
		"output":     c.Output,
		"extraction": c.Extraction,
		"logging":    c.Logging,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validFormats := []string{"table", "json", "ndjson"}
	valid := false
	for _, format := range validFormats {
		if c.Output.DefaultFormat == format {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid output format: %s (must be one of: %v)", c.Output.DefaultFormat, validFormats)
	}

	if c.Output.Precision < 0 || c.Output.Precision > 10 {
		return fmt.Errorf("invalid precision: %d (must be between 0 and 10)", c.Output.Precision)
	}

	if err := c.validateExtraction(); err != nil {
		return fmt.Errorf("extraction configuration validation failed: %w", err)
	}

	if err := c.validateLogging(); err != nil {
		return fmt.Errorf("logging configuration validation failed: %w", err)
	}

	return nil
}

func (c *Config) validateExtraction() error {
	validModes := []string{"auto", "filename"}
	valid := false
	for _, m := range validModes {
		if c.Extraction.TargetYearMode == m {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid target_year_mode: %s (must be one of: %v)", c.Extraction.TargetYearMode, validModes)
	}
	if c.Extraction.PdftotextPath == "" {
		return errors.New("extraction.pdftotext_path must not be empty")
	}
	if c.Extraction.PdfinfoPath == "" {
		return errors.New("extraction.pdfinfo_path must not be empty")
	}
	return nil
}

// validateLogging validates logging configuration.
func (c *Config) validateLogging() error {
	if c.Logging.Level != "" {
		if err := isValidLevel(c.Logging.Level); err != nil {
			return err
		}
	}

	if c.Logging.Format != "" {
		if err := isValidFormat(c.Logging.Format); err != nil {
			return err
		}
	}

	if c.Logging.File != "" {
		if err := validateFilePath(c.Logging.File); err != nil {
			return err
		}
	}

	for i, output := range c.Logging.Outputs {
		if err := validateLogOutput(output); err != nil {
			return fmt.Errorf("output %d: %w", i, err)
		}
	}

	return nil
}

func isValidLevel(level string) error {
	validLevels := []string{"trace", "debug", "info", "warn", "error"}
	for _, validLevel := range validLevels {
		if level == validLevel {
			return nil
		}
	}
	return fmt.Errorf("invalid log level: %s (must be one of: %v)", level, validLevels)
}

func isValidFormat(format string) error {
	validFormats := []string{"json", "text", "console"}
	for _, validFormat := range validFormats {
		if format == validFormat {
			return nil
		}
	}
	return fmt.Errorf("invalid log format: %s (must be one of: %v)", format, validFormats)
}

func validateFilePath(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("log file path must be absolute: %s", path)
	}

	logDir := filepath.Dir(path)
	if _, statErr := os.Stat(logDir); statErr != nil && os.IsNotExist(statErr) {
		if mkdirErr := os.MkdirAll(logDir, 0700); mkdirErr != nil {
			return fmt.Errorf("cannot create log directory %s: %w", logDir, mkdirErr)
		}
	}

	return nil
}

const (
	outputTypeFile = "file"
)

// validateLogOutput validates a single log output configuration.
func validateLogOutput(output LogOutput) error {
	if err := validateOutputType(output.Type); err != nil {
		return err
	}

	if output.Level != "" {
		if err := isValidLevel(output.Level); err != nil {
			return err
		}
	}

	if output.Format != "" {
		if err := isValidFormat(output.Format); err != nil {
			return err
		}
	}

	if output.Type == outputTypeFile {
		return validateFileOutput(output)
	}

	return nil
}

func validateOutputType(outputType string) error {
	validTypes := []string{"console", outputTypeFile, "syslog"}
	for _, t := range validTypes {
		if outputType == t {
			return nil
		}
	}
	return fmt.Errorf("invalid output type: %s (must be one of: %v)", outputType, validTypes)
}

func validateFileOutput(output LogOutput) error {
	if output.Path == "" {
		return errors.New("file output requires 'path' field")
	}
	if !filepath.IsAbs(output.Path) {
		return fmt.Errorf("file path must be absolute: %s", output.Path)
	}

	logDir := filepath.Dir(output.Path)
	if _, statErr := os.Stat(logDir); statErr != nil && os.IsNotExist(statErr) {
		if mkdirErr := os.MkdirAll(logDir, 0700); mkdirErr != nil {
			return fmt.Errorf("cannot create log directory %s: %w", logDir, mkdirErr)
		}
	}

	if output.MaxSizeMB < 0 {
		return fmt.Errorf("max_size_mb must be non-negative (0 means unlimited), got: %d", output.MaxSizeMB)
	}
	if output.MaxFiles < 0 {
		return fmt.Errorf("max_files must be non-negative (0 means unlimited), got: %d", output.MaxFiles)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if format := os.Getenv("BUDGETEXTRACT_OUTPUT_FORMAT"); format != "" {
		c.Output.DefaultFormat = format
	}
	if precision := os.Getenv("BUDGETEXTRACT_OUTPUT_PRECISION"); precision != "" {
		if p, err := strconv.Atoi(precision); err == nil {
			c.Output.Precision = p
		}
	}

	if dir := os.Getenv("BUDGETEXTRACT_OUTPUT_DIR"); dir != "" {
		c.Extraction.DefaultOutputDir = dir
	}
	if path := os.Getenv("BUDGETEXTRACT_PDFTOTEXT_PATH"); path != "" {
		c.Extraction.PdftotextPath = path
	}
	if path := os.Getenv("BUDGETEXTRACT_PDFINFO_PATH"); path != "" {
		c.Extraction.PdfinfoPath = path
	}
	if mode := os.Getenv("BUDGETEXTRACT_TARGET_YEAR_MODE"); mode != "" {
		c.Extraction.TargetYearMode = mode
	}

	if level := os.Getenv("BUDGETEXTRACT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("BUDGETEXTRACT_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	if logFile := os.Getenv("BUDGETEXTRACT_LOG_FILE"); logFile != "" {
		c.Logging.File = logFile
	}
}

// Helper methods for setting values.
func (c *Config) setOutputValue(parts []string, value string) error {
	if len(parts) != 1 {
		return errors.New("invalid output key")
	}

	switch parts[0] {
	case "default_format":
		c.Output.DefaultFormat = value
	case "precision":
		p, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("precision must be a number: %w", err)
		}
		c.Output.Precision = p
	default:
		return fmt.Errorf("unknown output setting: %s", parts[0])
	}

	return nil
}

func (c *Config) setExtractionValue(parts []string, value string) error {
	if len(parts) != 1 {
		return errors.New("invalid extraction key")
	}

	switch parts[0] {
	case "default_output_dir":
		c.Extraction.DefaultOutputDir = value
	case "pdftotext_path":
		c.Extraction.PdftotextPath = value
	case "pdfinfo_path":
		c.Extraction.PdfinfoPath = value
	case "target_year_mode":
		c.Extraction.TargetYearMode = value
	default:
		return fmt.Errorf("unknown extraction setting: %s", parts[0])
	}

	return nil
}

func (c *Config) setLoggingValue(parts []string, value string) error {
	if len(parts) != 1 {
		return errors.New("invalid logging key")
	}

	switch parts[0] {
	case "level":
		c.Logging.Level = value
	case "format":
		c.Logging.Format = value
	case "file":
		c.Logging.File = value
	default:
		return fmt.Errorf("unknown logging setting: %s", parts[0])
	}

	return nil
}

// Helper methods for getting values.
func (c *Config) getOutputValue(parts []string) (interface{}, error) {
	if len(parts) != 1 {
		return nil, errors.New("invalid output key")
	}

	switch parts[0] {
	case "default_format":
		return c.Output.DefaultFormat, nil
	case "precision":
		return c.Output.Precision, nil
	default:
		return nil, fmt.Errorf("unknown output setting: %s", parts[0])
	}
}

func (c *Config) getExtractionValue(parts []string) (interface{}, error) {
	if len(parts) != 1 {
		return nil, errors.New("invalid extraction key")
	}

	switch parts[0] {
	case "default_output_dir":
		return c.Extraction.DefaultOutputDir, nil
	case "pdftotext_path":
		return c.Extraction.PdftotextPath, nil
	case "pdfinfo_path":
		return c.Extraction.PdfinfoPath, nil
	case "target_year_mode":
		return c.Extraction.TargetYearMode, nil
	default:
		return nil, fmt.Errorf("unknown extraction setting: %s", parts[0])
	}
}

func (c *Config) getLoggingValue(parts []string) (interface{}, error) {
	if len(parts) != 1 {
		return nil, errors.New("invalid logging key")
	}

	switch parts[0] {
	case "level":
		return c.Logging.Level, nil
	case "file":
		return c.Logging.File, nil
	default:
		return nil, fmt.Errorf("unknown logging setting: %s", parts[0])
	}
}

// GetOutputFormat returns the output format to use, preferring user choice over config default.
func GetOutputFormat(userChoice string) string {
	if userChoice != "" {
		return userChoice
	}

	cfg := GetGlobalConfig()
	return cfg.Output.DefaultFormat
}
