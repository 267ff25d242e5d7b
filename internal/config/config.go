// Package config loads tool configuration from environment variables,
// optionally seeded from a YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the configuration shared by the search tools.
type Config struct {
	Endpoint  string `yaml:"endpoint"`
	APIKey    string `yaml:"api_key"`
	IndexName string `yaml:"index_name"`

	Smoke   SmokeConfig   `yaml:"smoke"`
	PDF     PDFConfig     `yaml:"pdf"`
	Logging LoggingConfig `yaml:"logging"`
}

// SmokeConfig holds smoke-test settings.
type SmokeConfig struct {
	Query          string `yaml:"query"`
	Top            int    `yaml:"top"`
	SettleDelaySec int    `yaml:"settle_delay_sec"`
}

// PDFConfig holds PDF ingest settings.
type PDFConfig struct {
	IndexName      string `yaml:"index_name"`
	Path           string `yaml:"path"`
	Top            int    `yaml:"top"`
	PreUploadSec   int    `yaml:"pre_upload_delay_sec"`
	SettleDelaySec int    `yaml:"settle_delay_sec"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// Load builds the configuration. Precedence: environment variables
// override the optional YAML file named by SEARCH_CONFIG; defaults fill
// the rest. Validation is per-tool (ValidateSmoke / ValidatePDF).
func Load() (Config, error) {
	var cfg Config

	if path := os.Getenv("SEARCH_CONFIG"); path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		data = expandEnvVars(data)
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable,
// defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// applyEnv overrides fields from SEARCH_* environment variables.
func (c *Config) applyEnv() {
	setString(&c.Endpoint, "SEARCH_ENDPOINT")
	setString(&c.APIKey, "SEARCH_API_KEY")
	setString(&c.IndexName, "SEARCH_INDEX_NAME")
	setString(&c.Smoke.Query, "SEARCH_QUERY")
	setInt(&c.Smoke.Top, "SEARCH_TOP")
	setInt(&c.Smoke.SettleDelaySec, "SEARCH_SETTLE_DELAY_SEC")
	setString(&c.PDF.IndexName, "SEARCH_PDF_INDEX")
	setString(&c.PDF.Path, "SEARCH_PDF_PATH")
	setInt(&c.PDF.Top, "SEARCH_TOP")
	setInt(&c.PDF.SettleDelaySec, "SEARCH_SETTLE_DELAY_SEC")
	setString(&c.Logging.Level, "SEARCH_LOG_LEVEL")
}

func setString(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func setInt(dst *int, name string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Smoke.Query == "" {
		c.Smoke.Query = "cloud search"
	}
	if c.Smoke.Top <= 0 {
		c.Smoke.Top = 5
	}
	if c.Smoke.SettleDelaySec <= 0 {
		c.Smoke.SettleDelaySec = 3
	}
	if c.PDF.IndexName == "" {
		c.PDF.IndexName = "pdf-documents-index"
	}
	if c.PDF.Path == "" {
		c.PDF.Path = "document.pdf"
	}
	if c.PDF.Top <= 0 {
		c.PDF.Top = 5
	}
	if c.PDF.PreUploadSec <= 0 {
		c.PDF.PreUploadSec = 2
	}
	if c.PDF.SettleDelaySec <= 0 {
		c.PDF.SettleDelaySec = 5
	}
}

// ValidateSmoke checks the fields the smoke test requires.
func (c *Config) ValidateSmoke() error {
	if err := c.validateConnection(); err != nil {
		return err
	}
	if c.IndexName == "" {
		return missing("index_name", "SEARCH_INDEX_NAME")
	}
	return nil
}

// ValidatePDF checks the fields the PDF tool requires.
func (c *Config) ValidatePDF() error {
	return c.validateConnection()
}

func (c *Config) validateConnection() error {
	if c.Endpoint == "" {
		return missing("endpoint", "SEARCH_ENDPOINT")
	}
	if !strings.HasPrefix(c.Endpoint, "http://") && !strings.HasPrefix(c.Endpoint, "https://") {
		return fmt.Errorf("endpoint %q must be an http(s) URL", c.Endpoint)
	}
	if c.APIKey == "" {
		return missing("api_key", "SEARCH_API_KEY")
	}
	return nil
}

func missing(field, envVar string) error {
	return fmt.Errorf("missing configuration: %s (set %s)", field, envVar)
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment
// variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
