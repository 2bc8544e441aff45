package sentiment

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigFile     = "config.json"
	defaultBaseURL        = "http://localhost:5000"
	defaultPredictPath    = "/api/predict"
	defaultTimeoutSeconds = 30
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
)

// Config aggregates runtime settings persisted to config.json or config.yaml.
type Config struct {
	BaseURL     string `json:"baseUrl" yaml:"baseUrl" env:"SENTIVIEW_BASE_URL" validate:"required,url"`
	PredictPath string `json:"predictPath" yaml:"predictPath" env:"SENTIVIEW_PREDICT_PATH" validate:"required,startswith=/"`
	// TimeoutSeconds bounds each request. Zero means the default; negative disables the deadline.
	TimeoutSeconds int        `json:"timeoutSeconds" yaml:"timeoutSeconds" env:"SENTIVIEW_TIMEOUT_SECONDS"`
	LogLevel       string     `json:"logLevel" yaml:"logLevel" env:"SENTIVIEW_LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat      string     `json:"logFormat" yaml:"logFormat" env:"SENTIVIEW_LOG_FORMAT" validate:"oneof=text json"`
	Aliases        KeyAliases `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.BaseURL) == "" {
		c.BaseURL = defaultBaseURL
	}
	if strings.TrimSpace(c.PredictPath) == "" {
		c.PredictPath = defaultPredictPath
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.LogLevel = strings.ToLower(c.LogLevel)
	if c.LogFormat == "" {
		c.LogFormat = defaultLogFormat
	}
	c.LogFormat = strings.ToLower(c.LogFormat)
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	out := c
	out.Aliases = c.Aliases.clone()
	return out
}

// Endpoint is the full prediction URL.
func (c Config) Endpoint() string {
	return strings.TrimRight(c.BaseURL, "/") + c.PredictPath
}

// Timeout is the per-request deadline; zero means none.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// ApplyEnv overlays SENTIVIEW_* environment variables. Unset variables leave fields alone.
func (c *Config) ApplyEnv() error {
	if _, err := env.UnmarshalFromEnviron(c); err != nil {
		return fmt.Errorf("read env: %w", err)
	}
	return nil
}

// LoadConfig loads configuration from path or the default config.json.
// A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = defaultConfigFile
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ApplyDefaults()
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if isYAML(path) {
		err = yaml.Unmarshal(data, &cfg)
	} else {
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("decode config: %w", err)
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// ResolveConfig loads the file at path, overlays the environment and validates the result.
func ResolveConfig(path string) (Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// SaveConfig persists configuration to disk, as YAML when path ends in .yaml or .yml.
func SaveConfig(path string, cfg Config) error {
	if path == "" {
		path = defaultConfigFile
	}
	tmp := path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	cfg.ApplyDefaults()
	data, err := EncodeConfig(cfg, isYAML(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// EncodeConfig renders cfg as indented JSON or YAML.
func EncodeConfig(cfg Config, asYAML bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if asYAML {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// EnsureConfigFile writes the default configuration to path when nothing is there yet.
// It reports whether a file was created.
func EnsureConfigFile(path string) (bool, error) {
	if path == "" {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config: %w", err)
	}
	if err := SaveConfig(path, DefaultConfig()); err != nil {
		return false, err
	}
	return true, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
