package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/oshokin/http-pprint/internal/constants"
	"github.com/oshokin/http-pprint/internal/logger"
	"github.com/oshokin/http-pprint/internal/sink"
)

// Config holds all configuration settings.
type Config struct {
	// LogLevel specifies the logging verbosity level.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
	// OutputStyle selects how printed text is styled: auto, plain or styled.
	OutputStyle string `mapstructure:"output_style" yaml:"output_style"`
	// Mode selects how responses are retrieved: blocking or cooperative.
	Mode string `mapstructure:"mode" yaml:"mode"`
	// UserAgent is injected into requests that carry none. Empty means the application's own.
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	// Timeout bounds a whole exchange, redirects included (e.g., "30s").
	Timeout string `mapstructure:"timeout" yaml:"timeout"`
	// FollowRedirects indicates whether redirects are followed.
	FollowRedirects bool `mapstructure:"follow_redirects" yaml:"follow_redirects"`
	// MaxRedirects is the number of redirects followed before the exchange fails.
	MaxRedirects int `mapstructure:"max_redirects" yaml:"max_redirects"`
	// MaxLogLength caps the size of each exchange dump in debug logs (e.g., "64KB").
	MaxLogLength string `mapstructure:"max_log_length" yaml:"max_log_length"`
	// ShowProgress shows a progress bar while cooperative response bodies are retrieved.
	ShowProgress bool `mapstructure:"show_progress" yaml:"show_progress"`
	// ParsedLogLevel is the parsed zap log level.
	ParsedLogLevel zapcore.Level `mapstructure:"-" yaml:"-"`
	// ParsedOutputStyle is the parsed output style.
	ParsedOutputStyle sink.Mode `mapstructure:"-" yaml:"-"`
	// ParsedMode is the parsed retrieval mode.
	ParsedMode Mode `mapstructure:"-" yaml:"-"`
	// ParsedTimeout is the parsed exchange timeout.
	ParsedTimeout time.Duration `mapstructure:"-" yaml:"-"`
	// ParsedMaxLogLength is the parsed log length in bytes.
	ParsedMaxLogLength uint64 `mapstructure:"-" yaml:"-"`
}

// Mode is the way responses are retrieved.
type Mode uint8

const (
	// ModeBlocking buffers the whole response before printing it.
	ModeBlocking Mode = iota
	// ModeCooperative leaves the body unread until it is printed.
	ModeCooperative
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	if m == ModeCooperative {
		return "cooperative"
	}

	return "blocking"
}

const (
	// DefaultConfigFilename is the default name of the configuration file.
	DefaultConfigFilename = ".http-pprint.yaml"

	// DefaultMaxLogLength is the default maximum size (in bytes) of an exchange dump in debug logs.
	DefaultMaxLogLength = 1 * 1024 * 1024 // 1 MB

	// DefaultLogLevel is the default logging verbosity level.
	DefaultLogLevel = "info"
	// DefaultOutputStyle is the default output style.
	DefaultOutputStyle = "auto"
	// DefaultMode is the default retrieval mode.
	DefaultMode = "blocking"
	// DefaultTimeout is the default exchange timeout.
	DefaultTimeout = "60s"
	// DefaultMaxRedirects is the default redirect limit.
	DefaultMaxRedirects = 10
	// DefaultMaxLogLengthText is DefaultMaxLogLength as written in configuration files.
	DefaultMaxLogLengthText = "1MiB"
)

// Static error definitions for better error handling.
var (
	// ErrUnknownLogLevel indicates that the log level is not recognized.
	ErrUnknownLogLevel = errors.New("unknown log level")
	// ErrUnknownOutputStyle indicates that the output style is not recognized.
	ErrUnknownOutputStyle = errors.New("unknown output style")
	// ErrUnknownMode indicates that the retrieval mode is not recognized.
	ErrUnknownMode = errors.New("unknown mode")
	// ErrInvalidTimeout indicates that the timeout is not positive.
	ErrInvalidTimeout = errors.New("timeout must be positive")
	// ErrInvalidMaxRedirects indicates that the redirect limit is negative.
	ErrInvalidMaxRedirects = errors.New("max_redirects cannot be negative")
	// ErrInvalidMaxLogLength indicates that the log length is zero.
	ErrInvalidMaxLogLength = errors.New("max_log_length must be positive")
	// ErrConfigExists indicates that a configuration file would be overwritten.
	ErrConfigExists = errors.New("configuration file already exists")
)

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LogLevel:        DefaultLogLevel,
		OutputStyle:     DefaultOutputStyle,
		Mode:            DefaultMode,
		Timeout:         DefaultTimeout,
		FollowRedirects: true,
		MaxRedirects:    DefaultMaxRedirects,
		MaxLogLength:    DefaultMaxLogLengthText,
	}
}

// LoadConfig loads configuration settings from a YAML file.
// A missing default file yields the defaults; a missing explicitly named file is an error.
func LoadConfig(configFilename string) (*Config, error) {
	explicit := configFilename != ""
	if !explicit {
		configFilename = DefaultConfigFilename
	}

	v := newViper()
	v.SetConfigFile(configFilename)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !isNotFound(err) {
			return nil, fmt.Errorf("failed to read config from file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError

	return errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound)
}

// newViper returns a viper instance with a default for every key.
func newViper() *viper.Viper {
	var (
		v        = viper.New()
		defaults = Default()
	)

	v.SetConfigType("yaml")
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("output_style", defaults.OutputStyle)
	v.SetDefault("mode", defaults.Mode)
	v.SetDefault("user_agent", defaults.UserAgent)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("follow_redirects", defaults.FollowRedirects)
	v.SetDefault("max_redirects", defaults.MaxRedirects)
	v.SetDefault("max_log_length", defaults.MaxLogLength)
	v.SetDefault("show_progress", defaults.ShowProgress)

	return v
}

// ValidateConfig checks the configuration for validity and sets derived fields.
func ValidateConfig(cfg *Config) error {
	parsedLogLevel, isLogLevelCorrect := logger.ParseLogLevel(cfg.LogLevel)
	if !isLogLevelCorrect {
		return fmt.Errorf("%w: '%s'", ErrUnknownLogLevel, cfg.LogLevel)
	}

	cfg.ParsedLogLevel = parsedLogLevel

	outputStyle, err := sink.ParseMode(cfg.OutputStyle)
	if err != nil {
		return fmt.Errorf("%w: '%s'", ErrUnknownOutputStyle, cfg.OutputStyle)
	}

	cfg.ParsedOutputStyle = outputStyle

	cfg.ParsedMode, err = ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	cfg.ParsedTimeout, err = time.ParseDuration(strings.TrimSpace(cfg.Timeout))
	if err != nil {
		return fmt.Errorf("failed to parse timeout: %w", err)
	}

	if cfg.ParsedTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if cfg.MaxRedirects < 0 {
		return ErrInvalidMaxRedirects
	}

	cfg.ParsedMaxLogLength, err = humanize.ParseBytes(strings.TrimSpace(cfg.MaxLogLength))
	if err != nil {
		return fmt.Errorf("failed to parse max log length: %w", err)
	}

	if cfg.ParsedMaxLogLength == 0 {
		return ErrInvalidMaxLogLength
	}

	return nil
}

// ParseMode converts a configuration name into a Mode. Empty text means blocking.
func ParseMode(text string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "", "blocking":
		return ModeBlocking, nil
	case "cooperative":
		return ModeCooperative, nil
	default:
		return ModeBlocking, fmt.Errorf("%w: '%s'", ErrUnknownMode, text)
	}
}

// WriteDefaultConfig writes the default configuration to path.
// An existing file is never overwritten.
func WriteDefaultConfig(path string) error {
	if path == "" {
		path = DefaultConfigFilename
	}

	content, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, constants.DefaultFilePermissions)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		}

		return fmt.Errorf("failed to create config file: %w", err)
	}

	if _, err = file.Write(content); err != nil {
		_ = file.Close()

		return fmt.Errorf("failed to write config file: %w", err)
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close config file: %w", err)
	}

	return nil
}
