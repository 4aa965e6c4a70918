// Package config loads runtime settings from defaults, an optional YAML
// file and TESTLAB_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g.
// TESTLAB_LAB_ADVANCE_DELAY for lab.advance_delay.
const EnvPrefix = "TESTLAB"

type Config struct {
	DBPath string    `mapstructure:"db_path"`
	Log    LogConfig `mapstructure:"log"`
	Lab    LabConfig `mapstructure:"lab"`
	LLM    LLMConfig `mapstructure:"llm"`
}

type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
	Console    bool   `mapstructure:"console"`
}

type LabConfig struct {
	// AdvanceDelay is the pause between a Level 1 answer and the next question.
	AdvanceDelay time.Duration `mapstructure:"advance_delay"`
	// NoticeDuration is how long a toast stays on screen.
	NoticeDuration time.Duration `mapstructure:"notice_duration"`
	TestSetRows    int           `mapstructure:"test_set_rows"`
	// Seed fixes the Level 1 question order. Zero means random.
	Seed int64 `mapstructure:"seed"`
}

// LLMConfig selects the optional coach provider. An empty Provider means
// auto-discovery from the standard API key variables.
type LLMConfig struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", DefaultLogPath())
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", true)
	v.SetDefault("log.console", false)

	v.SetDefault("lab.advance_delay", 1200*time.Millisecond)
	v.SetDefault("lab.notice_duration", 2*time.Second)
	v.SetDefault("lab.test_set_rows", 6)
	v.SetDefault("lab.seed", 0)

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", 30*time.Second)
}

// Default returns the configuration with no file and no environment applied.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Load reads configuration. An explicit path must exist; otherwise the
// default location is tried and a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the lab cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Lab.AdvanceDelay < 0 {
		errs = append(errs, fmt.Errorf("lab.advance_delay must not be negative"))
	}
	if c.Lab.NoticeDuration <= 0 {
		errs = append(errs, fmt.Errorf("lab.notice_duration must be positive"))
	}
	if c.Lab.TestSetRows < 1 {
		errs = append(errs, fmt.Errorf("lab.test_set_rows must be at least 1"))
	}
	if c.LLM.Timeout < 0 {
		errs = append(errs, fmt.Errorf("llm.timeout must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// DefaultConfigDir is $XDG_CONFIG_HOME/testlab, falling back to
// ~/.config/testlab.
func DefaultConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "testlab")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "testlab")
}

// DefaultLogPath is $XDG_STATE_HOME/testlab/testlab.log, falling back to
// ~/.local/state/testlab/testlab.log.
func DefaultLogPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "testlab", "testlab.log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "testlab.log"
	}
	return filepath.Join(home, ".local", "state", "testlab", "testlab.log")
}
