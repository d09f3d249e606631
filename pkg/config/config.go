package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Config holds user configuration values.
type Config struct {
	Log    LogConfig
	Output OutputConfig
	Keymap map[string]Keybinding
}

// LogConfig controls the event log.
type LogConfig struct {
	Enabled bool
	File    string
	Level   string
}

// OutputConfig controls how the final buffer is printed.
type OutputConfig struct {
	Number bool // prefix line numbers and mark the cursor line
	Color  bool // highlight the cursor line when numbering
}

var validLevels = []string{"debug", "info", "warn", "error"}

// Default returns a Config with default values and key mappings.
func Default() *Config {
	return &Config{Log: LogConfig{Level: "info"}, Keymap: DefaultKeymap()}
}

// Load loads configuration from the YAML file at path and from LINEEDIT_*
// environment variables (LINEEDIT_LOG_FILE, LINEEDIT_OUTPUT_NUMBER, ...).
// If the file does not exist, defaults are used.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("log.enabled", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("output.number", false)
	v.SetDefault("output.color", false)

	v.SetEnvPrefix("LINEEDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		_, err := os.Stat(path)
		switch {
		case err == nil:
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
	}

	cfg := &Config{
		Log: LogConfig{
			Enabled: v.GetBool("log.enabled"),
			File:    v.GetString("log.file"),
			Level:   strings.ToLower(v.GetString("log.level")),
		},
		Output: OutputConfig{
			Number: v.GetBool("output.number"),
			Color:  v.GetBool("output.color"),
		},
		Keymap: DefaultKeymap(),
	}
	for action, binding := range v.GetStringMapString("keymap") {
		kb, err := ParseKeybinding(binding)
		if err != nil {
			return nil, fmt.Errorf("keymap.%s: %w", action, err)
		}
		cfg.Keymap[action] = kb
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault attempts to read ~/.lineedit/config.yaml.
func LoadDefault() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Load("")
	}
	return Load(filepath.Join(home, ".lineedit", "config.yaml"))
}

// Validate checks the configuration values.
func Validate(cfg *Config) error {
	if !slices.Contains(validLevels, cfg.Log.Level) {
		return fmt.Errorf("log.level must be one of: %v, got %s", validLevels, cfg.Log.Level)
	}
	for action := range cfg.Keymap {
		if !slices.Contains(Actions, action) {
			return fmt.Errorf("keymap: unknown action %q (known: %v)", action, Actions)
		}
	}
	return nil
}
