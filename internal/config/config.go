// Package config holds the tool settings: logging, rendering, and execution
// tuning. Values come from defaults, an optional config file, environment
// overrides, and explicit command-line flags, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const (
	// AppName is the config file base name ("gha-debug.yaml").
	AppName = "gha-debug"

	// EnvPrefix namespaces environment overrides, e.g. GHA_DEBUG_LOG_LEVEL.
	EnvPrefix = "GHA_DEBUG"
)

// Settings is the full tool configuration.
type Settings struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogFile   string `mapstructure:"log_file"`
	NoColor   bool   `mapstructure:"no_color"`

	Run struct {
		Shell           string `mapstructure:"shell"`
		ActionDelayMS   int    `mapstructure:"action_delay_ms"`
		CommandTimeoutS int    `mapstructure:"command_timeout_s"`
	} `mapstructure:"run"`

	Report struct {
		Output string `mapstructure:"output"`
	} `mapstructure:"report"`
}

var (
	// Instance is the active configuration, populated by Initialize.
	Instance Settings

	// ConfigLoaded and ConfigFile report whether a config file was found.
	ConfigLoaded bool
	ConfigFile   string

	initOnce sync.Once
)

// Initialize sets up the configuration system. cfgFile, when non-empty,
// names an explicit config file; otherwise gha-debug.yaml is searched in
// the working directory and $HOME/.config/gha-debug. A missing config file
// is not an error.
func Initialize(cfgFile string) error {
	var err error
	initOnce.Do(func() {
		var s Settings
		s, err = load(cfgFile)
		if err == nil {
			Instance = s
		}
	})
	return err
}

func load(cfgFile string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", AppName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Settings{}, fmt.Errorf("error reading config file: %w", err)
		}
		ConfigLoaded = false
		ConfigFile = ""
	} else {
		ConfigLoaded = true
		ConfigFile = v.ConfigFileUsed()
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("error parsing config: %w", err)
	}
	return s, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "human")
	v.SetDefault("log_file", "")
	v.SetDefault("no_color", false)

	v.SetDefault("run.shell", "sh")
	v.SetDefault("run.action_delay_ms", 100)
	v.SetDefault("run.command_timeout_s", 0)

	v.SetDefault("report.output", "")
}
