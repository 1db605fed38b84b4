package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Global settings
	Format  string `mapstructure:"format"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	// Default values for commands
	Defaults DefaultsConfig `mapstructure:"defaults"`

	// Telemetry vocabulary overrides for renamed deployments
	Services ServicesConfig `mapstructure:"services"`
}

// DefaultsConfig holds default values for the analyze/sessions commands
type DefaultsConfig struct {
	// Sessions longer than this are flagged as implausible and excluded
	// from the time-based aggregates
	MaxDuration string `mapstructure:"max_duration"`

	// Stop reasons that close an open stepping interval
	ResumeReasons []string `mapstructure:"resume_reasons"`
}

// ServicesConfig holds the service names recognized as session markers
type ServicesConfig struct {
	Adapter   string `mapstructure:"adapter"`
	Extension string `mapstructure:"extension"`
	Server    string `mapstructure:"server"`
}

// Default returns a Config with default values
func Default() *Config {
	return &Config{
		Format:  "auto",
		Quiet:   false,
		Verbose: false,
		Defaults: DefaultsConfig{
			MaxDuration:   "24h",
			ResumeReasons: []string{"end-stepping-range", "function-finished"},
		},
		Services: ServicesConfig{
			Adapter:   "ddb-da",
			Extension: "ddb-ext",
			Server:    "ddb",
		},
	}
}

// Load loads configuration from files and environment
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("ddbstat")
	v.SetConfigType("yaml")

	// Config paths in order of precedence, lowest first
	v.AddConfigPath("/etc/ddbstat/")
	if configDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(configDir, "ddbstat"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".ddbstat")
	}
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("DDBSTAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.BindEnv("format", "DDBSTAT_FORMAT")
	v.BindEnv("quiet", "DDBSTAT_QUIET")
	v.BindEnv("verbose", "DDBSTAT_VERBOSE")
	v.BindEnv("defaults.max_duration", "DDBSTAT_MAX_DURATION")

	// Set defaults
	cfg := Default()
	v.SetDefault("format", cfg.Format)
	v.SetDefault("quiet", cfg.Quiet)
	v.SetDefault("verbose", cfg.Verbose)
	v.SetDefault("defaults.max_duration", cfg.Defaults.MaxDuration)
	v.SetDefault("defaults.resume_reasons", cfg.Defaults.ResumeReasons)
	v.SetDefault("services.adapter", cfg.Services.Adapter)
	v.SetDefault("services.extension", cfg.Services.Extension)
	v.SetDefault("services.server", cfg.Services.Server)

	// Try to read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		// Config file not found; use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration from a specific file
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFile returns the path to the config file that was loaded
func ConfigFile() string {
	v := viper.New()

	v.SetConfigName("ddbstat")
	v.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err == nil {
		return v.ConfigFileUsed()
	}

	// Try .ddbstat
	v.SetConfigName(".ddbstat")
	if err := v.ReadInConfig(); err == nil {
		return v.ConfigFileUsed()
	}

	return ""
}
