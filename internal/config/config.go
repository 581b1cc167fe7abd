// Package config manages application configuration from files and environment.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Position string  `mapstructure:"position"`
	Opacity  float64 `mapstructure:"opacity"`
	FontSize int     `mapstructure:"font_size"`
	Font     struct {
		File string `mapstructure:"file"`
	} `mapstructure:"font"`
	Output struct {
		Color bool `mapstructure:"color"`
	} `mapstructure:"output"`
}

// Load reads the configuration from ~/.stampkit/config.yaml and environment
// variables (STAMP_ prefix). A missing config file is not an error.
func Load() (*Config, error) {
	dir := Dir()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(dir)

	// Defaults
	viper.SetDefault("position", "center")
	viper.SetDefault("opacity", 0.30)
	viper.SetDefault("font_size", 30)
	viper.SetDefault("output.color", true)

	// Environment variable overrides
	viper.SetEnvPrefix("STAMP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file (non-fatal if missing)
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Dir returns the stampkit configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".stampkit"
	}
	return filepath.Join(home, ".stampkit")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}
