// Package config loads the bookimport configuration from file and
// environment.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	EscapeChar string `mapstructure:"escape_char"`
	Src        string `mapstructure:"src"`
	Parallel   int    `mapstructure:"parallel"`
	LogLevel   string `mapstructure:"log_level"`
}

// C is the global config instance.
var C Config

// Init initializes configuration with viper. A missing or malformed config
// file is not an error; defaults and environment variables still apply.
func Init() error {
	viper.SetDefault("escape_char", "/")
	viper.SetDefault("src", "src")
	viper.SetDefault("parallel", 1)
	viper.SetDefault("log_level", "info")

	viper.SetConfigName("bookimport")
	viper.SetConfigType("yaml")

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "bookimport"))
		viper.AddConfigPath(home)
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("BOOKIMPORT")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()

	return viper.Unmarshal(&C)
}

// GetEscapeChar returns the directive escape character.
func GetEscapeChar() string {
	return viper.GetString("escape_char")
}

// GetSrc returns the default book source directory name.
func GetSrc() string {
	return viper.GetString("src")
}

// GetParallel returns the default number of resolution workers.
func GetParallel() int {
	return viper.GetInt("parallel")
}

// GetLogLevel returns the configured log level name.
func GetLogLevel() string {
	return viper.GetString("log_level")
}
