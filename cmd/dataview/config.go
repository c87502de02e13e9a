package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/dataview/internal/logging"
	"github.com/tinytelemetry/dataview/internal/model"
)

// cliConfig holds the settings for the dataview binary.
type cliConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
	Skin     string `mapstructure:"skin" yaml:"skin"`
	LogFile  string `mapstructure:"log-file" yaml:"log-file"`
	LogLevel string `mapstructure:"log-level" yaml:"log-level"`
	// ArgVar comes from the environment only, never from the file.
	ArgVar string `mapstructure:"-" yaml:"arg-var"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("DATAVIEW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("endpoint", model.DefaultEndpoint)
	v.SetDefault("skin", model.DefaultSkin)
	v.SetDefault("log-file", logging.DefaultPath())
	v.SetDefault("log-level", "info")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "dataview", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	argVar, err := loadArgVar()
	if err != nil {
		return cfg, err
	}
	cfg.ArgVar = argVar

	return cfg, nil
}

// loadArgVar reads the injected argument, unprefixed, from the environment
// alone. Empty and unset are the same.
func loadArgVar() (string, error) {
	env := viper.New()
	if err := env.BindEnv("arg-var", model.ArgVarEnv); err != nil {
		return "", err
	}
	return env.GetString("arg-var"), nil
}
