package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tinytelemetry/applytrack/internal/model"
	"github.com/tinytelemetry/applytrack/internal/socketrpc"
)

// cliConfig holds only TUI-relevant configuration.
type cliConfig struct {
	SocketPath      string        `mapstructure:"socket-path"`
	SidebarVariant  string        `mapstructure:"sidebar-variant"`
	LoadAttempts    int           `mapstructure:"load-attempts"`
	LoadDelay       time.Duration `mapstructure:"load-delay"`
	AutoSave        time.Duration `mapstructure:"autosave-interval"`
	NotificationTTL time.Duration `mapstructure:"notification-ttl"`
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("APPLYTRACK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("socket-path", socketrpc.DefaultSocketPath())
	v.SetDefault("sidebar-variant", model.DefaultSidebarVariant)
	v.SetDefault("load-attempts", model.DefaultLoadAttempts)
	v.SetDefault("load-delay", model.DefaultLoadDelay)
	v.SetDefault("autosave-interval", model.DefaultAutoSaveInterval)
	v.SetDefault("notification-ttl", model.DefaultNotificationTTL)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "applytrack", "config.yml"))
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
	return cfg, nil
}
