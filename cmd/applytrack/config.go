package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tinytelemetry/applytrack/internal/model"
	"github.com/tinytelemetry/applytrack/internal/session"
	"github.com/tinytelemetry/applytrack/internal/sidebar"
	"github.com/tinytelemetry/applytrack/internal/socketrpc"
	"github.com/tinytelemetry/applytrack/internal/source"
)

const (
	defaultBindHost        = "127.0.0.1"
	defaultAPIPort         = 3000
	defaultQueryTimeout    = 30 * time.Second
	defaultSourceTimeout   = 10 * time.Second
	defaultWatchDebounce   = source.DefaultDebounce
	defaultBackupInterval  = 6 * time.Hour
	defaultBackupKeepLast  = 5
	defaultDraftRetention  = 30 // days, 0 = disabled
	defaultSessionTTL      = session.DefaultTTL
	defaultPostgresTable   = "applications"
	defaultSidebarVariant  = model.DefaultSidebarVariant
	defaultLoadAttempts    = model.DefaultLoadAttempts
	defaultLoadDelay       = model.DefaultLoadDelay
	defaultAutoSaveEvery   = model.DefaultAutoSaveInterval
	defaultNotificationTTL = model.DefaultNotificationTTL
)

// appConfig is the server's runtime configuration.
type appConfig struct {
	Host         string        `mapstructure:"host"`
	APIPort      int           `mapstructure:"api-port"`
	APIAddr      string        `mapstructure:"api-addr"`
	DBPath       string        `mapstructure:"db-path"`
	QueryTimeout time.Duration `mapstructure:"query-timeout"`
	SocketPath   string        `mapstructure:"socket-path"`

	SourceKind    string        `mapstructure:"source-kind"`
	SourceURL     string        `mapstructure:"source-url"`
	SourcePath    string        `mapstructure:"source-path"`
	SourceTable   string        `mapstructure:"source-table"`
	SourceTimeout time.Duration `mapstructure:"source-timeout"`
	SourceWatch   bool          `mapstructure:"source-watch"`
	WatchDebounce time.Duration `mapstructure:"watch-debounce"`
	SyncInterval  time.Duration `mapstructure:"sync-interval"` // 0 = only on start, reload and file change

	LoadAttempts    int           `mapstructure:"load-attempts"`
	LoadDelay       time.Duration `mapstructure:"load-delay"`
	SidebarVariant  string        `mapstructure:"sidebar-variant"`
	AutoSave        time.Duration `mapstructure:"autosave-interval"`
	NotificationTTL time.Duration `mapstructure:"notification-ttl"`
	DraftRetention  int           `mapstructure:"draft-retention"`

	BackupEnabled  bool          `mapstructure:"backup-enabled"`
	BackupInterval time.Duration `mapstructure:"backup-interval"`
	BackupDir      string        `mapstructure:"backup-dir"`
	BackupKeepLast int           `mapstructure:"backup-keep-last"`

	RedisAddr     string        `mapstructure:"redis-addr"`
	RedisPassword string        `mapstructure:"redis-password"`
	RedisDB       int           `mapstructure:"redis-db"`
	SessionTTL    time.Duration `mapstructure:"session-ttl"`

	ConfigPath string `mapstructure:"-"` // not from config file
}

// Variant returns the configured sidebar layout.
func (c appConfig) Variant() sidebar.Variant {
	return sidebar.ParseVariant(c.SidebarVariant)
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	// A .env in the working directory feeds APPLYTRACK_* variables.
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}
	dataDir := filepath.Join(home, ".local", "share", "applytrack")

	v := viper.New()
	v.SetEnvPrefix("APPLYTRACK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("host", defaultBindHost)
	v.SetDefault("api-port", defaultAPIPort)
	v.SetDefault("api-addr", "")
	v.SetDefault("db-path", filepath.Join(dataDir, "applytrack.duckdb"))
	v.SetDefault("query-timeout", defaultQueryTimeout)
	v.SetDefault("socket-path", socketrpc.DefaultSocketPath())
	v.SetDefault("source-kind", source.KindHTTP)
	v.SetDefault("source-url", "")
	v.SetDefault("source-path", "")
	v.SetDefault("source-table", defaultPostgresTable)
	v.SetDefault("source-timeout", defaultSourceTimeout)
	v.SetDefault("source-watch", false)
	v.SetDefault("watch-debounce", defaultWatchDebounce)
	v.SetDefault("sync-interval", time.Duration(0))
	v.SetDefault("load-attempts", defaultLoadAttempts)
	v.SetDefault("load-delay", defaultLoadDelay)
	v.SetDefault("sidebar-variant", defaultSidebarVariant)
	v.SetDefault("autosave-interval", defaultAutoSaveEvery)
	v.SetDefault("notification-ttl", defaultNotificationTTL)
	v.SetDefault("draft-retention", defaultDraftRetention)
	v.SetDefault("backup-enabled", false)
	v.SetDefault("backup-interval", defaultBackupInterval)
	v.SetDefault("backup-dir", filepath.Join(dataDir, "backups"))
	v.SetDefault("backup-keep-last", defaultBackupKeepLast)
	v.SetDefault("redis-addr", "")
	v.SetDefault("redis-password", "")
	v.SetDefault("redis-db", 0)
	v.SetDefault("session-ttl", defaultSessionTTL)

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
	cfg.ConfigPath = v.ConfigFileUsed()

	if cfg.APIPort <= 0 || cfg.APIPort > 65535 {
		return cfg, fmt.Errorf("invalid api-port: %d", cfg.APIPort)
	}
	if cfg.LoadAttempts <= 0 {
		return cfg, fmt.Errorf("invalid load-attempts: %d", cfg.LoadAttempts)
	}
	if cfg.BackupEnabled {
		if cfg.BackupInterval <= 0 {
			return cfg, fmt.Errorf("invalid backup-interval: %s", cfg.BackupInterval)
		}
		if cfg.BackupKeepLast <= 0 {
			return cfg, fmt.Errorf("invalid backup-keep-last: %d", cfg.BackupKeepLast)
		}
	}
	switch cfg.SourceKind {
	case source.KindHTTP, source.KindPostgres:
		if cfg.SourceURL == "" {
			return cfg, fmt.Errorf("source-url is required for source-kind %s", cfg.SourceKind)
		}
	case source.KindFile:
		if cfg.SourcePath == "" {
			return cfg, fmt.Errorf("source-path is required for source-kind file")
		}
	default:
		return cfg, fmt.Errorf("invalid source-kind: %q", cfg.SourceKind)
	}

	cfg.DBPath = expandHome(home, cfg.DBPath)
	cfg.BackupDir = expandHome(home, cfg.BackupDir)
	cfg.SourcePath = expandHome(home, cfg.SourcePath)

	if cfg.APIAddr == "" {
		cfg.APIAddr = net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.APIPort))
	}
	return cfg, nil
}

func expandHome(home, path string) string {
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func (c appConfig) sourceConfig() source.Config {
	cfg := source.Config{
		Kind:        c.SourceKind,
		Path:        c.SourcePath,
		Table:       c.SourceTable,
		HTTPTimeout: c.SourceTimeout,
	}
	if c.SourceKind != source.KindFile {
		cfg.URL = c.SourceURL
	}
	return cfg
}
