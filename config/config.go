package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultDatabasePath = "ebookstore.db"
	DefaultReportPath   = "inventory_report.txt"
	DefaultThreshold    = 5
	DefaultLogLevel     = "warn"

	envPrefix = "BOOKSTORE"
)

// Keys shared by flags, environment variables and config files.
const (
	KeyDatabase  = "db"
	KeyReport    = "report"
	KeyThreshold = "threshold"
	KeyLogLevel  = "log-level"
	KeyVerbose   = "verbose"
	KeyConfig    = "config"
)

type Config struct {
	DatabasePath      string
	ReportPath        string
	LowStockThreshold int64
	LogLevel          string
	Verbose           bool
}

// RegisterFlags adds the configuration flags to fs with their defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyDatabase, DefaultDatabasePath, "path to the SQLite database file")
	fs.String(KeyReport, DefaultReportPath, "path of the exported inventory report")
	fs.Int64(KeyThreshold, DefaultThreshold, "quantity below which a book is low stock")
	fs.String(KeyLogLevel, DefaultLogLevel, "log level (debug|info|warn|error)")
	fs.BoolP(KeyVerbose, "v", false, "verbose output (same as --log-level=debug)")
	fs.String(KeyConfig, "", "optional config file (yaml, toml or json)")
}

// Load resolves configuration from, in order of precedence, explicitly set
// flags, BOOKSTORE_* environment variables, the config file, and defaults.
func Load(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyDatabase, DefaultDatabasePath)
	v.SetDefault(KeyReport, DefaultReportPath)
	v.SetDefault(KeyThreshold, DefaultThreshold)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyVerbose, false)

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	threshold, err := cast.ToInt64E(v.Get(KeyThreshold))
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer: %w", KeyThreshold, err)
	}

	cfg := &Config{
		DatabasePath:      v.GetString(KeyDatabase),
		ReportPath:        v.GetString(KeyReport),
		LowStockThreshold: threshold,
		LogLevel:          strings.ToLower(strings.TrimSpace(v.GetString(KeyLogLevel))),
		Verbose:           v.GetBool(KeyVerbose),
	}
	if cfg.Verbose {
		cfg.LogLevel = "debug"
	}
	if cfg.DatabasePath == "" {
		return nil, fmt.Errorf("database path must not be empty")
	}
	return cfg, nil
}
