package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	// API settings
	APIHost  string `mapstructure:"api_host"`
	APIPort  int    `mapstructure:"api_port"`
	BasePath string `mapstructure:"base_path"`

	// Optional SSL settings
	SSLCert string `mapstructure:"ssl_cert"`
	SSLKey  string `mapstructure:"ssl_key"`

	// Optional CORS settings; empty allows every origin
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Logging settings
	LogFile   string `mapstructure:"log_file"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // "json" or "text"

	// Store settings
	StoreDriver string `mapstructure:"store_driver"` // "sqlite" or "postgres"
	DBPath      string `mapstructure:"db_path"`
	DatabaseDSN string `mapstructure:"database_dsn"`

	HashPasswords bool `mapstructure:"hash_passwords"`
	DevMode       bool `mapstructure:"dev_mode"`

	ConfigPath string `mapstructure:"-"`
}

const (
	DefaultConfigPath  = "/etc/usersvc/config.yml"
	DefaultAPIHost     = "0.0.0.0"
	DefaultAPIPort     = 5000
	DefaultBasePath    = "/api/v1/user"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
	DefaultStoreDriver = "sqlite"
	DefaultDBPath      = "/var/lib/usersvc/users.sqlite3"

	EnvPrefix = "USERSVC"
)

// Load reads configPath (YAML) with USERSVC_* environment overrides.
// With an empty configPath the default path is used and may be absent.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	// Every key needs a default so AutomaticEnv reaches it on Unmarshal
	v.SetDefault("api_host", DefaultAPIHost)
	v.SetDefault("api_port", DefaultAPIPort)
	v.SetDefault("base_path", DefaultBasePath)
	v.SetDefault("ssl_cert", "")
	v.SetDefault("ssl_key", "")
	v.SetDefault("cors_origins", []string{})
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("store_driver", DefaultStoreDriver)
	v.SetDefault("db_path", DefaultDBPath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("hash_passwords", false)
	v.SetDefault("dev_mode", false)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.ConfigPath = configPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.APIPort < 1 || c.APIPort > 65535 {
		return fmt.Errorf("api_port must be between 1 and 65535")
	}

	if c.BasePath != "" && !strings.HasPrefix(c.BasePath, "/") {
		return fmt.Errorf("base_path must start with '/'")
	}

	switch c.StoreDriver {
	case "sqlite":
		if c.DBPath == "" {
			return fmt.Errorf("db_path is required for the sqlite store")
		}
	case "postgres":
		if c.DatabaseDSN == "" {
			return fmt.Errorf("database_dsn is required for the postgres store")
		}
	default:
		return fmt.Errorf("store_driver must be 'sqlite' or 'postgres'")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error")
	}

	switch strings.ToLower(c.LogFormat) {
	case "json", "text":
	default:
		return fmt.Errorf("log_format must be 'json' or 'text'")
	}

	// Validate SSL config if provided
	if c.SSLCert != "" || c.SSLKey != "" {
		if c.SSLCert == "" || c.SSLKey == "" {
			return fmt.Errorf("both ssl_cert and ssl_key must be provided")
		}
		if _, err := os.Stat(c.SSLCert); os.IsNotExist(err) {
			return fmt.Errorf("ssl_cert file does not exist: %s", c.SSLCert)
		}
		if _, err := os.Stat(c.SSLKey); os.IsNotExist(err) {
			return fmt.Errorf("ssl_key file does not exist: %s", c.SSLKey)
		}
	}

	return nil
}

func (c *Config) IsDevMode() bool {
	return c.DevMode
}

// Addr is the host:port the API listens on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.APIHost, c.APIPort)
}
