package config

import (
	"fmt"
	"time"
)

// Config is the application configuration.
type Config struct {
	Data       DataConfig       `mapstructure:"data"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Server     ServerConfig     `mapstructure:"server"`

	// EnvFile is the .env file that was loaded, empty when none was found
	EnvFile string `mapstructure:"-"`
	// ConfigFile is the config file that was read, empty when running on defaults
	ConfigFile string `mapstructure:"-"`
}

// DataConfig locates the dataset. Path may be a file or an http(s) URL.
type DataConfig struct {
	Path     string         `mapstructure:"path"`
	Source   string         `mapstructure:"source"`
	Proxy    string         `mapstructure:"proxy"`
	Table    string         `mapstructure:"table"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	DSN      string `mapstructure:"dsn"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// GetDSN returns the explicit DSN if set, otherwise one built from the parts
func (p PostgresConfig) GetDSN() string {
	if p.DSN != "" {
		return p.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// SimulationConfig holds caller-side policy. The resampler itself accepts
// any positive count; these bounds are enforced by the CLI and the API.
type SimulationConfig struct {
	Min              int   `mapstructure:"min"`
	Max              int   `mapstructure:"max"`
	Default          int   `mapstructure:"default"`
	MinCategoryCount int   `mapstructure:"min_category_count"`
	Seed             int64 `mapstructure:"seed"`
	Bins             int   `mapstructure:"bins"`
}

type CacheConfig struct {
	Driver string        `mapstructure:"driver"`
	TTL    time.Duration `mapstructure:"ttl"`
	Redis  RedisConfig   `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address for the HTTP server
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}
