package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/fr4nk3nst1ner/salarysim/internal/cache"
	"github.com/fr4nk3nst1ner/salarysim/internal/dataset"
)

const envPrefix = "SALARYSIM"

// Load reads configuration from an optional config file, a .env file and
// SALARYSIM_* environment variables, in increasing order of precedence.
// When path is empty config.yaml is looked up in ./configs and the working
// directory; a missing file is not an error.
func Load(path string) (*Config, error) {
	envFile := loadEnvFile()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.EnvFile = envFile
	cfg.ConfigFile = v.ConfigFileUsed()
	cfg.Data.Source = strings.ToLower(strings.TrimSpace(cfg.Data.Source))

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data.path", "DataScience_salaries_US.csv")
	v.SetDefault("data.source", dataset.SourceCSV)
	v.SetDefault("data.proxy", "")
	v.SetDefault("data.table", "salaries")
	v.SetDefault("data.postgres.dsn", "")
	v.SetDefault("data.postgres.host", "localhost")
	v.SetDefault("data.postgres.port", 5432)
	v.SetDefault("data.postgres.database", "salaries")
	v.SetDefault("data.postgres.user", "postgres")
	v.SetDefault("data.postgres.password", "")
	v.SetDefault("data.postgres.sslmode", "disable")

	v.SetDefault("simulation.min", 100)
	v.SetDefault("simulation.max", 10000)
	v.SetDefault("simulation.default", 1000)
	v.SetDefault("simulation.min_category_count", 100)
	v.SetDefault("simulation.seed", 0)
	v.SetDefault("simulation.bins", 30)

	v.SetDefault("cache.driver", cache.DriverMemory)
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.redis.address", "localhost:6379")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
}

// expandEnvVars replaces ${VAR} placeholders in string values, keeping the
// placeholder when the variable is unset
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val, ok := v.Get(key).(string)
		if !ok || !strings.Contains(val, "${") {
			continue
		}
		if expanded := os.ExpandEnv(val); expanded != "" {
			v.Set(key, expanded)
		}
	}
}

// loadEnvFile loads the first .env found in the working directory or its
// parent. Variables already set in the environment win.
func loadEnvFile() string {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			return path
		}
	}
	return ""
}

// Validate checks the values the rest of the program relies on
func Validate(cfg *Config) error {
	sim := cfg.Simulation
	if sim.Min <= 0 {
		return fmt.Errorf("simulation.min must be positive, got %d", sim.Min)
	}
	if sim.Max < sim.Min {
		return fmt.Errorf("simulation.max (%d) is below simulation.min (%d)", sim.Max, sim.Min)
	}
	if sim.Default < sim.Min || sim.Default > sim.Max {
		return fmt.Errorf("simulation.default (%d) is outside [%d, %d]", sim.Default, sim.Min, sim.Max)
	}
	if sim.MinCategoryCount < 0 {
		return fmt.Errorf("simulation.min_category_count must not be negative")
	}
	if sim.Bins <= 0 {
		return fmt.Errorf("simulation.bins must be positive, got %d", sim.Bins)
	}

	if !dataset.IsValidSource(cfg.Data.Source) {
		return fmt.Errorf("data.source %q is not one of csv, html, postgres", cfg.Data.Source)
	}
	if cfg.Data.Source != dataset.SourcePostgres && cfg.Data.Path == "" {
		return fmt.Errorf("data.path is required for source %q", cfg.Data.Source)
	}

	switch cfg.Cache.Driver {
	case cache.DriverMemory, cache.DriverNone:
	case cache.DriverRedis:
		if cfg.Cache.Redis.Address == "" {
			return fmt.Errorf("cache.redis.address is required for the redis driver")
		}
	default:
		return fmt.Errorf("cache.driver %q is not one of memory, redis, none", cfg.Cache.Driver)
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", cfg.Server.Port)
	}
	return nil
}
