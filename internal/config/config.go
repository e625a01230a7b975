package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = ".env"

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	DB        DBConfig        `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	GitHub    GitHubConfig    `mapstructure:"github"`
	Slack     SlackConfig     `mapstructure:"slack"`
	Refresh   RefreshConfig   `mapstructure:"refresh"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Port            int           `mapstructure:"port"`
	Debug           bool          `mapstructure:"debug"`
	FrontendURL     string        `mapstructure:"frontend_url"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type DBConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// GitHubConfig configures the REST client used for pull request and commit lists.
// An empty APIURL means api.github.com.
type GitHubConfig struct {
	APIURL  string        `mapstructure:"api_url"`
	PerPage int           `mapstructure:"per_page"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// SlackConfig configures the Web API client. An empty APIURL means slack.com/api.
// A UserLookupLimit of 0 means the client default.
type SlackConfig struct {
	APIURL          string        `mapstructure:"api_url"`
	MessageLimit    int           `mapstructure:"message_limit"`
	UserLookupLimit int           `mapstructure:"user_lookup_limit"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

type RefreshConfig struct {
	Enabled            bool          `mapstructure:"enabled"`
	Interval           time.Duration `mapstructure:"interval"`
	InitialDelay       time.Duration `mapstructure:"initial_delay"`
	KeepStaleOnFailure bool          `mapstructure:"keep_stale_on_failure"`
	DashboardCacheTTL  time.Duration `mapstructure:"dashboard_cache_ttl"`
}

type RateLimitConfig struct {
	RequestsPerSecond int `mapstructure:"requests_per_second"`
	Burst             int `mapstructure:"burst"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from the environment. Values from .env are applied
// only for keys not already present in the process environment.
func Load() (*Config, error) {
	if envMap, err := godotenv.Read(envFile); err == nil {
		for k, val := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, val)
			}
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	for _, key := range v.AllKeys() {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.debug", false)
	v.SetDefault("app.frontend_url", "http://localhost:5173")
	v.SetDefault("app.shutdown_timeout", 10*time.Second)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.name", "symphony")
	v.SetDefault("db.ssl_mode", "disable")

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("github.api_url", "")
	v.SetDefault("github.per_page", 10)
	v.SetDefault("github.timeout", 30*time.Second)

	v.SetDefault("slack.api_url", "")
	v.SetDefault("slack.message_limit", 20)
	v.SetDefault("slack.user_lookup_limit", 10)
	v.SetDefault("slack.timeout", 30*time.Second)

	v.SetDefault("refresh.enabled", true)
	v.SetDefault("refresh.interval", 5*time.Minute)
	v.SetDefault("refresh.initial_delay", 10*time.Second)
	v.SetDefault("refresh.keep_stale_on_failure", true)
	v.SetDefault("refresh.dashboard_cache_ttl", 30*time.Second)

	v.SetDefault("rate_limit.requests_per_second", 10)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("logging.level", "info")
}

// Validate checks required fields and ranges.
func (c Config) Validate() error {
	if c.App.Port <= 0 {
		return errors.New("app.port must be positive")
	}
	switch c.DB.Driver {
	case "postgres", "mysql":
	default:
		return fmt.Errorf("db.driver %q is not supported, use postgres or mysql", c.DB.Driver)
	}
	if c.DB.Host == "" || c.DB.User == "" || c.DB.Name == "" {
		return errors.New("db host, user and name are required")
	}
	if c.Refresh.Interval < time.Minute {
		return errors.New("refresh.interval must be at least 1m")
	}
	if c.Refresh.InitialDelay < 0 {
		return errors.New("refresh.initial_delay must not be negative")
	}
	if c.GitHub.PerPage < 1 || c.GitHub.PerPage > 100 {
		return errors.New("github.per_page must be between 1 and 100")
	}
	if c.Slack.MessageLimit < 1 {
		return errors.New("slack.message_limit must be positive")
	}
	if c.Slack.UserLookupLimit < 0 {
		return errors.New("slack.user_lookup_limit must not be negative")
	}
	return nil
}

// ServerAddr returns the address the HTTP listener binds to.
func (c Config) ServerAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}
