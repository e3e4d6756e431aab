package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Store     StoreConfig     `mapstructure:"store"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
}

type ServerConfig struct {
	Port    int    `mapstructure:"port" validate:"gt=0,lt=65536"`
	GinMode string `mapstructure:"gin_mode" validate:"oneof=debug release test"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

type DBConfig struct {
	Driver   string `mapstructure:"driver" validate:"oneof=postgres mysql sqlite"`
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name" validate:"required"`
	LogLevel string `mapstructure:"log_level" validate:"oneof=silent error warn info"`
}

// StoreConfig bounds outbound store calls. A zero Timeout leaves them unbounded.
type StoreConfig struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// AuthConfig holds the optional API key gate. APIKeyHash is a bcrypt hash;
// when empty the gate is disabled.
type AuthConfig struct {
	APIKeyHash string `mapstructure:"api_key_hash"`
}

type DashboardConfig struct {
	RefreshSchedule string `mapstructure:"refresh_schedule" validate:"required"`
}

var defaults = map[string]any{
	"server.port":                8080,
	"server.gin_mode":            "debug",
	"log.level":                  "info",
	"log.format":                 "json",
	"db.driver":                  "postgres",
	"db.url":                     "",
	"db.host":                    "localhost",
	"db.port":                    "5432",
	"db.user":                    "postgres",
	"db.password":                "postgres",
	"db.name":                    "postgres",
	"db.log_level":               "warn",
	"store.timeout":              "10s",
	"auth.api_key_hash":          "",
	"dashboard.refresh_schedule": "0 0 * * *",
}

// envAliases lists environment names accepted in addition to the derived
// KEY_NAME form (db.host -> DB_HOST).
var envAliases = map[string][]string{
	"server.port":     {"PORT"},
	"server.gin_mode": {"GIN_MODE"},
	"db.url":          {"DATABASE_URL"},
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, aliases := range envAliases {
		names := append([]string{key}, strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
		names = append(names, aliases...)
		if err := v.BindEnv(names...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
