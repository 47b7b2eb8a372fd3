// Package config loads runtime configuration from statify.yaml, STATIFY_*
// environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Catalog drivers.
const (
	DriverCSV    = "csv"
	DriverHTTP   = "http"
	DriverSQLite = "sqlite"
)

// Config is the full runtime configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Catalog     CatalogConfig     `mapstructure:"catalog"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	Log         LogConfig         `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required,hostname_port"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	RateLimit       int           `mapstructure:"rate_limit" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// CatalogConfig selects and configures the catalog source.
type CatalogConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=csv http sqlite"`
	// Path is the CSV file for the csv driver.
	Path string `mapstructure:"path" validate:"required_if=Driver csv"`
	// URL is the CSV document for the http driver.
	URL string `mapstructure:"url" validate:"required_if=Driver http,omitempty,url"`

	ClientID     string   `mapstructure:"client_id"`
	ClientSecret string   `mapstructure:"client_secret" validate:"required_with=ClientID"`
	TokenURL     string   `mapstructure:"token_url" validate:"required_with=ClientID,omitempty,url"`
	Scopes       []string `mapstructure:"scopes"`

	MaxRetries  int           `mapstructure:"max_retries" validate:"gte=1"`
	BaseBackoff time.Duration `mapstructure:"base_backoff" validate:"gt=0"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// PreferencesConfig points at the SQLite database holding saved quizzes and,
// for the sqlite driver, the imported catalog. An empty path disables saving.
type PreferencesConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("server.rate_limit", 0)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("catalog.driver", DriverCSV)
	v.SetDefault("catalog.path", "data/songs.csv")
	v.SetDefault("catalog.max_retries", 3)
	v.SetDefault("catalog.base_backoff", 500*time.Millisecond)
	v.SetDefault("catalog.timeout", 30*time.Second)

	v.SetDefault("preferences.path", "statify.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// New returns a viper instance wired for statify: defaults, the STATIFY_
// environment prefix and, unless cfgFile is set, the standard search path.
func New(cfgFile string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("statify")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "statify"))
		}
	}

	v.SetEnvPrefix("STATIFY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file if one exists, decodes and validates it.
// A missing file is not an error when cfgFile was not given explicitly.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config: %s fails %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
