package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BLOGFRONT_API_BASE_URL.
const EnvPrefix = "BLOGFRONT"

// Config holds all configuration for the application.
// Values are read by viper from a config file or environment variables.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Source  SourceConfig  `mapstructure:"source"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Listing ListingConfig `mapstructure:"listing"`
}

// APIConfig configures the content API client.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url" validate:"required,url"`
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RateLimit float64       `mapstructure:"rate_limit" validate:"gte=0"`
	Burst     int           `mapstructure:"burst" validate:"gte=0"`
	UserAgent string        `mapstructure:"user_agent"`
}

// CacheConfig configures the response cache.
type CacheConfig struct {
	Kind       string        `mapstructure:"kind" validate:"oneof=memory badger none"`
	TTL        time.Duration `mapstructure:"ttl" validate:"gte=0"`
	Size       int           `mapstructure:"size" validate:"gte=0"`
	BadgerPath string        `mapstructure:"badger_path" validate:"required_if=Kind badger"`
}

// SourceConfig selects where articles come from.
type SourceConfig struct {
	Kind       string `mapstructure:"kind" validate:"oneof=remote static"`
	StaticPath string `mapstructure:"static_path"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" validate:"required"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`

	// File receives the log output of the terminal browser. Empty discards it.
	File string `mapstructure:"file"`
}

type ListingConfig struct {
	PageSize int `mapstructure:"page_size" validate:"min=1,max=100"`
}

// SetDefaults registers the default of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://blog-app-backend-three-dusky.vercel.app/api")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("api.rate_limit", 0)
	v.SetDefault("api.burst", 1)
	v.SetDefault("api.user_agent", "blogfront/1.0")

	v.SetDefault("cache.kind", "memory")
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.badger_path", "./badger_data")

	v.SetDefault("source.kind", "remote")
	v.SetDefault("source.static_path", "")

	v.SetDefault("server.addr", ":8080")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetDefault("listing.page_size", 6)
}

// LoadConfig reads configuration from a config.yaml under path, a local .env
// file and BLOGFRONT_* environment variables, in increasing precedence.
// Flags bound to the global viper instance take precedence over all of them.
func LoadConfig(path string) (Config, error) {
	// A missing .env file is normal outside development.
	_ = godotenv.Load()
	return Load(viper.GetViper(), path)
}

// Load is LoadConfig over an explicit viper instance.
func Load(v *viper.Viper, path string) (config Config, err error) {
	SetDefaults(v)

	if path != "" {
		v.AddConfigPath(path)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err = v.ReadInConfig(); err != nil {
		// Without a file, defaults and environment still apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("unable to decode into struct: %w", err)
	}

	config.Log.Level = strings.ToLower(config.Log.Level)
	config.Cache.Kind = strings.ToLower(config.Cache.Kind)
	config.Source.Kind = strings.ToLower(config.Source.Kind)

	if err = Validate(config); err != nil {
		return Config{}, err
	}
	return config, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report the config key rather than the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("mapstructure"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// Validate checks cfg and lists every invalid key in the returned error.
func Validate(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}

	problems := make([]string, 0, len(verrs))
	for _, e := range verrs {
		key := strings.TrimPrefix(e.Namespace(), "Config.")
		problems = append(problems, fmt.Sprintf("%s: %s", key, friendlyMessage(e)))
	}
	sort.Strings(problems)
	return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", e.Param())
	case "min", "gte":
		return fmt.Sprintf("must be at least %s", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s", e.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", e.Param())
	default:
		return fmt.Sprintf("failed %s validation", e.Tag())
	}
}
