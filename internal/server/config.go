package server

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the demo server configuration, read from customfields.yaml plus
// CUSTOMFIELDS_-prefixed environment variables.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Form    FormConfig    `mapstructure:"form"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// CatalogConfig names where the field descriptors come from. Path may point
// at a JSON/YAML file, a directory of them, or, when Schema is set, an
// OpenAPI document whose named component schema carries the fields.
type CatalogConfig struct {
	Path   string `mapstructure:"path"`
	Schema string `mapstructure:"schema"`
}

// FormConfig tweaks the rendered form without code changes.
type FormConfig struct {
	SubmitLabel   string `mapstructure:"submit_label"`
	StylesheetURL string `mapstructure:"stylesheet_url"`
	ScriptURL     string `mapstructure:"script_url"`
}

// LoadConfig reads customfields.yaml from ./config or the working directory.
// A missing file is fine; defaults and environment variables still apply.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("customfields")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetDefault("server.port", 8098)
	v.SetDefault("catalog.path", "./fields.yaml")
	v.SetDefault("catalog.schema", "")
	v.SetDefault("form.submit_label", "Save")

	v.SetEnvPrefix("CUSTOMFIELDS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
