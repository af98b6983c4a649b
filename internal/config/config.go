package config

import (
	"fmt"
	"reflect"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration.
type Config struct {
	EnvVars  EnvVars   `json:"env"`
	Upstream *Upstream `json:"-"`
}

// EnvVars holds environment variables required by the application.
// Fields tagged `optional:"true"` are skipped by CheckConfigEnvFields.
type EnvVars struct {
	Port           string   `env:"PORT" envDefault:"8080"`
	RecipeAPIKey   string   `env:"RECIPE_API_KEY"`
	GinMode        string   `env:"GIN_MODE" optional:"true"`
	UpstreamConfig string   `env:"UPSTREAM_CONFIG" envDefault:"configs/upstream.yaml" optional:"true"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," optional:"true"`
}

// LoadConfig parses environment variables into the Config struct.
func LoadConfig() (*Config, error) {
	var config Config
	if err := env.Parse(&config.EnvVars); err != nil {
		return nil, err
	}
	return &config, nil
}

// IsRelease reports whether the server runs in gin release mode.
func (c *Config) IsRelease() bool {
	return c.EnvVars.GinMode == "release"
}

// CheckConfigEnvFields validates that all required EnvVars fields are set.
func (c *Config) CheckConfigEnvFields() error {
	return checkFieldsRecursive(reflect.ValueOf(c.EnvVars))
}

func checkFieldsRecursive(v reflect.Value) error {
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := v.Type().Field(i)
		if fieldType.Tag.Get("optional") == "true" {
			continue
		}
		if field.IsZero() {
			return fmt.Errorf("$%s must be set", fieldType.Tag.Get("env"))
		}
		if field.Kind() == reflect.Struct {
			if err := checkFieldsRecursive(field); err != nil {
				return err
			}
		}
	}
	return nil
}
