// Package config loads and validates the module's persisted settings.
// Sources are merged in priority order: environment variables override a
// YAML file, which overrides built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	envprovider "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces the environment variables this package reads,
// e.g. HTTPCORE_RETRY_MAXRETRIES.
const EnvPrefix = "HTTPCORE_"

// Load reads configuration from defaults, the given YAML file (a missing
// path is skipped), and environment variables, then validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := k.Load(envprovider.Provider(".", envprovider.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "_", ".")
			return key, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func defaults() map[string]any {
	return map[string]any{
		"http.timeout": "30s",

		"retry.maxretries":        3,
		"retry.initialdelay":      "1s",
		"retry.maxdelay":          "30s",
		"retry.backoffmultiplier": 2.0,
		"retry.interactive":       true,

		"log.level":  "info",
		"log.pretty": false,
	}
}

// Validate checks the configuration against its struct tags and the
// cross-field constraints the tags cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%s failed %q validation", fe.Namespace(), fe.Tag())
		}
		return err
	}

	if cfg.Retry.MaxDelay < cfg.Retry.InitialDelay {
		return fmt.Errorf("retry maxdelay (%s) must not be below initialdelay (%s)",
			cfg.Retry.MaxDelay, cfg.Retry.InitialDelay)
	}

	return nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
