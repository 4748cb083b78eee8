package config

import "time"

// Config holds the persisted settings callers read and pass into the HTTP
// core as plain values: transport defaults, retry policy, per-service
// endpoints and credentials, and logging preferences.
type Config struct {
	HTTP     HTTPConfig               `koanf:"http"`
	Retry    RetryConfig              `koanf:"retry"`
	Log      LogConfig                `koanf:"log"`
	Services map[string]ServiceConfig `koanf:"services" validate:"dive"`
}

// HTTPConfig holds transport defaults.
type HTTPConfig struct {
	Timeout time.Duration `koanf:"timeout" validate:"min=0"`
}

// RetryConfig holds the retry policy.
type RetryConfig struct {
	MaxRetries        int           `koanf:"maxretries" validate:"min=0"`
	InitialDelay      time.Duration `koanf:"initialdelay" validate:"min=0"`
	MaxDelay          time.Duration `koanf:"maxdelay" validate:"min=0"`
	BackoffMultiplier float64       `koanf:"backoffmultiplier" validate:"gte=1"`
	Interactive       bool          `koanf:"interactive"`
}

// ServiceConfig holds one remote endpoint with its credentials. The
// username is usually an account email; the token an API key.
type ServiceConfig struct {
	BaseURL  string `koanf:"baseurl" validate:"omitempty,url"`
	Username string `koanf:"username"`
	Token    string `koanf:"token"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal panic disabled"`
	Pretty bool   `koanf:"pretty"`
}
