package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const (
	appPrefix   = "LANDING_"
	relayPrefix = "GAS_"
)

type Config struct {
	Primary       Primary              `koanf:"primary"`
	Server        ServerConfig         `koanf:"server"`
	Relay         RelayConfig          `koanf:"relay"`
	Observability *ObservabilityConfig `koanf:"observability" validate:"required"`
}

type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required,min=1"`
	ShutdownTimeout    int      `koanf:"shutdown_timeout" validate:"required,min=1"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required,min=1"`
}

// RelayConfig holds the spreadsheet webhook addresses. Both are optional:
// a missing lead endpoint is reported per request, a missing log endpoint
// silently disables event forwarding.
type RelayConfig struct {
	LeadsEndpoint  string `koanf:"leads_endpoint" validate:"omitempty,url"`
	LogsEndpoint   string `koanf:"logs_endpoint" validate:"omitempty,url"`
	ForwardTimeout int    `koanf:"forward_timeout" validate:"required,min=1"`
}

// LogsEndpointOrFallback returns the log endpoint, or the lead endpoint when
// no dedicated log endpoint is set.
func (r RelayConfig) LogsEndpointOrFallback() string {
	if r.LogsEndpoint != "" {
		return r.LogsEndpoint
	}
	return r.LeadsEndpoint
}

func (r RelayConfig) ForwardTimeoutDuration() time.Duration {
	return time.Duration(r.ForwardTimeout) * time.Second
}

// Default returns the configuration used for every key the environment leaves unset.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: "development"},
		Server: ServerConfig{
			Port:               "8080",
			ReadTimeout:        10,
			WriteTimeout:       30,
			IdleTimeout:        60,
			ShutdownTimeout:    15,
			CORSAllowedOrigins: []string{"*"},
		},
		Relay: RelayConfig{
			ForwardTimeout: 10,
		},
		Observability: DefaultObservabilityConfig(),
	}
}

// listKeys are split on commas when read from the environment.
var listKeys = map[string]bool{
	"server.cors_allowed_origins": true,
}

// appKey maps LANDING_SERVER__PORT to server.port.
func appKey(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, appPrefix), "__", "."))
}

// relayKey maps GAS_LEADS_ENDPOINT to relay.leads_endpoint.
func relayKey(s string) string {
	return "relay." + strings.ToLower(strings.TrimPrefix(s, relayPrefix))
}

// LoadConfig loads the configuration from environment variables using koanf.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue(appPrefix, ".", func(key, value string) (string, interface{}) {
		key = appKey(key)
		if listKeys[key] {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load %s env: %w", appPrefix, err)
	}

	err = k.Load(env.Provider(relayPrefix, ".", relayKey), nil)
	if err != nil {
		return nil, fmt.Errorf("load %s env: %w", relayPrefix, err)
	}

	mainConfig := Default()
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// set default observability config if not provided
	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := validator.New().Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsProduction reports whether the service runs with the production env name.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == "production"
}
