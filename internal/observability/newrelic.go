package observability

import (
	"fmt"
	"net/http"

	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/LoopTracer/looptracer-landing/internal/config"
)

// NewRelicApp starts the APM agent. It returns a nil application when no
// licence key is configured; the agent API treats a nil *Application as a no-op.
func NewRelicApp(cfg *config.ObservabilityConfig) (*newrelic.Application, error) {
	if !cfg.NewRelic.Enabled() {
		return nil, nil
	}
	app, err := newrelic.NewApplication(
		newrelic.ConfigAppName(cfg.NewRelic.AppName),
		newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
		newrelic.ConfigDistributedTracerEnabled(true),
		func(c *newrelic.Config) {
			c.Labels = map[string]string{"env": cfg.Environment}
		},
	)
	if err != nil {
		return nil, fmt.Errorf("new relic: %w", err)
	}
	return app, nil
}

// Transport wraps base so outbound calls appear as external segments of the
// transaction found in the request context.
func Transport(base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return newrelic.NewRoundTripper(base)
}
