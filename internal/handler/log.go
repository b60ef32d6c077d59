package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/LoopTracer/looptracer-landing/internal/logger"
	"github.com/LoopTracer/looptracer-landing/internal/model"
	"github.com/LoopTracer/looptracer-landing/internal/observability"
	"github.com/LoopTracer/looptracer-landing/internal/response"
)

// LogHandler relays pageview and click events. Failures are logged and
// counted but never reported to the caller.
type LogHandler struct {
	// Endpoint is the log webhook, already resolved against the lead
	// webhook fallback. Empty disables forwarding.
	Endpoint  string
	Forwarder Forwarder
	Logger    zerolog.Logger
	Metrics   *observability.Metrics
}

// Record handles POST /api/log. It always answers 200 {"ok":true}.
func (h *LogHandler) Record(c echo.Context) (err error) {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx, h.Logger).With().Str("relay", observability.RelayLog).Logger()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Err(fmt.Errorf("panic: %v", r)).Msg("event dropped (ignored)")
			h.Metrics.RecordOutcome(observability.RelayLog, observability.OutcomeTransportErr)
			err = response.OK(c)
		}
	}()

	if h.Endpoint == "" {
		h.Metrics.RecordOutcome(observability.RelayLog, observability.OutcomeNotConfigured)
		return response.OK(c)
	}

	body, decodeErr := decodeBody(c)
	if decodeErr != nil {
		log.Warn().Err(decodeErr).Msg("event dropped (ignored)")
		h.Metrics.RecordOutcome(observability.RelayLog, observability.OutcomeBadRequest)
		return response.OK(c)
	}

	event := model.NewLogEvent(body)

	res, postErr := h.Forwarder.PostJSON(ctx, h.Endpoint, event)
	if res.Sent {
		h.Metrics.ObserveForward(observability.RelayLog, res.Latency)
	}
	switch {
	case postErr != nil:
		log.Warn().Err(postErr).Str("type", event.Type).Msg("event dropped (ignored)")
		h.Metrics.RecordOutcome(observability.RelayLog, observability.OutcomeTransportErr)
	case !res.OK():
		log.Warn().Err(res.Err()).Str("type", event.Type).Int("status", res.StatusCode).Msg("event rejected by webhook (ignored)")
		h.Metrics.RecordOutcome(observability.RelayLog, observability.OutcomeUpstreamError)
	default:
		log.Debug().Str("type", event.Type).Interface("path", event.Path).Msg("event forwarded")
		h.Metrics.RecordOutcome(observability.RelayLog, observability.OutcomeForwarded)
	}
	return response.OK(c)
}
