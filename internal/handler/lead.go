package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/LoopTracer/looptracer-landing/internal/logger"
	"github.com/LoopTracer/looptracer-landing/internal/model"
	"github.com/LoopTracer/looptracer-landing/internal/observability"
	"github.com/LoopTracer/looptracer-landing/internal/response"
)

const msgLeadsNotConfigured = "GAS_LEADS_ENDPOINT not configured"

// LeadHandler relays contact-form submissions. Every failure is reported to
// the caller as a 500; the cause only goes to the log.
type LeadHandler struct {
	Endpoint  string
	Forwarder Forwarder
	Logger    zerolog.Logger
	Metrics   *observability.Metrics
}

// Submit handles POST /api/lead.
func (h *LeadHandler) Submit(c echo.Context) error {
	ctx := c.Request().Context()
	log := logger.FromContext(ctx, h.Logger).With().Str("relay", observability.RelayLead).Logger()

	if h.Endpoint == "" {
		log.Error().Err(ErrEndpointNotConfigured).Msg("lead not forwarded")
		h.Metrics.RecordOutcome(observability.RelayLead, observability.OutcomeNotConfigured)
		return response.Fail(c, http.StatusInternalServerError, msgLeadsNotConfigured)
	}

	body, err := decodeBody(c)
	if err != nil {
		log.Error().Err(err).Msg("lead not forwarded")
		h.Metrics.RecordOutcome(observability.RelayLead, observability.OutcomeBadRequest)
		return response.InternalError(c)
	}

	lead := model.NewLeadSubmission(body)

	res, err := h.Forwarder.PostJSON(ctx, h.Endpoint, lead)
	if res.Sent {
		h.Metrics.ObserveForward(observability.RelayLead, res.Latency)
	}
	if err != nil {
		log.Error().Err(err).Dur("latency", res.Latency).Msg("lead not forwarded")
		h.Metrics.RecordOutcome(observability.RelayLead, observability.OutcomeTransportErr)
		return response.InternalError(c)
	}
	if err := res.Err(); err != nil {
		log.Error().
			Err(err).
			Int("status", res.StatusCode).
			Str("upstream_body", res.Body).
			Msg("lead rejected by webhook")
		h.Metrics.RecordOutcome(observability.RelayLead, observability.OutcomeUpstreamError)
		return response.InternalError(c)
	}

	log.Info().
		Interface("path", lead.Path).
		Interface("utm_source", lead.UTMSource).
		Dur("latency", res.Latency).
		Msg("lead forwarded")
	h.Metrics.RecordOutcome(observability.RelayLead, observability.OutcomeForwarded)
	return response.OK(c)
}
