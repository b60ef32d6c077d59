package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/LoopTracer/looptracer-landing/internal/config"
	"github.com/LoopTracer/looptracer-landing/internal/handler"
	"github.com/LoopTracer/looptracer-landing/internal/observability"
	"github.com/LoopTracer/looptracer-landing/internal/response"
	"github.com/LoopTracer/looptracer-landing/internal/webhook"
)

// Server holds the Echo app and dependencies.
type Server struct {
	Echo    *echo.Echo
	Config  *config.Config
	Metrics *observability.Metrics
	logger  zerolog.Logger
	nrApp   *newrelic.Application
}

// New builds the Echo server and registers routes.
func New(cfg *config.Config, log zerolog.Logger) (*Server, error) {
	nrApp, err := observability.NewRelicApp(cfg.Observability)
	if err != nil {
		return nil, err
	}
	metrics := observability.NewMetrics()

	s := &Server{Config: cfg, Metrics: metrics, logger: log, nrApp: nrApp}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError
	e.Server.ReadTimeout = time.Duration(cfg.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.Server.WriteTimeout) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.Server.IdleTimeout) * time.Second

	e.Use(
		middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}),
		contextLogger(log),
		requestLogger(log),
		middleware.Recover(),
		newRelicTransaction(nrApp),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.Server.CORSAllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderContentType},
		}),
	)

	forwarder := webhook.NewClient(
		cfg.Relay.ForwardTimeoutDuration(),
		observability.Transport(http.DefaultTransport),
		config.ServiceName+"/"+config.Version,
	)

	leads := &handler.LeadHandler{
		Endpoint:  cfg.Relay.LeadsEndpoint,
		Forwarder: forwarder,
		Logger:    log,
		Metrics:   metrics,
	}
	events := &handler.LogHandler{
		Endpoint:  cfg.Relay.LogsEndpointOrFallback(),
		Forwarder: forwarder,
		Logger:    log,
		Metrics:   metrics,
	}

	e.POST("/api/lead", leads.Submit)
	e.POST("/api/log", events.Record)
	e.GET("/health", response.Healthy)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	if cfg.Relay.LeadsEndpoint == "" {
		log.Warn().Msg("GAS_LEADS_ENDPOINT not set: lead submissions will fail")
	}
	if events.Endpoint == "" {
		log.Warn().Msg("no log endpoint set: events will be dropped")
	}

	s.Echo = e
	return s, nil
}

// handleError renders any unhandled error in the relay envelope. Errors below
// 500 keep echo's message (404, 405); everything else is generic.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := response.MsgInternalError
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
		status = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		s.logger.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("unhandled error")
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = response.Fail(c, status, message)
}

// Start serves HTTP until Shutdown is called. It returns nil on a clean shutdown.
func (s *Server) Start() error {
	addr := ":" + s.Config.Server.Port
	s.logger.Info().Str("addr", addr).Str("version", config.Version).Msg("server starting")
	if err := s.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and flushes the APM agent.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.Echo.Shutdown(ctx)
	if s.nrApp != nil {
		timeout := 5 * time.Second
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		s.nrApp.Shutdown(timeout)
	}
	return err
}
