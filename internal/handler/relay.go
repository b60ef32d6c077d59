package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/LoopTracer/looptracer-landing/internal/webhook"
)

// ErrEndpointNotConfigured is logged when a relay has no webhook address.
var ErrEndpointNotConfigured = errors.New("relay endpoint not configured")

// ErrBodyNotObject is returned for request bodies such as `null` that decode
// without error but carry no JSON object.
var ErrBodyNotObject = errors.New("body is not a JSON object")

// Forwarder posts a JSON payload to a webhook. *webhook.Client implements it.
type Forwarder interface {
	PostJSON(ctx context.Context, endpoint string, payload any) (webhook.Result, error)
}

// decodeBody reads the request body as a JSON object.
func decodeBody(c echo.Context) (map[string]any, error) {
	var body map[string]any
	if err := c.Echo().JSONSerializer.Deserialize(c, &body); err != nil {
		return nil, fmt.Errorf("decode body: %w", err)
	}
	if body == nil {
		return nil, fmt.Errorf("decode body: %w", ErrBodyNotObject)
	}
	return body, nil
}
