package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// MsgInternalError is the only failure detail a caller ever sees for
// unexpected errors.
const MsgInternalError = "Internal server error"

// Result is the response shape of both relay endpoints.
type Result struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Health is the response shape of the health check.
type Health struct {
	Status string `json:"status"`
}

// OK sends 200 {"ok":true}.
func OK(c echo.Context) error {
	return c.JSON(http.StatusOK, Result{OK: true})
}

// Fail sends {"ok":false,"error":message} with the given status.
func Fail(c echo.Context, status int, message string) error {
	return c.JSON(status, Result{OK: false, Error: message})
}

// InternalError sends 500 with the generic message.
func InternalError(c echo.Context) error {
	return Fail(c, http.StatusInternalServerError, MsgInternalError)
}

func Healthy(c echo.Context) error {
	return c.JSON(http.StatusOK, Health{Status: "ok"})
}
