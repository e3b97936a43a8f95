package server

import (
	"github.com/labstack/echo/v4"

	"github.com/hgross/secretview/internal/platform/correlation"
)

// HeaderCorrelationID carries the correlation ID on requests and responses.
const HeaderCorrelationID = "X-Correlation-ID"

// correlationMiddleware puts a correlation ID into the request context so
// every log line for the request carries it. An inbound ID is reused,
// otherwise one is minted.
func correlationMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Request().Header.Get(HeaderCorrelationID)
		if id == "" {
			id = correlation.NewID()
		}

		ctx := correlation.WithID(c.Request().Context(), id)
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set(HeaderCorrelationID, id)

		return next(c)
	}
}
