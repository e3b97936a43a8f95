package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hgross/secretview/internal/platform/version"
)

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := s.clock.Since(s.startTime).Seconds()
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

// handleReadiness is passive: it reports whether the store has loaded but
// never triggers a load itself.
func (s *Server) handleReadiness(c echo.Context) error {
	if !s.store.Ready() {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status":       "unhealthy",
			"failed_check": "secrets",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, version.Get())
}
