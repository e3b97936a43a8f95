package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Public status: reports which fields are configured, never values
	s.echo.GET("/api/status", s.handleStatus)

	// Gated routes (shared API key)
	s.echo.GET("/api/config", s.handleConfig, s.requireAPIKey)
	s.echo.POST("/api/verify", s.handleVerify, s.requireAPIKey)
}
