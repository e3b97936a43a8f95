package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "github.com/hgross/secretview/internal/platform/errors"
	"github.com/hgross/secretview/internal/secrets"
)

// statusResponse reports secret presence only. Values never appear here.
type statusResponse struct {
	Mode   string            `json:"mode"`
	Fields map[string]string `json:"fields"`
}

// configResponse is the gated view of the resolved configuration: derived
// facts about the record, never the record itself.
type configResponse struct {
	Backend  string            `json:"backend"`
	LoadedAt time.Time         `json:"loaded_at"`
	Fields   map[string]string `json:"fields"`
}

// handleStatus ensures the store is initialized and reports which fields
// are configured. A failed load surfaces the safe part of the ConfigError:
// missing names are presence information, transport detail stays log-only.
func (s *Server) handleStatus(c echo.Context) error {
	if err := s.store.Initialize(c.Request().Context()); err != nil {
		return statusLoadError(err)
	}

	record, err := s.store.Record()
	if err != nil {
		return apperrors.InternalError("configuration not readable", err)
	}

	return c.JSON(http.StatusOK, statusResponse{
		Mode:   s.config.SecretsMode,
		Fields: record.Status(),
	})
}

func statusLoadError(err error) *apperrors.Error {
	structured := apperrors.ConfigUnavailableError(err)

	var cfgErr *secrets.ConfigError
	if errors.As(err, &cfgErr) {
		structured.Message = cfgErr.Error()
		if len(cfgErr.Missing) > 0 {
			structured = structured.WithContext("missing", cfgErr.Missing)
		}
	}
	return structured
}

// handleConfig returns derived facts about the loaded record for an
// authenticated caller.
func (s *Server) handleConfig(c echo.Context) error {
	record, ok := RecordFrom(c)
	if !ok {
		return apperrors.InternalError("gate did not attach a record", nil)
	}

	return c.JSON(http.StatusOK, configResponse{
		Backend:  s.store.Backend(),
		LoadedAt: s.store.LoadedAt(),
		Fields:   record.Status(),
	})
}

// handleVerify confirms a valid key. Reaching the handler at all means the
// gate accepted the credential.
func (s *Server) handleVerify(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
