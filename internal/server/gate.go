package server

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hgross/secretview/internal/metrics"
	apperrors "github.com/hgross/secretview/internal/platform/errors"
	"github.com/hgross/secretview/internal/secrets"
)

// Context keys set by the gate for downstream handlers.
const (
	contextKeyCredential = "gate.credential"
	contextKeyRecord     = "gate.record"
)

// HeaderAPIKey is the fallback credential header.
const HeaderAPIKey = "X-API-Key"

// extractor pulls a candidate credential from a request, empty when absent.
// Extractors run in order; the first non-empty result wins.
type extractor func(*http.Request) string

var extractors = []extractor{
	bearerToken,
	apiKeyHeader,
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get(echo.HeaderAuthorization))
	const prefix = "bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

func apiKeyHeader(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(HeaderAPIKey))
}

func extractCredential(r *http.Request) string {
	for _, extract := range extractors {
		if candidate := extract(r); candidate != "" {
			return candidate
		}
	}
	return ""
}

// requireAPIKey gates a route behind the configured shared API key.
// Credential presence is checked before the store is touched, so an
// unauthenticated request never triggers a remote fetch.
func (s *Server) requireAPIKey(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		candidate := extractCredential(c.Request())
		if candidate == "" {
			metrics.GateDecisionsTotal.WithLabelValues("missing_credential").Inc()
			return apperrors.MissingCredentialError()
		}

		ctx := c.Request().Context()
		if err := s.store.Initialize(ctx); err != nil {
			metrics.GateDecisionsTotal.WithLabelValues("configuration_unavailable").Inc()
			return apperrors.ConfigUnavailableError(err)
		}

		record, err := s.store.Record()
		if err != nil {
			metrics.GateDecisionsTotal.WithLabelValues("configuration_unavailable").Inc()
			return apperrors.ConfigUnavailableError(err)
		}

		if record.APIKey == "" {
			metrics.GateDecisionsTotal.WithLabelValues("server_misconfigured").Inc()
			return apperrors.MisconfiguredError("server has no API key configured")
		}

		if subtle.ConstantTimeCompare([]byte(candidate), []byte(record.APIKey)) != 1 {
			metrics.GateDecisionsTotal.WithLabelValues("invalid_credential").Inc()
			return apperrors.InvalidCredentialError()
		}

		metrics.GateDecisionsTotal.WithLabelValues("accepted").Inc()
		c.Set(contextKeyCredential, candidate)
		c.Set(contextKeyRecord, record)
		return next(c)
	}
}

// CredentialFrom returns the validated credential the gate stored for this
// request.
func CredentialFrom(c echo.Context) (string, bool) {
	credential, ok := c.Get(contextKeyCredential).(string)
	return credential, ok && credential != ""
}

// RecordFrom returns the resolved secret record the gate stored for this
// request.
func RecordFrom(c echo.Context) (*secrets.Record, bool) {
	record, ok := c.Get(contextKeyRecord).(*secrets.Record)
	return record, ok && record != nil
}
