package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/hgross/secretview/internal/config"
	"github.com/hgross/secretview/internal/secrets"
)

const testAPIKey = "K1"

// fakeLoader satisfies secrets.Loader with a fixed result.
type fakeLoader struct {
	record *secrets.Record
	err    error
	loads  int
}

func (l *fakeLoader) Load(_ context.Context) (*secrets.Record, error) {
	l.loads++
	if l.err != nil {
		return nil, l.err
	}
	return l.record, nil
}

func testRecord() *secrets.Record {
	return &secrets.Record{
		DatabaseURL: "postgres://localhost/app",
		APIKey:      testAPIKey,
		JWTSecret:   "jwt-secret-value",
		RedisURL:    "redis://localhost:6379",
		StripeKey:   "sk_test_abc",
	}
}

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:      "test",
		Port:        "8080",
		SecretsMode: config.ModeLocal,
	}
}

func newTestServer(t *testing.T, loader secrets.Loader) *Server {
	t.Helper()
	store := secrets.NewStore(loader, "env", clockwork.NewFakeClock())
	return NewServer(testConfig(), store, clockwork.NewFakeClock())
}

// doRequest runs a request through the full middleware chain.
func doRequest(srv *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)
	return rec
}

func newContext(t *testing.T, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func requireInitialized(t *testing.T, srv *Server) {
	t.Helper()
	require.NoError(t, srv.store.Initialize(context.Background()))
}
