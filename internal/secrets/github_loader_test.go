package secrets

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func secretsFileJSON(t *testing.T) []byte {
	t.Helper()
	raw, err := json.Marshal(fullRecord())
	require.NoError(t, err)
	return raw
}

func contentsResponse(t *testing.T, file []byte) []byte {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"content":  base64.StdEncoding.EncodeToString(file),
		"encoding": "base64",
	})
	require.NoError(t, err)
	return body
}

func newLoaderFor(t *testing.T, server *httptest.Server) *GitHubLoader {
	t.Helper()
	loader, err := NewGitHubLoader("token", "acme", "secrets", "secrets.json", time.Second,
		WithBaseURL(server.URL))
	require.NoError(t, err)
	return loader
}

func TestNewGitHubLoader_MissingParams(t *testing.T) {
	_, err := NewGitHubLoader("", "acme", "", "", time.Second)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.ElementsMatch(t, []string{"GITHUB_TOKEN", "GITHUB_REPO"}, cfgErr.Missing)
}

func TestNewGitHubLoader_DefaultPath(t *testing.T) {
	loader, err := NewGitHubLoader("token", "acme", "secrets", "", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "secrets.json", loader.path)
}

func TestGitHubLoader_Success(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		_, _ = w.Write(contentsResponse(t, secretsFileJSON(t)))
	}))
	defer server.Close()

	record, err := newLoaderFor(t, server).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer token", gotAuth)
	assert.Equal(t, "/repos/acme/secrets/contents/secrets.json", gotPath)
	assert.Equal(t, "k-123", record.APIKey)
}

func TestGitHubLoader_FileNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newLoaderFor(t, server).Load(context.Background())
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "failed to load secrets from remote repository", cfgErr.Message)
	assert.NotContains(t, cfgErr.Error(), "404")
}

func TestGitHubLoader_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write(contentsResponse(t, secretsFileJSON(t)))
	}))
	defer server.Close()

	record, err := newLoaderFor(t, server).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Empty(t, record.missingNames())
}

func TestGitHubLoader_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := newLoaderFor(t, server).Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGitHubLoader_BadBase64(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"content": "not-base64!!!", "encoding": "base64"})
	}))
	defer server.Close()

	_, err := newLoaderFor(t, server).Load(context.Background())
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Contains(t, errors.Unwrap(cfgErr).Error(), "decode")
}

func TestGitHubLoader_BadJSONPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(contentsResponse(t, []byte("not a json object")))
	}))
	defer server.Close()

	_, err := newLoaderFor(t, server).Load(context.Background())
	require.Error(t, err)

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
}

func TestGitHubLoader_IncompleteFile(t *testing.T) {
	partial, err := json.Marshal(map[string]string{"database_url": "postgres://db"})
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(contentsResponse(t, partial))
	}))
	defer server.Close()

	_, loadErr := newLoaderFor(t, server).Load(context.Background())
	require.Error(t, loadErr)

	var cfgErr *ConfigError
	require.True(t, errors.As(loadErr, &cfgErr))
	assert.ElementsMatch(t, []string{"api_key", "jwt_secret", "redis_url", "stripe_secret_key"}, cfgErr.Missing)
}

func TestGitHubLoader_MultilineBase64(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString(secretsFileJSON(t))
	// The contents API wraps base64 at 60 columns.
	wrapped := encoded[:20] + "\n" + encoded[20:40] + "\n" + encoded[40:]

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"content": wrapped, "encoding": "base64"})
	}))
	defer server.Close()

	record, err := newLoaderFor(t, server).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "jwt-secret", record.JWTSecret)
}
