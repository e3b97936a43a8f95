package secrets

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRecord() *Record {
	return &Record{
		DatabaseURL: "postgres://localhost/app",
		APIKey:      "k-123",
		JWTSecret:   "jwt-secret",
		RedisURL:    "redis://localhost:6379",
		StripeKey:   "sk_test_abc",
	}
}

func TestFieldNames(t *testing.T) {
	assert.Equal(t, []string{
		"database_url", "api_key", "jwt_secret", "redis_url", "stripe_secret_key",
	}, FieldNames())
}

func TestRecord_Field(t *testing.T) {
	r := fullRecord()

	value, ok := r.Field("api_key")
	assert.True(t, ok)
	assert.Equal(t, "k-123", value)

	_, ok = r.Field("nonexistent")
	assert.False(t, ok)
}

func TestRecord_Status_AllConfigured(t *testing.T) {
	status := fullRecord().Status()

	assert.Len(t, status, 5)
	for name, state := range status {
		assert.Equal(t, "configured", state, "field %s", name)
	}
}

func TestRecord_Status_ReportsMissing(t *testing.T) {
	r := fullRecord()
	r.RedisURL = ""
	r.StripeKey = ""

	status := r.Status()
	assert.Equal(t, "missing", status["redis_url"])
	assert.Equal(t, "missing", status["stripe_secret_key"])
	assert.Equal(t, "configured", status["database_url"])
}

func TestRecord_Status_NeverContainsValues(t *testing.T) {
	r := fullRecord()

	serialized, err := json.Marshal(r.Status())
	require.NoError(t, err)

	for _, secret := range []string{r.DatabaseURL, r.APIKey, r.JWTSecret, r.RedisURL, r.StripeKey} {
		assert.NotContains(t, string(serialized), secret)
	}
}

func TestRecord_JSONShape(t *testing.T) {
	raw := `{
		"database_url": "postgres://db",
		"api_key": "key",
		"jwt_secret": "jwt",
		"redis_url": "redis://cache",
		"stripe_secret_key": "sk"
	}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	assert.Equal(t, "postgres://db", r.DatabaseURL)
	assert.Equal(t, "sk", r.StripeKey)
	assert.Empty(t, r.missingNames())
}
