package secrets

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotInitialized is returned when the record is read before a successful
// load. Callers that initialize-or-check first never see it.
var ErrNotInitialized = errors.New("secrets: store not initialized")

// ConfigError describes a failed load. Message and Missing are safe to show
// to callers; Cause carries transport or parse detail and is log-only.
type ConfigError struct {
	Message string
	Missing []string
	Cause   error
}

func (e *ConfigError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("secrets: %s: %s", e.Message, strings.Join(e.Missing, ", "))
	}
	return "secrets: " + e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// missingError builds a ConfigError listing every missing name.
func missingError(message string, missing []string) *ConfigError {
	return &ConfigError{Message: message, Missing: missing}
}
