package secrets

import (
	"context"
	"os"
)

// EnvLoader reads every record field from environment variables. Used in
// local mode.
type EnvLoader struct {
	// Lookup resolves an environment variable, os.Getenv when nil.
	Lookup func(key string) string
}

func NewEnvLoader() *EnvLoader {
	return &EnvLoader{}
}

func (l *EnvLoader) Load(_ context.Context) (*Record, error) {
	lookup := l.Lookup
	if lookup == nil {
		lookup = os.Getenv
	}

	record := &Record{}
	for _, f := range fields {
		f.Set(record, lookup(f.Env))
	}

	// Report every missing variable, not just the first.
	if missing := record.missingEnv(); len(missing) > 0 {
		return nil, missingError("missing required environment variables", missing)
	}

	return record, nil
}
