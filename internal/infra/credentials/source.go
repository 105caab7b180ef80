package credentials

import (
	"context"
	"os"
	"strings"
)

// KeySource resolves the Gemini API key at call time. An empty key with a
// nil error means "not configured".
type KeySource interface {
	GeminiAPIKey(ctx context.Context) (string, error)
}

// EnvSource reads the first non-empty variable among Names on every call,
// so exporting a key does not require a restart.
type EnvSource struct {
	Names []string
}

// DefaultEnvSource checks GEMINI_API_KEY, then API_KEY.
func DefaultEnvSource() EnvSource {
	return EnvSource{Names: []string{"GEMINI_API_KEY", "API_KEY"}}
}

func (e EnvSource) GeminiAPIKey(context.Context) (string, error) {
	for _, name := range e.Names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v, nil
		}
	}
	return "", nil
}

// Chain returns the first non-empty key among its sources. A source error
// stops the lookup.
type Chain []KeySource

func (c Chain) GeminiAPIKey(ctx context.Context) (string, error) {
	for _, src := range c {
		if src == nil {
			continue
		}
		key, err := src.GeminiAPIKey(ctx)
		if err != nil {
			return "", err
		}
		if key != "" {
			return key, nil
		}
	}
	return "", nil
}

// Static is a fixed key, mostly useful in tests.
type Static string

func (s Static) GeminiAPIKey(context.Context) (string, error) {
	return strings.TrimSpace(string(s)), nil
}
