package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Source describes how to load a secret value.
type Source struct {
	// Name is used in error messages to give more context about the secret.
	Name string
	// Value is an inline secret value provided via configuration or env.
	Value string
	// File points to a file containing the secret value. When set it takes
	// precedence over Value.
	File string
	// Optional makes an unconfigured secret resolve to "" instead of an error.
	// A configured but empty file is still an error.
	Optional bool
}

// ServiceToken describes the bearer token for the recommendation service.
// The service accepts anonymous requests, so the token is optional.
func ServiceToken(file string) Source {
	return Source{Name: "service token", File: file, Optional: true}
}

// GeminiKey describes the API key required by the gemini resume parser.
func GeminiKey(value, file string) Source {
	return Source{Name: "gemini api key", Value: value, File: file}
}

// Load returns the resolved secret value from the provided source. The
// returned secret is always trimmed.
func Load(src Source) (string, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		name = "secret"
	}

	file := strings.TrimSpace(src.File)
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading %s from file %q: %w", name, file, err)
		}

		secret := strings.TrimSpace(string(data))
		if secret == "" {
			return "", fmt.Errorf("%s file %q is empty", name, file)
		}
		return secret, nil
	}

	secret := strings.TrimSpace(src.Value)
	if secret == "" && !src.Optional {
		return "", fmt.Errorf("%s is not configured", name)
	}

	return secret, nil
}
