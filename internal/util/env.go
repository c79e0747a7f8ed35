package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// EnvOrDefault returns the trimmed environment variable value, or fallback when it is
// unset or blank.
func EnvOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// EnvIntOrDefault parses an integer environment variable. A set but malformed value is
// an error rather than a silent fallback.
func EnvIntOrDefault(key string, fallback int) (int, error) {
	raw := EnvOrDefault(key, "")
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
