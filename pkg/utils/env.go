package utils

import (
	"os"
	"strconv"
	"time"
)

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the fallback string.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// GetenvInt parses an integer variable, returning fallback when it is unset or malformed.
func GetenvInt(key string, fallback int) int {
	n, err := strconv.Atoi(Getenv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

// GetenvBool parses a boolean variable ("true", "1", "false", ...).
func GetenvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(Getenv(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

// GetenvDuration parses a Go duration such as "15m" or "72h".
func GetenvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(Getenv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
