package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Int64ToStr converts an int64 to its string representation.
func Int64ToStr(num int64) string {
	return strconv.FormatInt(num, 10)
}

// StrToInt64 converts a string to an int64.
func StrToInt64(s string) (int64, error) {
	num, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not a valid integer: %w", s, err)
	}
	return num, nil
}

// OptionalInt64 parses s into a pointer, returning nil for an empty string.
func OptionalInt64(s string) (*int64, error) {
	if IsEmpty(s) {
		return nil, nil
	}
	n, err := StrToInt64(s)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
