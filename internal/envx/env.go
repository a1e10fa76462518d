// Package envx overlays configuration values from environment variables.
// Unset or empty variables leave the target untouched, so env can be applied
// after defaults, JSON and flags.
package envx

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// String sets *dst to the value of key when it is set and non-empty.
func String(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// Int64 sets *dst from key. A malformed value is reported, not ignored.
func Int64(dst *int64, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// Duration sets *dst from key using time.ParseDuration syntax.
func Duration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
