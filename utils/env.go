package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

func lookupEnv[T any](key string, defaultVal T, parse func(string) (T, error)) T {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	result, err := parse(strings.TrimSpace(value))
	if err != nil {
		return defaultVal
	}
	return result
}

func GetEnvAsString(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func GetEnvAsInt(key string, defaultVal int) int {
	return lookupEnv(key, defaultVal, strconv.Atoi)
}

func GetEnvAsUint64(key string, defaultVal uint64) uint64 {
	return lookupEnv(key, defaultVal, func(s string) (uint64, error) {
		return strconv.ParseUint(s, 10, 64)
	})
}

func GetEnvAsBool(key string, defaultVal bool) bool {
	return lookupEnv(key, defaultVal, strconv.ParseBool)
}

// GetEnvAsDuration accepts Go duration strings ("15m") and plain integers,
// which are read as seconds.
func GetEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	return lookupEnv(key, defaultVal, func(s string) (time.Duration, error) {
		if secs, err := strconv.Atoi(s); err == nil {
			return time.Duration(secs) * time.Second, nil
		}
		return time.ParseDuration(s)
	})
}

// GetEnvAsList splits a comma separated variable, dropping empty items.
func GetEnvAsList(key string, defaultVal []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
