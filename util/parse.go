package util

import (
	"strconv"
	"strings"
)

var sizeUnits = []struct {
	suffix     string
	multiplier int64
}{
	{"GB", 1 << 30},
	{"MB", 1 << 20},
	{"KB", 1 << 10},
	{"B", 1},
}

// ParseSize parses a human-readable size such as "1MB", "512KB" or "2048"
// into bytes. Unparseable or negative input yields defaultBytes.
func ParseSize(s string, defaultBytes int64) int64 {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return defaultBytes
	}

	multiplier := int64(1)
	for _, u := range sizeUnits {
		if num, ok := strings.CutSuffix(s, u.suffix); ok {
			s, multiplier = strings.TrimSpace(num), u.multiplier
			break
		}
	}

	val, err := strconv.ParseInt(s, 10, 64)
	if err != nil || val < 0 {
		return defaultBytes
	}
	return val * multiplier
}

// MaskSecret keeps the first visiblePrefix bytes of s for log output and
// hides the rest. Secrets no longer than the prefix are fully masked.
func MaskSecret(s string, visiblePrefix int) string {
	if len(s) <= visiblePrefix {
		return "***"
	}
	return s[:visiblePrefix] + "***"
}
