// Package formatting parses human-readable size values used in configuration.
package formatting

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var units = []string{
	"B", "KB", "MB",
	"GB", "TB", "PB",
}

var bytesPattern = regexp.MustCompile(`^(\d+\.?\d*)\s*([A-Za-z]*)$`)

// ParseBytes parses a human-readable byte size string (e.g., "64KB") into a byte count.
// Supports units B through PB (base-1024). A bare number with no unit is treated as bytes.
// Unit matching is case-insensitive and an optional space between number and unit is allowed.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	matches := bytesPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number: %w", err)
	}

	unit := strings.ToUpper(matches[2])
	if unit == "" {
		return int64(value), nil
	}

	idx := slices.Index(units, unit)
	if idx == -1 {
		return 0, fmt.Errorf("unknown byte size unit: %q", unit)
	}

	return int64(value * math.Pow(1024, float64(idx))), nil
}
