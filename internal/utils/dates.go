package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// ParseOptionalDate accepts RFC 3339 timestamps as well as shorter forms
// such as "2025-01-31". Blank input yields nil. Dates without a zone are
// read as UTC, and zoned timestamps are converted to UTC.
func ParseOptionalDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}

	t, err := now.ParseInLocation(time.UTC, value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return &t, nil
}
