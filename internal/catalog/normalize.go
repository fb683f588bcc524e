package catalog

import (
	"strconv"
	"strings"
	"time"
)

// ParseViewCount normalizes a raw view count string to an integer.
// Suffixes "K" and "M" multiply by 1000 and 1000000, thousands
// separators are stripped, and anything non-numeric normalizes to 0.
func ParseViewCount(s string) int64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}

	multiplier := int64(1)
	switch s[len(s)-1] {
	case 'k', 'K':
		multiplier = 1000
		s = s[:len(s)-1]
	case 'm', 'M':
		multiplier = 1000000
		s = s[:len(s)-1]
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return 0
	}
	return int64(value * float64(multiplier))
}

// ParseDurationSeconds converts a formatted duration ("M:SS" or
// "H:MM:SS") to seconds. Malformed strings default to 0.
func ParseDurationSeconds(s string) float64 {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return float64(total)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"January 2, 2006",
}

// ParseDate parses a publish date in ISO-8601 or epoch-seconds form.
// Unparseable dates normalize to the Unix epoch so that items without a
// valid date sort as oldest.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	if epoch, err := strconv.ParseInt(s, 10, 64); err == nil && epoch > 0 {
		return time.Unix(epoch, 0).UTC()
	}
	return time.Unix(0, 0).UTC()
}
