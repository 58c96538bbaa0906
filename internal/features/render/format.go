package render

import (
	"math"
	"strconv"
)

// f0 renders a value rounded to the nearest integer.
func f0(v float64) string {
	return strconv.FormatFloat(math.Round(v), 'f', -1, 64)
}

// trimFloat renders a number without trailing zeros.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatStatValue compacts large numeric values: millions get an M suffix,
// thousands a K suffix, both with one decimal. Strings pass through.
func formatStatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return compactNumber(val)
	case float32:
		return compactNumber(float64(val))
	case int:
		return compactNumber(float64(val))
	case int32:
		return compactNumber(float64(val))
	case int64:
		return compactNumber(float64(val))
	case nil:
		return "0"
	}
	return "0"
}

func compactNumber(v float64) string {
	switch {
	case math.Abs(v) >= 1_000_000:
		return strconv.FormatFloat(v/1_000_000, 'f', 1, 64) + "M"
	case math.Abs(v) >= 1_000:
		return strconv.FormatFloat(v/1_000, 'f', 1, 64) + "K"
	}
	return trimFloat(v)
}
