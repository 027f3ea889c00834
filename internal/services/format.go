package services

import (
	"fmt"
	"strconv"
)

// FormatLargeNumber renders a quantity with a B/M/K suffix and one decimal,
// or the bare integer below a thousand.
func FormatLargeNumber(value float64) string {
	switch {
	case value >= 1e9:
		return fmt.Sprintf("%.1fB", value/1e9)
	case value >= 1e6:
		return fmt.Sprintf("%.1fM", value/1e6)
	case value >= 1e3:
		return fmt.Sprintf("%.1fK", value/1e3)
	default:
		return strconv.FormatInt(int64(value), 10)
	}
}
