package exporter

import (
	"fmt"
)

// formatFloat formats a float64 for CSV output with exactly 2 decimal places.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatOptFloat formats an optional float64; nil renders as an empty cell.
func formatOptFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}

// formatInt formats an int for CSV output.
func formatInt(i int) string {
	return fmt.Sprintf("%d", i)
}
