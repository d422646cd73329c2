package exporter

import (
	"strconv"

	"ratecal/pkg/contracts/domain"
)

// formatValue formats a daily value for report output. Counts print as
// integers, averages with two decimal places.
func formatValue(v float64, mode domain.AggregationMode) string {
	if mode == domain.ModeCount {
		return formatInt(int(v))
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatInt formats an int value for report output
func formatInt(i int) string {
	return strconv.Itoa(i)
}
