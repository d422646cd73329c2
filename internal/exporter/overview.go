package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ratecal/internal/infrastructure"
	"ratecal/internal/render"
	"ratecal/pkg/contracts/domain"
)

// WriteOverview writes a markdown index linking each rendered per-year
// heatmap so the whole history can be browsed from one file
func WriteOverview(years []int, mode domain.AggregationMode, path string, logger *slog.Logger) error {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	var b strings.Builder
	b.WriteString("# Ratings Calendar Heatmaps\n\n")

	switch mode {
	case domain.ModeAverage:
		b.WriteString("*Color intensity indicates the average rating given that day.*\n\n")
	default:
		b.WriteString("*Color intensity indicates the number of ratings given that day.*\n\n")
	}

	b.WriteString("## Yearly Overview\n\n")
	for i := len(years) - 1; i >= 0; i-- {
		year := years[i]
		b.WriteString(fmt.Sprintf("### %d\n\n", year))
		b.WriteString(fmt.Sprintf("![Ratings %d](%s)\n\n", year, render.ImageFileName(year)))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write overview: %w", err)
	}

	logger.Info("Wrote overview",
		slog.String("path", path),
		slog.Int("years", len(years)))

	return nil
}
