package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"ratecal/internal/infrastructure"
	"ratecal/pkg/contracts/domain"
)

// yearSummary holds the per-year figures written to the workbook
type yearSummary struct {
	Year       int
	Days       int
	Events     int
	MaxValue   float64
	BusiestDay time.Time
}

// WriteWorkbook writes an XLSX summary with one row per year: days with
// activity, total events, the peak daily value and the busiest day
func WriteWorkbook(agg domain.DailyAggregate, mode domain.AggregationMode, path string, logger *slog.Logger) error {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	summaries := summarizeYears(agg, mode)

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Summary"
	f.SetSheetName("Sheet1", sheet)

	valueHeader := "Max Per Day"
	if mode == domain.ModeAverage {
		valueHeader = "Best Daily Average"
	}

	headers := []string{"Year", "Active Days", "Events", valueHeader, "Busiest Day"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("resolve header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for row, s := range summaries {
		values := []interface{}{
			s.Year,
			s.Days,
			s.Events,
			s.MaxValue,
			s.BusiestDay.Format("2006-01-02"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return fmt.Errorf("resolve cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("write cell: %w", err)
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	logger.Info("Wrote summary workbook",
		slog.String("path", path),
		slog.Int("years", len(summaries)))

	return nil
}

// summarizeYears computes per-year figures from the aggregate, ascending by
// year. Ties on the busiest day resolve to the earliest date so output is
// stable across runs.
func summarizeYears(agg domain.DailyAggregate, mode domain.AggregationMode) []yearSummary {
	byYear := make(map[int]*yearSummary)
	for _, date := range agg.Dates() {
		value := agg[date]
		s, ok := byYear[date.Year()]
		if !ok {
			s = &yearSummary{Year: date.Year()}
			byYear[date.Year()] = s
		}

		s.Days++
		s.Events += value.Count
		if v := value.Value(mode); v > s.MaxValue || s.BusiestDay.IsZero() {
			s.MaxValue = v
			s.BusiestDay = date
		}
	}

	years := agg.Years()
	summaries := make([]yearSummary, 0, len(years))
	for _, y := range years {
		summaries = append(summaries, *byYear[y])
	}
	return summaries
}
