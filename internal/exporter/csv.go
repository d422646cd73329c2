package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ratecal/internal/infrastructure"
	"ratecal/pkg/contracts/domain"
)

// CSVWriter writes daily aggregate values as CSV reports
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &CSVWriter{logger: logger}
}

// WriteDailyCSV writes one Date,Value row per aggregated day, sorted by
// date, replacing any previous file at the path
func (w *CSVWriter) WriteDailyCSV(agg domain.DailyAggregate, mode domain.AggregationMode, path string) error {
	valueHeader := "Count"
	if mode == domain.ModeAverage {
		valueHeader = "AverageRating"
	}

	records := make([][]string, 0, len(agg))
	for _, date := range agg.Dates() {
		records = append(records, []string{
			date.Format("2006-01-02"),
			formatValue(agg[date].Value(mode), mode),
		})
	}

	return w.write(path, []string{"Date", valueHeader}, records)
}

// write writes a headed CSV file with a UTF-8 BOM for Excel compatibility
func (w *CSVWriter) write(path string, headers []string, records [][]string) error {
	w.logger.Info("Writing CSV report",
		slog.String("path", path),
		slog.Int("record_count", len(records)))

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("failed to write BOM: %w", err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
