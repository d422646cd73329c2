package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"ratecal/internal/infrastructure"
	"ratecal/pkg/contracts/domain"
)

// Options configures how the ratings export is parsed
type Options struct {
	DateColumn   string
	RatingColumn string
	DateFormat   string
	Mode         domain.AggregationMode
}

// Summary reports what happened during a parse run
type Summary struct {
	Rows        int
	Events      int
	SkippedRows int
}

// Parser reads ratings export CSV files
type Parser struct {
	opts   Options
	logger *slog.Logger
}

// NewParser creates a parser for the given options
func NewParser(opts Options, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	if opts.DateColumn == "" {
		opts.DateColumn = "Date Rated"
	}
	if opts.RatingColumn == "" {
		opts.RatingColumn = "Your Rating"
	}
	if opts.DateFormat == "" {
		opts.DateFormat = "2006-01-02"
	}
	if opts.Mode == "" {
		opts.Mode = domain.ModeCount
	}
	return &Parser{opts: opts, logger: logger}
}

// ParseFile reads a ratings export and extracts the valid rating events.
// Rows with an unparseable date, or a non-numeric rating in average mode,
// are skipped and counted in the summary.
func (p *Parser) ParseFile(path string) ([]domain.RatingEvent, Summary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, Summary{}, fmt.Errorf("open ratings export: %w", err)
	}
	defer file.Close()

	events, summary, err := p.parse(file)
	if err != nil {
		return nil, summary, fmt.Errorf("parse %s: %w", path, err)
	}

	p.logger.Info("Parsed ratings export",
		slog.String("path", path),
		slog.Int("rows", summary.Rows),
		slog.Int("events", summary.Events),
		slog.Int("skipped_rows", summary.SkippedRows))

	return events, summary, nil
}

func (p *Parser) parse(r io.Reader) ([]domain.RatingEvent, Summary, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, Summary{}, fmt.Errorf("read header: %w", err)
	}

	cols, err := p.mapColumns(header)
	if err != nil {
		return nil, Summary{}, err
	}

	var (
		events  []domain.RatingEvent
		summary Summary
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Malformed CSV row (bad quoting etc.) is a row-level skip
			summary.Rows++
			summary.SkippedRows++
			continue
		}
		summary.Rows++

		event, ok := p.parseRecord(record, cols)
		if !ok {
			summary.SkippedRows++
			continue
		}

		events = append(events, event)
		summary.Events++
	}

	return events, summary, nil
}

// columnMap holds the resolved column indices, -1 when absent
type columnMap struct {
	date      int
	rating    int
	title     int
	titleType int
}

// mapColumns resolves the configured column names against the header row.
// The date column is required; the rating column is required in average mode.
func (p *Parser) mapColumns(header []string) (columnMap, error) {
	cols := columnMap{date: -1, rating: -1, title: -1, titleType: -1}

	dateNames := fallbackNames(p.opts.DateColumn, "Date Rated", "Date")
	ratingNames := fallbackNames(p.opts.RatingColumn, "Your Rating", "Rating")

	for i, raw := range header {
		name := strings.TrimSpace(stripBOM(raw))
		switch {
		case cols.date == -1 && matchesAny(name, dateNames):
			cols.date = i
		case cols.rating == -1 && matchesAny(name, ratingNames):
			cols.rating = i
		case cols.title == -1 && strings.EqualFold(name, "Title"):
			cols.title = i
		case cols.titleType == -1 && strings.EqualFold(name, "Title Type"):
			cols.titleType = i
		}
	}

	if cols.date == -1 {
		return cols, fmt.Errorf("required column %q not found in header", p.opts.DateColumn)
	}
	if p.opts.Mode == domain.ModeAverage && cols.rating == -1 {
		return cols, fmt.Errorf("required column %q not found in header", p.opts.RatingColumn)
	}

	return cols, nil
}

// parseRecord converts one CSV record into a rating event.
// Returns false when the row must be skipped.
func (p *Parser) parseRecord(record []string, cols columnMap) (domain.RatingEvent, bool) {
	if cols.date >= len(record) {
		return domain.RatingEvent{}, false
	}

	dateStr := strings.TrimSpace(record[cols.date])
	if dateStr == "" {
		return domain.RatingEvent{}, false
	}

	date, err := time.Parse(p.opts.DateFormat, dateStr)
	if err != nil {
		p.logger.Debug("Skipping row with unparseable date",
			slog.String("value", dateStr),
			slog.String("error", err.Error()))
		return domain.RatingEvent{}, false
	}

	event := domain.RatingEvent{Date: domain.DateKey(date)}

	if cols.rating != -1 && cols.rating < len(record) {
		ratingStr := strings.TrimSpace(record[cols.rating])
		if ratingStr != "" {
			rating, err := strconv.ParseFloat(strings.ReplaceAll(ratingStr, ",", ""), 64)
			if err == nil {
				event.Rating = rating
				event.HasRating = true
			}
		}
	}

	// Average mode needs a usable rating on every contributing row
	if p.opts.Mode == domain.ModeAverage && !event.HasRating {
		return domain.RatingEvent{}, false
	}

	if cols.title != -1 && cols.title < len(record) {
		event.Title = strings.TrimSpace(record[cols.title])
	}
	if cols.titleType != -1 && cols.titleType < len(record) {
		event.TitleType = strings.TrimSpace(record[cols.titleType])
	}

	return event, true
}

// fallbackNames builds the candidate list for a column, configured name first
func fallbackNames(configured string, fallbacks ...string) []string {
	names := []string{configured}
	for _, f := range fallbacks {
		if !strings.EqualFold(f, configured) {
			names = append(names, f)
		}
	}
	return names
}

func matchesAny(name string, candidates []string) bool {
	for _, c := range candidates {
		if strings.EqualFold(name, c) {
			return true
		}
	}
	return false
}

// stripBOM removes a leading UTF-8 byte order mark written by Excel exports
func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}
