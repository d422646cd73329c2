package render

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"ratecal/internal/infrastructure"
	"ratecal/pkg/contracts/domain"
)

const (
	leftMargin   = 34
	topMargin    = 22
	bottomMargin = 6
	rightMargin  = 6
)

// weekday row labels, drawn on every other row like the usual
// contribution-graph layout
var rowLabels = map[int]string{1: "Mon", 3: "Wed", 5: "Fri"}

// Renderer draws calendar grids to PNG files
type Renderer struct {
	scale    Scale
	cellSize int
	gap      int
	logger   *slog.Logger
}

// NewRenderer creates a renderer with the given scale and cell geometry
func NewRenderer(scale Scale, cellSize, gap int, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	if cellSize <= 0 {
		cellSize = 12
	}
	if gap < 0 {
		gap = 2
	}
	return &Renderer{scale: scale, cellSize: cellSize, gap: gap, logger: logger}
}

// ImageFileName returns the output file name for a year. The name is derived
// solely from the year so repeated runs overwrite the same files.
func ImageFileName(year int) string {
	return fmt.Sprintf("ratings_%d.png", year)
}

// RenderAll renders one heatmap image per distinct year in the aggregate and
// returns the written paths sorted by year. The intensity scale is shared
// across years so images stay comparable. Files for years no longer present
// from earlier runs are left untouched.
func (r *Renderer) RenderAll(agg domain.DailyAggregate, mode domain.AggregationMode, outDir string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory %s: %w", outDir, err)
	}

	years := agg.Years()
	max := agg.MaxValue(mode)

	paths := make([]string, 0, len(years))
	for _, year := range years {
		grid := BuildYearGrid(agg, mode, year)
		path := filepath.Join(outDir, ImageFileName(year))

		if err := r.RenderYear(grid, max, path); err != nil {
			return nil, fmt.Errorf("render year %d: %w", year, err)
		}

		r.logger.Info("Rendered heatmap",
			slog.Int("year", year),
			slog.String("path", path))
		paths = append(paths, path)
	}

	return paths, nil
}

// RenderYear draws a single year grid to the given PNG path
func (r *Renderer) RenderYear(grid Grid, max float64, path string) error {
	step := r.cellSize + r.gap
	width := leftMargin + grid.Weeks*step + rightMargin
	height := topMargin + 7*step + bottomMargin

	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for week := 0; week < grid.Weeks; week++ {
		for row := 0; row < 7; row++ {
			cell, ok := grid.Cell(week, row)
			if !ok {
				continue
			}

			if cell.Present {
				dc.SetColor(r.scale.Color(cell.Value, max))
			} else {
				dc.SetColor(r.scale.NoData())
			}

			x := float64(leftMargin + week*step)
			y := float64(topMargin + row*step)
			dc.DrawRectangle(x, y, float64(r.cellSize), float64(r.cellSize))
			dc.Fill()
		}
	}

	dc.SetRGB(0.2, 0.2, 0.2)

	seen := make(map[int]bool)
	for _, label := range grid.MonthLabels() {
		// Two months can share a column in short years; first one wins
		if seen[label.Week] {
			continue
		}
		seen[label.Week] = true
		x := float64(leftMargin + label.Week*step)
		dc.DrawString(label.Name, x, topMargin-8)
	}

	for row, label := range rowLabels {
		y := float64(topMargin+row*step) + float64(r.cellSize)/2
		dc.DrawStringAnchored(label, leftMargin-4, y, 1, 0.35)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}

	if err := dc.EncodePNG(file); err != nil {
		file.Close()
		return fmt.Errorf("encode png: %w", err)
	}

	return file.Close()
}
