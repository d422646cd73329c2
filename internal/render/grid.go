package render

import (
	"time"

	"ratecal/pkg/contracts/domain"
)

// Cell is one day slot in a calendar grid
type Cell struct {
	Date    time.Time
	Present bool
	Value   float64
}

// MonthLabel marks the week column where a month begins
type MonthLabel struct {
	Name string
	Week int
}

// Grid is the per-year calendar layout: week columns by weekday rows, with
// Sunday as row 0 at the top. Columns are Sunday-start weeks counted from
// January 1, so the first column may be partial.
type Grid struct {
	Year  int
	Weeks int
	cells map[int]map[int]Cell
}

// BuildYearGrid lays the aggregate's values for one year into a grid.
// Every day of the year gets a cell; days absent from the aggregate stay
// marked as not present.
func BuildYearGrid(agg domain.DailyAggregate, mode domain.AggregationMode, year int) Grid {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	startOffset := sundayIndex(start.Weekday())

	grid := Grid{
		Year:  year,
		cells: make(map[int]map[int]Cell),
	}

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		dayOfYear := date.YearDay() - 1
		week := (dayOfYear + startOffset) / 7
		row := sundayIndex(date.Weekday())

		cell := Cell{Date: date}
		if value, ok := agg[date]; ok {
			cell.Present = true
			cell.Value = value.Value(mode)
		}

		if grid.cells[week] == nil {
			grid.cells[week] = make(map[int]Cell)
		}
		grid.cells[week][row] = cell

		if week+1 > grid.Weeks {
			grid.Weeks = week + 1
		}
	}

	return grid
}

// Cell returns the cell at the given week column and weekday row.
// The second return value is false for slots outside the year.
func (g Grid) Cell(week, row int) (Cell, bool) {
	cell, ok := g.cells[week][row]
	return cell, ok
}

// MonthLabels returns one label per month at the week column where the
// month's first day falls
func (g Grid) MonthLabels() []MonthLabel {
	start := time.Date(g.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	startOffset := sundayIndex(start.Weekday())

	labels := make([]MonthLabel, 0, 12)
	for month := time.January; month <= time.December; month++ {
		first := time.Date(g.Year, month, 1, 0, 0, 0, 0, time.UTC)
		week := (first.YearDay() - 1 + startOffset) / 7
		labels = append(labels, MonthLabel{Name: first.Format("Jan"), Week: week})
	}
	return labels
}

// sundayIndex converts a weekday to the Sunday=0 row index
func sundayIndex(d time.Weekday) int {
	return int(d)
}
