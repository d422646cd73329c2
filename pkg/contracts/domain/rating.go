package domain

import (
	"sort"
	"time"
)

// RatingEvent represents a single valid row from a ratings export.
// Events are immutable once parsed.
type RatingEvent struct {
	Date      time.Time `json:"date" validate:"required"`
	Rating    float64   `json:"rating,omitempty" validate:"gte=0"`
	HasRating bool      `json:"has_rating"`
	Title     string    `json:"title,omitempty"`
	TitleType string    `json:"title_type,omitempty"`
}

// AggregationMode determines how daily values are computed
type AggregationMode string

const (
	// ModeCount aggregates the number of rating events per day
	ModeCount AggregationMode = "count"
	// ModeAverage aggregates the mean rating value per day
	ModeAverage AggregationMode = "average"
)

// Valid reports whether the mode is a recognized aggregation mode
func (m AggregationMode) Valid() bool {
	return m == ModeCount || m == ModeAverage
}

// DailyValue holds the accumulated values for one calendar date
type DailyValue struct {
	Count int     `json:"count"`
	Sum   float64 `json:"sum"`
}

// Average returns the mean rating for the day
func (v DailyValue) Average() float64 {
	if v.Count == 0 {
		return 0
	}
	return v.Sum / float64(v.Count)
}

// Value returns the daily value under the given aggregation mode
func (v DailyValue) Value(mode AggregationMode) float64 {
	if mode == ModeAverage {
		return v.Average()
	}
	return float64(v.Count)
}

// DailyAggregate maps calendar dates to their accumulated daily values.
// Keys are normalized to UTC midnight via DateKey. A date absent from the
// map means "no data" for that day, which is distinct from a zero value.
type DailyAggregate map[time.Time]DailyValue

// DateKey normalizes a timestamp to the UTC midnight used as aggregate key
func DateKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Years returns the distinct years present in the aggregate, ascending
func (a DailyAggregate) Years() []int {
	seen := make(map[int]bool)
	for date := range a {
		seen[date.Year()] = true
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// MaxValue returns the largest daily value under the given mode across all
// dates. Returns 0 for an empty aggregate.
func (a DailyAggregate) MaxValue(mode AggregationMode) float64 {
	var max float64
	for _, v := range a {
		if val := v.Value(mode); val > max {
			max = val
		}
	}
	return max
}

// Dates returns all dates in the aggregate sorted ascending
func (a DailyAggregate) Dates() []time.Time {
	dates := make([]time.Time, 0, len(a))
	for d := range a {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}
