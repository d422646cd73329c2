package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregationMode_Valid(t *testing.T) {
	tests := []struct {
		name string
		mode AggregationMode
		want bool
	}{
		{name: "count", mode: ModeCount, want: true},
		{name: "average", mode: ModeAverage, want: true},
		{name: "empty", mode: AggregationMode(""), want: false},
		{name: "unknown", mode: AggregationMode("median"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mode.Valid())
		})
	}
}

func TestDailyValue_Average(t *testing.T) {
	tests := []struct {
		name  string
		value DailyValue
		want  float64
	}{
		{name: "empty value", value: DailyValue{}, want: 0},
		{name: "single rating", value: DailyValue{Count: 1, Sum: 8}, want: 8},
		{name: "two ratings", value: DailyValue{Count: 2, Sum: 14}, want: 7},
		{name: "fractional mean", value: DailyValue{Count: 3, Sum: 10}, want: 10.0 / 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.value.Average(), 1e-9)
		})
	}
}

func TestDailyValue_Value(t *testing.T) {
	v := DailyValue{Count: 4, Sum: 24}

	assert.Equal(t, 4.0, v.Value(ModeCount))
	assert.Equal(t, 6.0, v.Value(ModeAverage))
}

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	in := time.Date(2021, time.June, 5, 23, 45, 12, 999, loc)

	key := DateKey(in)

	assert.Equal(t, date(2021, time.June, 5), key)
	assert.Equal(t, time.UTC, key.Location())
}

func TestDailyAggregate_Years(t *testing.T) {
	agg := DailyAggregate{
		date(2020, time.May, 1):      {Count: 1},
		date(2019, time.December, 31): {Count: 2},
		date(2020, time.January, 1):  {Count: 1},
		date(2022, time.March, 15):   {Count: 3},
	}

	assert.Equal(t, []int{2019, 2020, 2022}, agg.Years())
	assert.Empty(t, DailyAggregate{}.Years())
}

func TestDailyAggregate_MaxValue(t *testing.T) {
	agg := DailyAggregate{
		date(2020, time.May, 1): {Count: 3, Sum: 12},
		date(2020, time.May, 2): {Count: 1, Sum: 9},
	}

	assert.Equal(t, 3.0, agg.MaxValue(ModeCount))
	assert.Equal(t, 9.0, agg.MaxValue(ModeAverage))
	assert.Equal(t, 0.0, DailyAggregate{}.MaxValue(ModeCount))
}

func TestDailyAggregate_Dates(t *testing.T) {
	agg := DailyAggregate{
		date(2020, time.May, 2): {Count: 1},
		date(2019, time.May, 1): {Count: 1},
		date(2020, time.May, 1): {Count: 1},
	}

	dates := agg.Dates()

	assert.Equal(t, []time.Time{
		date(2019, time.May, 1),
		date(2020, time.May, 1),
		date(2020, time.May, 2),
	}, dates)
}
