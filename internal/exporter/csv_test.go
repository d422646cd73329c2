package exporter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ratecal/pkg/contracts/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCSVWriter_WriteDailyCSV(t *testing.T) {
	tests := []struct {
		name string
		agg  domain.DailyAggregate
		mode domain.AggregationMode
		want string
	}{
		{
			name: "count mode sorted by date",
			agg: domain.DailyAggregate{
				date(2020, time.May, 2): {Count: 1},
				date(2019, time.May, 1): {Count: 3},
			},
			mode: domain.ModeCount,
			want: "Date,Count\n2019-05-01,3\n2020-05-02,1\n",
		},
		{
			name: "average mode with two decimals",
			agg: domain.DailyAggregate{
				date(2020, time.January, 1): {Count: 2, Sum: 14},
			},
			mode: domain.ModeAverage,
			want: "Date,AverageRating\n2020-01-01,7.00\n",
		},
		{
			name: "empty aggregate writes header only",
			agg:  domain.DailyAggregate{},
			mode: domain.ModeCount,
			want: "Date,Count\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "daily.csv")

			err := NewCSVWriter(nil).WriteDailyCSV(tt.agg, tt.mode, path)
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)

			// UTF-8 BOM for Excel compatibility
			require.True(t, len(data) >= 3)
			assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
			assert.Equal(t, tt.want, string(data[3:]))
		})
	}
}

func TestCSVWriter_WriteDailyCSV_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "nested", "daily.csv")
	agg := domain.DailyAggregate{date(2020, time.May, 1): {Count: 1}}

	err := NewCSVWriter(nil).WriteDailyCSV(agg, domain.ModeCount, path)
	require.NoError(t, err)

	assert.FileExists(t, path)
}

func TestCSVWriter_WriteDailyCSV_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daily.csv")
	writer := NewCSVWriter(nil)

	big := domain.DailyAggregate{
		date(2020, time.May, 1): {Count: 1},
		date(2020, time.May, 2): {Count: 1},
	}
	require.NoError(t, writer.WriteDailyCSV(big, domain.ModeCount, path))

	small := domain.DailyAggregate{date(2020, time.May, 1): {Count: 1}}
	require.NoError(t, writer.WriteDailyCSV(small, domain.ModeCount, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Date,Count\n2020-05-01,1\n", string(data[3:]))
}
