package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ratecal/pkg/contracts/domain"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	scale, err := NewScale("green", 0.4)
	require.NoError(t, err)
	return NewRenderer(scale, 10, 2, nil)
}

func TestRenderer_RenderAll_OneFilePerYear(t *testing.T) {
	agg := domain.DailyAggregate{
		date(2019, time.May, 1): {Count: 1, Sum: 9},
		date(2020, time.May, 1): {Count: 1, Sum: 9},
	}
	outDir := t.TempDir()

	paths, err := testRenderer(t).RenderAll(agg, domain.ModeCount, outDir)
	require.NoError(t, err)

	require.Equal(t, []string{
		filepath.Join(outDir, "ratings_2019.png"),
		filepath.Join(outDir, "ratings_2020.png"),
	}, paths)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "exactly one image per distinct year")

	for _, path := range paths {
		file, err := os.Open(path)
		require.NoError(t, err)
		_, err = png.Decode(file)
		file.Close()
		assert.NoError(t, err, "output must be a decodable PNG")
	}
}

func TestRenderer_RenderAll_Deterministic(t *testing.T) {
	agg := domain.DailyAggregate{
		date(2020, time.January, 1):  {Count: 2, Sum: 14},
		date(2020, time.June, 15):    {Count: 5, Sum: 40},
		date(2020, time.December, 31): {Count: 1, Sum: 3},
	}

	first := t.TempDir()
	second := t.TempDir()

	renderer := testRenderer(t)
	_, err := renderer.RenderAll(agg, domain.ModeCount, first)
	require.NoError(t, err)
	_, err = renderer.RenderAll(agg, domain.ModeCount, second)
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(first, "ratings_2020.png"))
	require.NoError(t, err)
	b, err := os.ReadFile(filepath.Join(second, "ratings_2020.png"))
	require.NoError(t, err)

	assert.Equal(t, a, b, "identical input and configuration must render identical bytes")
}

func TestRenderer_RenderAll_OverwritesPrevious(t *testing.T) {
	outDir := t.TempDir()
	renderer := testRenderer(t)

	agg := domain.DailyAggregate{date(2020, time.March, 3): {Count: 1}}
	_, err := renderer.RenderAll(agg, domain.ModeCount, outDir)
	require.NoError(t, err)
	before, err := os.ReadFile(filepath.Join(outDir, "ratings_2020.png"))
	require.NoError(t, err)

	_, err = renderer.RenderAll(agg, domain.ModeCount, outDir)
	require.NoError(t, err)
	after, err := os.ReadFile(filepath.Join(outDir, "ratings_2020.png"))
	require.NoError(t, err)

	assert.Equal(t, before, after)
}

func TestRenderer_RenderAll_EmptyAggregate(t *testing.T) {
	outDir := t.TempDir()

	paths, err := testRenderer(t).RenderAll(domain.DailyAggregate{}, domain.ModeCount, outDir)
	require.NoError(t, err)

	assert.Empty(t, paths)
	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenderer_RenderAll_CreatesOutputDir(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "nested", "heatmaps")
	agg := domain.DailyAggregate{date(2022, time.July, 4): {Count: 1}}

	_, err := testRenderer(t).RenderAll(agg, domain.ModeCount, outDir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, "ratings_2022.png"))
}

func TestImageFileName(t *testing.T) {
	assert.Equal(t, "ratings_2020.png", ImageFileName(2020))
	assert.Equal(t, "ratings_1999.png", ImageFileName(1999))
}

func TestRenderer_RenderYear_ImageSize(t *testing.T) {
	grid := BuildYearGrid(domain.DailyAggregate{}, domain.ModeCount, 2020)
	path := filepath.Join(t.TempDir(), "out.png")

	require.NoError(t, testRenderer(t).RenderYear(grid, 1, path))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	img, err := png.Decode(file)
	require.NoError(t, err)

	// 53 week columns of 10px cells with 2px gaps plus margins
	wantWidth := 34 + 53*12 + 6
	wantHeight := 22 + 7*12 + 6
	assert.Equal(t, wantWidth, img.Bounds().Dx())
	assert.Equal(t, wantHeight, img.Bounds().Dy())
}
