package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCSVFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ratings.csv"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "EXPORT.CSV"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("c"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0755))

	found, err := FindCSVFiles(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(found))
	for _, f := range found {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"ratings.csv", "EXPORT.CSV"}, names)
}

func TestFindCSVFiles_MissingDirectory(t *testing.T) {
	_, err := FindCSVFiles(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestResolveExport(t *testing.T) {
	t.Run("file path returned as-is", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "ratings.csv")
		require.NoError(t, os.WriteFile(path, []byte("a"), 0644))

		got, err := ResolveExport(path)
		require.NoError(t, err)
		assert.Equal(t, path, got)
	})

	t.Run("directory picks most recent CSV", func(t *testing.T) {
		dir := t.TempDir()
		older := filepath.Join(dir, "older.csv")
		newer := filepath.Join(dir, "newer.csv")
		require.NoError(t, os.WriteFile(older, []byte("a"), 0644))
		require.NoError(t, os.WriteFile(newer, []byte("b"), 0644))

		past := time.Now().Add(-time.Hour)
		require.NoError(t, os.Chtimes(older, past, past))

		got, err := ResolveExport(dir)
		require.NoError(t, err)
		assert.Equal(t, newer, got)
	})

	t.Run("directory without CSV fails", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("a"), 0644))

		_, err := ResolveExport(dir)
		assert.ErrorContains(t, err, "no CSV export")
	})

	t.Run("missing path fails", func(t *testing.T) {
		_, err := ResolveExport(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}
