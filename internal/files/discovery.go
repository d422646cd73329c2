package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// FindCSVFiles finds all CSV files in the specified directory
func FindCSVFiles(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".csv") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(dir, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}

// ResolveExport returns the ratings export to read. A file path is returned
// as-is; for a directory the most recently modified CSV inside it wins.
func ResolveExport(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("input path %s: %w", path, err)
	}

	if !info.IsDir() {
		return path, nil
	}

	csvs, err := FindCSVFiles(path)
	if err != nil {
		return "", err
	}
	if len(csvs) == 0 {
		return "", fmt.Errorf("no CSV export found in %s", path)
	}

	latest := csvs[0]
	for _, f := range csvs[1:] {
		if f.ModTime.After(latest.ModTime) {
			latest = f
		}
	}

	return latest.Path, nil
}
