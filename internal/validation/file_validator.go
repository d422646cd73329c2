package validation

import (
	"fmt"
	"log/slog"
	"os"

	"ratecal/internal/infrastructure"
)

// FileValidator provides preflight checks shared by the pipeline stages
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputPath validates that the input path exists and is readable
func (v *FileValidator) ValidateInputPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input path does not exist",
			slog.String("path", path))
		return fmt.Errorf("input path %s does not exist", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat input path",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	if !info.IsDir() {
		file, err := os.Open(path)
		if err != nil {
			v.logger.Error("Input file is not readable",
				slog.String("path", path),
				slog.String("error", err.Error()))
			return fmt.Errorf("input file %s is not readable: %w", path, err)
		}
		file.Close()
	}

	return nil
}

// ValidateOutputDirectory ensures the output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	// Verify we can actually write into it
	probe, err := os.CreateTemp(dir, ".write_check_*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	return nil
}
