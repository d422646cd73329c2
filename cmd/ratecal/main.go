package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ratecal/internal/config"
	"ratecal/internal/exporter"
	"ratecal/internal/files"
	"ratecal/internal/infrastructure"
	"ratecal/internal/ingest"
	"ratecal/internal/render"
	"ratecal/internal/validation"
	"ratecal/pkg/contracts"
)

func main() {
	os.Exit(run())
}

func run() int {
	in := flag.String("in", "", "ratings export CSV file or directory containing it (defaults to config input.path)")
	out := flag.String("out", "", "output directory for heatmap images (defaults to config render.output_dir)")
	mode := flag.String("mode", "", "aggregation mode: count | average (defaults to config aggregation.mode)")
	scale := flag.String("scale", "", "color scale: named ramp or #rrggbb (defaults to config render.scale)")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println(contracts.GetFullVersionString())
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		return 1
	}

	// Flags override config
	if *in != "" {
		cfg.Input.Path = *in
	}
	if *out != "" {
		cfg.Render.OutputDir = *out
	}
	if *mode != "" {
		cfg.Aggregation.Mode = *mode
	}
	if *scale != "" {
		cfg.Render.Scale = *scale
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		return 1
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = infrastructure.GetLogger()
	}
	defer infrastructure.CloseLogFile()

	logger.Info("Starting heatmap generation",
		slog.String("version", contracts.Version),
		slog.String("input", cfg.Input.Path),
		slog.String("output_dir", cfg.Render.OutputDir),
		slog.String("mode", cfg.Aggregation.Mode),
		slog.String("scale", cfg.Render.Scale))

	colorScale, err := render.NewScale(cfg.Render.Scale, cfg.Render.MinIntensity)
	if err != nil {
		logger.Error("Invalid color scale",
			slog.String("scale", cfg.Render.Scale),
			slog.String("error", err.Error()))
		return 1
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputPath(cfg.Input.Path); err != nil {
		logger.Error("Input validation failed", slog.String("error", err.Error()))
		return 1
	}
	if err := validator.ValidateOutputDirectory(cfg.Render.OutputDir); err != nil {
		logger.Error("Output validation failed", slog.String("error", err.Error()))
		return 1
	}

	exportPath, err := files.ResolveExport(cfg.Input.Path)
	if err != nil {
		logger.Error("Failed to locate ratings export", slog.String("error", err.Error()))
		return 1
	}
	logger.Info("Using ratings export", slog.String("path", exportPath))

	parser := ingest.NewParser(ingest.Options{
		DateColumn:   cfg.Input.DateColumn,
		RatingColumn: cfg.Input.RatingColumn,
		DateFormat:   cfg.Input.DateFormat,
		Mode:         cfg.Mode(),
	}, logger)

	events, summary, err := parser.ParseFile(exportPath)
	if err != nil {
		logger.Error("Failed to parse ratings export", slog.String("error", err.Error()))
		return 1
	}
	if len(events) == 0 {
		logger.Warn("No valid rating events in export, nothing to render",
			slog.String("path", exportPath),
			slog.Int("skipped_rows", summary.SkippedRows))
		fmt.Printf("Generated 0 heatmap(s) in %s (0 events, %d rows skipped)\n",
			cfg.Render.OutputDir, summary.SkippedRows)
		return 0
	}

	agg := ingest.Aggregate(events)
	logger.Info("Aggregated rating events",
		slog.Int("events", len(events)),
		slog.Int("days", len(agg)),
		slog.Int("years", len(agg.Years())))

	renderer := render.NewRenderer(colorScale, cfg.Render.CellSize, cfg.Render.Gap, logger)
	paths, err := renderer.RenderAll(agg, cfg.Mode(), cfg.Render.OutputDir)
	if err != nil {
		logger.Error("Failed to render heatmaps", slog.String("error", err.Error()))
		return 1
	}

	if cfg.Export.DailyCSV {
		csvPath := filepath.Join(cfg.Render.OutputDir, "daily_aggregate.csv")
		if err := exporter.NewCSVWriter(logger).WriteDailyCSV(agg, cfg.Mode(), csvPath); err != nil {
			logger.Error("Failed to write daily aggregate CSV", slog.String("error", err.Error()))
			return 1
		}
	}
	if cfg.Export.Overview {
		overviewPath := filepath.Join(cfg.Render.OutputDir, "ratings_overview.md")
		if err := exporter.WriteOverview(agg.Years(), cfg.Mode(), overviewPath, logger); err != nil {
			logger.Error("Failed to write overview", slog.String("error", err.Error()))
			return 1
		}
	}
	if cfg.Export.Workbook {
		workbookPath := filepath.Join(cfg.Render.OutputDir, "ratings_summary.xlsx")
		if err := exporter.WriteWorkbook(agg, cfg.Mode(), workbookPath, logger); err != nil {
			logger.Error("Failed to write summary workbook", slog.String("error", err.Error()))
			return 1
		}
	}

	logger.Info("Heatmap generation completed",
		slog.Int("images", len(paths)),
		slog.Int("events", summary.Events),
		slog.Int("skipped_rows", summary.SkippedRows))

	fmt.Printf("Generated %d heatmap(s) in %s (%d events, %d rows skipped)\n",
		len(paths), cfg.Render.OutputDir, summary.Events, summary.SkippedRows)

	return 0
}
