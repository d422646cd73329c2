package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"ratecal/pkg/contracts/domain"
)

// Config represents the complete application configuration
type Config struct {
	Input       InputConfig       `yaml:"input" envconfig:"INPUT"`
	Aggregation AggregationConfig `yaml:"aggregation" envconfig:"AGGREGATION"`
	Render      RenderConfig      `yaml:"render" envconfig:"RENDER"`
	Export      ExportConfig      `yaml:"export" envconfig:"EXPORT"`
	Logging     LoggingConfig     `yaml:"logging" envconfig:"LOGGING"`
}

// InputConfig describes the ratings export to read
type InputConfig struct {
	Path         string `yaml:"path" envconfig:"PATH" default:"data/ratings.csv" validate:"required"`
	DateColumn   string `yaml:"date_column" envconfig:"DATE_COLUMN" default:"Date Rated" validate:"required"`
	RatingColumn string `yaml:"rating_column" envconfig:"RATING_COLUMN" default:"Your Rating" validate:"required"`
	DateFormat   string `yaml:"date_format" envconfig:"DATE_FORMAT" default:"2006-01-02" validate:"required"`
}

// AggregationConfig selects how daily values are computed
type AggregationConfig struct {
	Mode string `yaml:"mode" envconfig:"MODE" default:"count" validate:"oneof=count average"`
}

// RenderConfig controls heatmap layout and coloring
type RenderConfig struct {
	OutputDir    string  `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"data/heatmaps" validate:"required"`
	Scale        string  `yaml:"scale" envconfig:"SCALE" default:"green" validate:"required"`
	CellSize     int     `yaml:"cell_size" envconfig:"CELL_SIZE" default:"12" validate:"gt=0"`
	Gap          int     `yaml:"gap" envconfig:"GAP" default:"2" validate:"gte=0"`
	MinIntensity float64 `yaml:"min_intensity" envconfig:"MIN_INTENSITY" default:"0.4" validate:"gte=0,lt=1"`
}

// ExportConfig toggles the report artifacts written next to the images
type ExportConfig struct {
	DailyCSV bool `yaml:"daily_csv" envconfig:"DAILY_CSV" default:"true"`
	Overview bool `yaml:"overview" envconfig:"OVERVIEW" default:"true"`
	Workbook bool `yaml:"workbook" envconfig:"WORKBOOK" default:"false"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/ratecal.log"`
}

// Mode returns the configured aggregation mode as a domain type
func (c *Config) Mode() domain.AggregationMode {
	return domain.AggregationMode(c.Aggregation.Mode)
}

// fileConfig mirrors Config for YAML decoding. Numeric and boolean fields
// are pointers so an explicit zero or false in the file stays
// distinguishable from an absent key during the merge.
type fileConfig struct {
	Input       InputConfig       `yaml:"input"`
	Aggregation AggregationConfig `yaml:"aggregation"`
	Render      fileRenderConfig  `yaml:"render"`
	Export      fileExportConfig  `yaml:"export"`
	Logging     LoggingConfig     `yaml:"logging"`
}

type fileRenderConfig struct {
	OutputDir    string   `yaml:"output_dir"`
	Scale        string   `yaml:"scale"`
	CellSize     *int     `yaml:"cell_size"`
	Gap          *int     `yaml:"gap"`
	MinIntensity *float64 `yaml:"min_intensity"`
}

type fileExportConfig struct {
	DailyCSV *bool `yaml:"daily_csv"`
	Overview *bool `yaml:"overview"`
	Workbook *bool `yaml:"workbook"`
}

// Load loads configuration from environment variables and config file.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("RATECAL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	configFile := getConfigFilePath()
	if configFile != "" {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileCfg, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*fileConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence).
// Fields the environment left at their defaults adopt the file values.
func mergeConfigs(fileCfg fileConfig, envCfg Config) Config {
	def := Default()

	if envCfg.Input.Path == def.Input.Path && fileCfg.Input.Path != "" {
		envCfg.Input.Path = fileCfg.Input.Path
	}
	if envCfg.Input.DateColumn == def.Input.DateColumn && fileCfg.Input.DateColumn != "" {
		envCfg.Input.DateColumn = fileCfg.Input.DateColumn
	}
	if envCfg.Input.RatingColumn == def.Input.RatingColumn && fileCfg.Input.RatingColumn != "" {
		envCfg.Input.RatingColumn = fileCfg.Input.RatingColumn
	}
	if envCfg.Input.DateFormat == def.Input.DateFormat && fileCfg.Input.DateFormat != "" {
		envCfg.Input.DateFormat = fileCfg.Input.DateFormat
	}
	if envCfg.Aggregation.Mode == def.Aggregation.Mode && fileCfg.Aggregation.Mode != "" {
		envCfg.Aggregation.Mode = fileCfg.Aggregation.Mode
	}
	if envCfg.Render.OutputDir == def.Render.OutputDir && fileCfg.Render.OutputDir != "" {
		envCfg.Render.OutputDir = fileCfg.Render.OutputDir
	}
	if envCfg.Render.Scale == def.Render.Scale && fileCfg.Render.Scale != "" {
		envCfg.Render.Scale = fileCfg.Render.Scale
	}
	if envCfg.Render.CellSize == def.Render.CellSize && fileCfg.Render.CellSize != nil {
		envCfg.Render.CellSize = *fileCfg.Render.CellSize
	}
	if envCfg.Render.Gap == def.Render.Gap && fileCfg.Render.Gap != nil {
		envCfg.Render.Gap = *fileCfg.Render.Gap
	}
	if envCfg.Render.MinIntensity == def.Render.MinIntensity && fileCfg.Render.MinIntensity != nil {
		envCfg.Render.MinIntensity = *fileCfg.Render.MinIntensity
	}
	if envCfg.Export.DailyCSV == def.Export.DailyCSV && fileCfg.Export.DailyCSV != nil {
		envCfg.Export.DailyCSV = *fileCfg.Export.DailyCSV
	}
	if envCfg.Export.Overview == def.Export.Overview && fileCfg.Export.Overview != nil {
		envCfg.Export.Overview = *fileCfg.Export.Overview
	}
	if envCfg.Export.Workbook == def.Export.Workbook && fileCfg.Export.Workbook != nil {
		envCfg.Export.Workbook = *fileCfg.Export.Workbook
	}
	if envCfg.Logging.Level == def.Logging.Level && fileCfg.Logging.Level != "" {
		envCfg.Logging.Level = fileCfg.Logging.Level
	}
	if envCfg.Logging.Output == def.Logging.Output && fileCfg.Logging.Output != "" {
		envCfg.Logging.Output = fileCfg.Logging.Output
	}
	if envCfg.Logging.FilePath == def.Logging.FilePath && fileCfg.Logging.FilePath != "" {
		envCfg.Logging.FilePath = fileCfg.Logging.FilePath
	}

	return envCfg
}

// Validate validates the configuration using struct tags plus the
// cross-field rules the tags cannot express
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	if !domain.AggregationMode(c.Aggregation.Mode).Valid() {
		return fmt.Errorf("invalid aggregation mode: %s", c.Aggregation.Mode)
	}

	// JSON is the only supported log format
	if c.Logging.Format != "json" {
		c.Logging.Format = "json"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = "logs/ratecal.log"
	}

	return nil
}

// getConfigFilePath returns the path to the config file, if one exists
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Path:         "data/ratings.csv",
			DateColumn:   "Date Rated",
			RatingColumn: "Your Rating",
			DateFormat:   "2006-01-02",
		},
		Aggregation: AggregationConfig{
			Mode: "count",
		},
		Render: RenderConfig{
			OutputDir:    "data/heatmaps",
			Scale:        "green",
			CellSize:     12,
			Gap:          2,
			MinIntensity: 0.4,
		},
		Export: ExportConfig{
			DailyCSV: true,
			Overview: true,
			Workbook: false,
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/ratecal.log",
		},
	}
}
