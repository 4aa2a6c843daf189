package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"github.com/username/overtime-tracker/internal/importer"
	"github.com/username/overtime-tracker/internal/overtime"
	"github.com/username/overtime-tracker/internal/report"
)

// Config represents application configuration
type Config struct {
	Storage  StorageConfig  `mapstructure:"storage"`
	Calendar CalendarConfig `mapstructure:"calendar"`
	Rates    RatesConfig    `mapstructure:"rates"`
	Import   ImportConfig   `mapstructure:"import"`
	Report   ReportConfig   `mapstructure:"report"`
	Log      LogConfig      `mapstructure:"log"`
}

// StorageConfig selects where state is persisted
type StorageConfig struct {
	Backend string `mapstructure:"backend"` // "file" or "sqlite"
	Path    string `mapstructure:"path"`
}

// CalendarConfig represents calendar configuration
type CalendarConfig struct {
	// HolidaysFile lists official holidays, one "YYYY-MM-DD description" per line.
	// Years it does not cover fall back to the built-in table.
	HolidaysFile string `mapstructure:"holidays_file"`
}

// RatesConfig holds the rates used until the state carries its own
type RatesConfig struct {
	Day     float64 `mapstructure:"day"`
	Evening float64 `mapstructure:"evening"`
}

// ImportConfig names the spreadsheet conventions
type ImportConfig struct {
	NameColumn          string `mapstructure:"name_column"`
	DaySheet            string `mapstructure:"day_sheet"`
	EveningSheet        string `mapstructure:"evening_sheet"`
	SundayJustification string `mapstructure:"sunday_justification"`
	TemplateLayout      string `mapstructure:"template_layout"` // "suffixed" or "dual-sheet"
}

// ReportConfig represents report export configuration
type ReportConfig struct {
	Shape string `mapstructure:"shape"` // "full" or "reduced"
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

func setDefaults(v *viper.Viper) {
	conv := importer.DefaultConventions()
	rates := overtime.DefaultRates()

	v.SetDefault("storage.backend", "file")
	v.SetDefault("storage.path", "overtime-state.json")
	v.SetDefault("calendar.holidays_file", "")
	v.SetDefault("rates.day", rates.DayOvertimeRate)
	v.SetDefault("rates.evening", rates.EveningOvertimeRate)
	v.SetDefault("import.name_column", conv.NameColumn)
	v.SetDefault("import.day_sheet", conv.DaySheet)
	v.SetDefault("import.evening_sheet", conv.EveningSheet)
	v.SetDefault("import.sunday_justification", conv.SundayJustification)
	v.SetDefault("import.template_layout", string(importer.LayoutSuffixed))
	v.SetDefault("report.shape", string(report.ShapeFull))
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

// Load loads configuration from file and environment. Without an explicit
// path a missing config file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.overtime-tracker")
		v.AddConfigPath("/etc/overtime-tracker")
	}

	// Read environment variables, e.g. OVERTIME_STORAGE_PATH
	v.SetEnvPrefix("OVERTIME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.ExpandEnvVars()

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file", "sqlite":
	default:
		return fmt.Errorf("storage.backend must be 'file' or 'sqlite', got '%s'", c.Storage.Backend)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path is required")
	}

	if err := c.DefaultRates().Validate(); err != nil {
		return fmt.Errorf("rates: %w", err)
	}

	if c.Import.NameColumn == "" {
		return fmt.Errorf("import.name_column is required")
	}
	if c.Import.DaySheet == "" || c.Import.EveningSheet == "" {
		return fmt.Errorf("import.day_sheet and import.evening_sheet are required")
	}
	if c.Import.DaySheet == c.Import.EveningSheet {
		return fmt.Errorf("import.day_sheet and import.evening_sheet must differ")
	}
	if strings.TrimSpace(c.Import.SundayJustification) == "" {
		return fmt.Errorf("import.sunday_justification must not be blank")
	}
	if _, err := c.Import.Layout(); err != nil {
		return err
	}

	if _, err := report.ParseShape(c.Report.Shape); err != nil {
		return fmt.Errorf("report.shape: %w", err)
	}

	return nil
}

// DefaultRates returns the configured fallback rates
func (c *Config) DefaultRates() overtime.Rates {
	return overtime.Rates{
		DayOvertimeRate:     c.Rates.Day,
		EveningOvertimeRate: c.Rates.Evening,
	}
}

// Conventions returns the spreadsheet conventions for import and templates
func (c *Config) Conventions() importer.Conventions {
	conv := importer.DefaultConventions()
	conv.NameColumn = c.Import.NameColumn
	conv.DaySheet = c.Import.DaySheet
	conv.EveningSheet = c.Import.EveningSheet
	conv.SundayJustification = c.Import.SundayJustification
	return conv
}

// Layout returns the configured template layout
func (c *ImportConfig) Layout() (importer.Layout, error) {
	switch importer.Layout(c.TemplateLayout) {
	case importer.LayoutSuffixed, "":
		return importer.LayoutSuffixed, nil
	case importer.LayoutDualSheet:
		return importer.LayoutDualSheet, nil
	default:
		return "", fmt.Errorf("import.template_layout must be 'suffixed' or 'dual-sheet', got '%s'", c.TemplateLayout)
	}
}

// ExpandEnvVars expands environment variables in paths
func (c *Config) ExpandEnvVars() {
	c.Storage.Path = os.ExpandEnv(c.Storage.Path)
	c.Calendar.HolidaysFile = os.ExpandEnv(c.Calendar.HolidaysFile)
	c.Log.File = os.ExpandEnv(c.Log.File)
}
