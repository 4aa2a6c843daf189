package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/username/overtime-tracker/internal/calendar"
	"github.com/username/overtime-tracker/internal/config"
	"github.com/username/overtime-tracker/internal/manager"
	"github.com/username/overtime-tracker/internal/state"
	"github.com/username/overtime-tracker/pkg/dateutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	rootCmd := &cobra.Command{
		Use:           "overtime",
		Short:         "Monthly overtime calculator",
		Long:          "Record daily day/evening hours per employee and compute monthly overtime hours and payment",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				initLogger()
				return fmt.Errorf("failed to load config: %w", err)
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger()
					logger.Warn("File logging unavailable, logging to console",
						zap.String("file", cfg.Log.File), zap.Error(err))
				}
			} else {
				initLogger()
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./config.yaml if present)")

	rootCmd.AddCommand(
		employeeCmd(),
		holidayCmd(),
		ratesCmd(),
		logCmd(),
		importCmd(),
		templateCmd(),
		reportCmd(),
		calendarCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initializeManager opens the configured state store and loads the manager over it
func initializeManager(ctx context.Context) (*manager.Manager, error) {
	var backend state.Backend
	switch cfg.Storage.Backend {
	case "sqlite":
		b, err := state.NewSQLiteBackend(ctx, cfg.Storage.Path, logger)
		if err != nil {
			return nil, err
		}
		backend = b
	default:
		backend = state.NewFileBackend(cfg.Storage.Path, logger)
	}
	store := state.NewKVStore(backend, logger).WithDefaultRates(cfg.DefaultRates())

	m, err := manager.New(ctx, store, holidaySource(), cfg.Conventions(), logger)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return m, nil
}

// holidaySource returns the built-in official holidays, preceded by the
// configured holidays file when there is one
func holidaySource() calendar.HolidaySource {
	builtin := calendar.DefaultHolidays()
	if cfg.Calendar.HolidaysFile == "" {
		return builtin
	}

	logger.Info("Using holidays file with built-in fallback",
		zap.String("file", cfg.Calendar.HolidaysFile))
	composite := calendar.NewCompositeHolidays(
		calendar.NewFileHolidays(cfg.Calendar.HolidaysFile, logger),
		builtin,
		logger,
	)
	if err := composite.LoadPrimary(); err != nil {
		logger.Warn("Failed to load holidays file, continuing with built-in table",
			zap.Error(err))
	}
	return composite
}

// monthFlag resolves a --month value, defaulting to the current month
func monthFlag(value string) (int, time.Month, error) {
	if value == "" {
		value = dateutil.CurrentMonth()
	}
	year, month, err := dateutil.ParseMonth(value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month: %w", err)
	}
	return year, month, nil
}

func printf(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, format, a...)
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if cfg != nil {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(cfg.Log.Level)); err == nil {
			config.Level = zap.NewAtomicLevelAt(level)
		}
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

// initFileLogger builds a JSON logger rotating through lumberjack
func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
