package calendar

import (
	"fmt"

	"go.uber.org/zap"
)

// CompositeHolidays implements HolidaySource with fallback strategy
// Primary: FileHolidays (operator-maintained file)
// Fallback: BuiltinHolidays (bundled table)
type CompositeHolidays struct {
	primary  HolidaySource
	fallback HolidaySource
	logger   *zap.Logger
}

// NewCompositeHolidays creates a new CompositeHolidays
func NewCompositeHolidays(primary, fallback HolidaySource, logger *zap.Logger) *CompositeHolidays {
	return &CompositeHolidays{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Holidays returns the primary table for the year, or the fallback's
func (ch *CompositeHolidays) Holidays(year int) ([]Holiday, error) {
	holidays, err := ch.primary.Holidays(year)
	if err == nil {
		return holidays, nil
	}

	ch.logger.Warn("Primary holiday source failed, falling back",
		zap.Int("year", year),
		zap.Error(err))

	return ch.fallback.Holidays(year)
}

// LoadPrimary loads the primary source (if FileHolidays)
func (ch *CompositeHolidays) LoadPrimary() error {
	if fh, ok := ch.primary.(*FileHolidays); ok {
		if err := fh.Load(); err != nil {
			return fmt.Errorf("failed to load holiday file: %w", err)
		}
		ch.logger.Info("Holiday file loaded successfully")
	}
	return nil
}
