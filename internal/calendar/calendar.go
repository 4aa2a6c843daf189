package calendar

import (
	"errors"
	"time"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeSaturday
	DayTypeSunday
	DayTypeOfficialHoliday
	DayTypeOverrideHoliday
)

// String returns a short label for the day type
func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeSaturday:
		return "saturday"
	case DayTypeSunday:
		return "sunday"
	case DayTypeOfficialHoliday:
		return "official-holiday"
	case DayTypeOverrideHoliday:
		return "holiday"
	default:
		return "unknown"
	}
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date      time.Time
	Type      DayType
	IsWorkday bool
	Note      string
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year     int
	Month    time.Month
	WorkDays int
	Weekends int
	Holidays int // official and override holidays falling on weekdays
	Days     []DayInfo
}

// Holiday is one entry of an official holiday table
type Holiday struct {
	Date        string `json:"date" mapstructure:"date"` // YYYY-MM-DD
	Description string `json:"description" mapstructure:"description"`
}

// ErrYearNotCovered is returned by a HolidaySource that has no table for the year
var ErrYearNotCovered = errors.New("no official holiday table for year")

// HolidaySource supplies the official holiday table for a year
type HolidaySource interface {
	Holidays(year int) ([]Holiday, error)
}
