package dateutil

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the ISO calendar date used as the key of every daily log
	DateLayout = "2006-01-02"
	// MonthLayout is the year-month format used to select a reporting month
	MonthLayout = "2006-01"
)

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Date builds a calendar date at midnight UTC
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of calendar days in the given month
// Day 0 of the following month normalizes to the last day of this one.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDates returns every date of the month in order
func MonthDates(year int, month time.Month) []time.Time {
	days := DaysInMonth(year, month)
	dates := make([]time.Time, 0, days)
	for day := 1; day <= days; day++ {
		dates = append(dates, Date(year, month, day))
	}
	return dates
}

// IsWeekday returns true if the date is Monday-Friday
func IsWeekday(date time.Time) bool {
	weekday := date.Weekday()
	return weekday >= time.Monday && weekday <= time.Friday
}

// IsWeekend returns true if the date is Saturday or Sunday
func IsWeekend(date time.Time) bool {
	weekday := date.Weekday()
	return weekday == time.Saturday || weekday == time.Sunday
}

// FormatDate formats a date as YYYY-MM-DD
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// ParseDate parses date string in the formats found in stored logs and spreadsheets
func ParseDate(dateStr string) (time.Time, error) {
	formats := []string{
		DateLayout,
		"02.01.2006",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04:05Z",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return StartOfDay(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized date: %q", dateStr)
}

// ParseMonth parses a YYYY-MM string
func ParseMonth(value string) (int, time.Month, error) {
	t, err := time.Parse(MonthLayout, value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q (want YYYY-MM): %w", value, err)
	}
	return t.Year(), t.Month(), nil
}

// FormatMonth formats a year and month as YYYY-MM
func FormatMonth(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// CurrentMonth returns the system clock's month as YYYY-MM
func CurrentMonth() string {
	return Today().Format(MonthLayout)
}

// Today returns today's date (start of day)
func Today() time.Time {
	return StartOfDay(time.Now())
}
