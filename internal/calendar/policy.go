package calendar

import (
	"sort"
	"time"

	"github.com/username/overtime-tracker/pkg/dateutil"
	"go.uber.org/zap"
)

// Policy decides which dates are working days. A date is a working day when it
// falls on Monday-Friday and is neither an official holiday nor an override.
type Policy struct {
	official  HolidaySource
	overrides map[string]struct{}
	logger    *zap.Logger
	years     map[int]map[string]Holiday // resolved official tables, key: year
}

// NewPolicy creates a Policy over an official holiday source and the
// user-maintained override dates
func NewPolicy(official HolidaySource, overrides []string, logger *zap.Logger) *Policy {
	p := &Policy{
		official: official,
		logger:   logger,
		years:    make(map[int]map[string]Holiday),
	}
	p.SetOverrides(overrides)
	return p
}

// SetOverrides replaces the override holiday set
func (p *Policy) SetOverrides(dates []string) {
	p.overrides = make(map[string]struct{}, len(dates))
	for _, d := range dates {
		p.overrides[d] = struct{}{}
	}
}

// DaysInMonth returns the number of calendar days in the month
func (p *Policy) DaysInMonth(year int, month time.Month) int {
	return dateutil.DaysInMonth(year, month)
}

// WeekdayOf returns the weekday of the date
func (p *Policy) WeekdayOf(date time.Time) time.Weekday {
	return date.Weekday()
}

// IsOverride reports whether the date is a user-declared holiday
func (p *Policy) IsOverride(date time.Time) bool {
	_, ok := p.overrides[dateutil.FormatDate(date)]
	return ok
}

// IsOfficialHoliday reports whether the date is in the official table
func (p *Policy) IsOfficialHoliday(date time.Time) bool {
	_, ok := p.officialHoliday(date)
	return ok
}

// IsWorkingDay checks if the given date is a working day
func (p *Policy) IsWorkingDay(date time.Time) bool {
	return dateutil.IsWeekday(date) && !p.IsOverride(date) && !p.IsOfficialHoliday(date)
}

// WorkingDaysInMonth counts the working days of the month
func (p *Policy) WorkingDaysInMonth(year int, month time.Month) int {
	workingDays := 0
	for _, date := range dateutil.MonthDates(year, month) {
		if p.IsWorkingDay(date) {
			workingDays++
		}
	}
	return workingDays
}

// GetDayInfo returns detailed info for a specific day
// Holidays take precedence over the weekend types.
func (p *Policy) GetDayInfo(date time.Time) DayInfo {
	info := DayInfo{Date: date}

	if holiday, ok := p.officialHoliday(date); ok {
		info.Type = DayTypeOfficialHoliday
		info.Note = holiday.Description
		return info
	}
	if p.IsOverride(date) {
		info.Type = DayTypeOverrideHoliday
		return info
	}

	switch date.Weekday() {
	case time.Saturday:
		info.Type = DayTypeSaturday
	case time.Sunday:
		info.Type = DayTypeSunday
	default:
		info.Type = DayTypeWorkday
		info.IsWorkday = true
	}
	return info
}

// GetMonthInfo returns calendar info for the entire month
func (p *Policy) GetMonthInfo(year int, month time.Month) *MonthInfo {
	monthInfo := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, dateutil.DaysInMonth(year, month)),
	}

	for _, date := range dateutil.MonthDates(year, month) {
		day := p.GetDayInfo(date)
		monthInfo.Days = append(monthInfo.Days, day)

		switch {
		case day.IsWorkday:
			monthInfo.WorkDays++
		case dateutil.IsWeekend(date):
			monthInfo.Weekends++
		default:
			monthInfo.Holidays++
		}
	}

	return monthInfo
}

// OfficialHolidays returns the official table for the year, sorted by date
func (p *Policy) OfficialHolidays(year int) []Holiday {
	table := p.officialYear(year)
	holidays := make([]Holiday, 0, len(table))
	for _, h := range table {
		holidays = append(holidays, h)
	}
	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date < holidays[j].Date
	})
	return holidays
}

func (p *Policy) officialHoliday(date time.Time) (Holiday, bool) {
	h, ok := p.officialYear(date.Year())[dateutil.FormatDate(date)]
	return h, ok
}

// officialYear resolves a year's table once; a source failure leaves the
// year without official holidays.
func (p *Policy) officialYear(year int) map[string]Holiday {
	if table, ok := p.years[year]; ok {
		return table
	}

	table := make(map[string]Holiday)
	if p.official != nil {
		holidays, err := p.official.Holidays(year)
		if err != nil {
			p.logger.Warn("No official holidays for year",
				zap.Int("year", year),
				zap.Error(err))
		}
		for _, h := range holidays {
			table[h.Date] = h
		}
	}

	p.years[year] = table
	return table
}
