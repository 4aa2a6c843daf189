package calendar

import "fmt"

// BuiltinHolidays is an in-memory holiday table keyed by year
type BuiltinHolidays map[int][]Holiday

// DefaultHolidays returns the bundled Turkish official holiday table
func DefaultHolidays() BuiltinHolidays {
	return BuiltinHolidays{
		2025: {
			{Date: "2025-01-01", Description: "Yılbaşı"},
			{Date: "2025-03-31", Description: "Ramazan Bayramı"},
			{Date: "2025-04-01", Description: "Ramazan Bayramı"},
			{Date: "2025-04-02", Description: "Ramazan Bayramı"},
			{Date: "2025-04-23", Description: "Ulusal Egemenlik"},
			{Date: "2025-05-01", Description: "Emek ve Dayanışma"},
			{Date: "2025-05-19", Description: "Gençlik ve Spor"},
			{Date: "2025-06-27", Description: "Kurban Bayramı"},
			{Date: "2025-06-28", Description: "Kurban Bayramı"},
			{Date: "2025-06-29", Description: "Kurban Bayramı"},
			{Date: "2025-06-30", Description: "Kurban Bayramı"},
			{Date: "2025-08-30", Description: "Zafer Bayramı"},
			{Date: "2025-09-05", Description: "Kurban Bayramı"},
			{Date: "2025-09-06", Description: "Kurban Bayramı"},
			{Date: "2025-09-07", Description: "Kurban Bayramı"},
			{Date: "2025-09-08", Description: "Kurban Bayramı"},
			{Date: "2025-10-29", Description: "Cumhuriyet Bayramı"},
			{Date: "2025-12-02", Description: "Ramazan Bayramı"},
			{Date: "2025-12-03", Description: "Ramazan Bayramı"},
			{Date: "2025-12-04", Description: "Ramazan Bayramı"},
			{Date: "2025-12-05", Description: "Ramazan Bayramı"},
		},
	}
}

// Holidays returns the table for the year
func (b BuiltinHolidays) Holidays(year int) ([]Holiday, error) {
	holidays, ok := b[year]
	if !ok {
		return nil, fmt.Errorf("builtin table: %w %d", ErrYearNotCovered, year)
	}
	return holidays, nil
}
