package overtime

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/username/overtime-tracker/internal/worklog"
	"github.com/username/overtime-tracker/pkg/dateutil"
	"go.uber.org/zap"
)

// DailyQuotaHours is the weekday day-shift quota per working day
const DailyQuotaHours = 4

// Rates holds the overtime pay per hour
type Rates struct {
	DayOvertimeRate     float64 `json:"dayRate"`
	EveningOvertimeRate float64 `json:"eveningRate"`
}

// DefaultRates returns the rates used until the operator sets their own
func DefaultRates() Rates {
	return Rates{DayOvertimeRate: 100, EveningOvertimeRate: 120}
}

// ErrNegativeRate is returned for a rate below zero
var ErrNegativeRate = errors.New("rate must not be negative")

// Validate checks that both rates are usable
func (r Rates) Validate() error {
	if r.DayOvertimeRate < 0 || math.IsNaN(r.DayOvertimeRate) {
		return fmt.Errorf("day rate %v: %w", r.DayOvertimeRate, ErrNegativeRate)
	}
	if r.EveningOvertimeRate < 0 || math.IsNaN(r.EveningOvertimeRate) {
		return fmt.Errorf("evening rate %v: %w", r.EveningOvertimeRate, ErrNegativeRate)
	}
	return nil
}

// LogSource provides the daily logs to compute over
type LogSource interface {
	Get(employeeID, date string) worklog.DailyLog
}

// WorkingDays counts the working days of a month
type WorkingDays interface {
	WorkingDaysInMonth(year int, month time.Month) int
}

// Result is the overtime breakdown of one employee for one month
// Values are unrounded.
type Result struct {
	EmployeeID string
	Year       int
	Month      time.Month

	WeekdayDayHours      float64
	WeekdayEveningHours  float64
	SaturdayDayHours     float64
	SaturdayEveningHours float64
	SundayDayHours       float64
	SundayEveningHours   float64

	WorkingDays          int
	ExpectedHours        float64
	ExtraWeekdayDayHours float64
	TotalOvertimeHours   float64
	TotalPayment         float64
}

// PremiumHours returns the hours paid at the evening rate: weekday evenings and
// every weekend hour regardless of shift
func (r Result) PremiumHours() float64 {
	return r.WeekdayEveningHours +
		r.SaturdayDayHours + r.SaturdayEveningHours +
		r.SundayDayHours + r.SundayEveningHours
}

// Calculator turns daily logs into monthly overtime results
type Calculator struct {
	calendar WorkingDays
	rates    Rates
	logger   *zap.Logger
}

// NewCalculator creates a new Calculator
func NewCalculator(cal WorkingDays, rates Rates, logger *zap.Logger) *Calculator {
	return &Calculator{
		calendar: cal,
		rates:    rates,
		logger:   logger,
	}
}

// Rates returns the rates in use
func (c *Calculator) Rates() Rates {
	return c.rates
}

// Compute sums the employee's logs for the month into weekday, Saturday and
// Sunday buckets and derives overtime hours and payment.
func (c *Calculator) Compute(logs LogSource, employeeID string, year int, month time.Month) Result {
	result := Result{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
	}

	// 1. Bucket hours by weekday
	for _, date := range dateutil.MonthDates(year, month) {
		log := logs.Get(employeeID, dateutil.FormatDate(date))

		switch date.Weekday() {
		case time.Sunday:
			result.SundayDayHours += log.DayHours
			result.SundayEveningHours += log.EveningHours
		case time.Saturday:
			result.SaturdayDayHours += log.DayHours
			result.SaturdayEveningHours += log.EveningHours
		default:
			result.WeekdayDayHours += log.DayHours
			result.WeekdayEveningHours += log.EveningHours
		}
	}

	// 2. Only weekday day hours above the monthly quota count as overtime
	result.WorkingDays = c.calendar.WorkingDaysInMonth(year, month)
	result.ExpectedHours = float64(result.WorkingDays * DailyQuotaHours)
	result.ExtraWeekdayDayHours = math.Max(0, result.WeekdayDayHours-result.ExpectedHours)

	// 3. Totals
	premium := result.PremiumHours()
	result.TotalOvertimeHours = result.ExtraWeekdayDayHours + premium
	result.TotalPayment = result.ExtraWeekdayDayHours*c.rates.DayOvertimeRate +
		premium*c.rates.EveningOvertimeRate

	c.logger.Debug("Overtime computed",
		zap.String("employee_id", employeeID),
		zap.String("month", dateutil.FormatMonth(year, month)),
		zap.Int("working_days", result.WorkingDays),
		zap.Float64("overtime_hours", result.TotalOvertimeHours),
		zap.Float64("payment", result.TotalPayment))

	return result
}
