package overtime

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/username/overtime-tracker/internal/calendar"
	"github.com/username/overtime-tracker/internal/worklog"
	"go.uber.org/zap"
)

type fixedWorkingDays int

func (f fixedWorkingDays) WorkingDaysInMonth(int, time.Month) int { return int(f) }

func newStore(t *testing.T, logs map[string]worklog.DailyLog) *worklog.Store {
	t.Helper()
	s := worklog.NewStore(nil)
	for date, log := range logs {
		if err := s.Set("e1", date, log); err != nil {
			t.Fatalf("Set(%s) error = %v", date, err)
		}
	}
	return s
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculator_ConcreteScenario(t *testing.T) {
	// March 2025: 21 weekdays, 31st is an official holiday => 20 working days
	policy := calendar.NewPolicy(calendar.DefaultHolidays(), nil, zap.NewNop())
	calc := NewCalculator(policy, DefaultRates(), zap.NewNop())

	logs := map[string]worklog.DailyLog{
		"2025-03-15": {EveningHours: 5}, // Saturday
	}
	for _, d := range []string{
		"2025-03-03", "2025-03-04", "2025-03-05", "2025-03-06", "2025-03-07",
		"2025-03-10", "2025-03-11", "2025-03-12", "2025-03-13",
	} {
		logs[d] = worklog.DailyLog{DayHours: 10}
	}
	s := newStore(t, logs)

	got := calc.Compute(s, "e1", 2025, time.March)

	if got.WorkingDays != 20 {
		t.Errorf("WorkingDays = %d, want 20", got.WorkingDays)
	}
	if got.ExpectedHours != 80 {
		t.Errorf("ExpectedHours = %v, want 80", got.ExpectedHours)
	}
	if got.WeekdayDayHours != 90 {
		t.Errorf("WeekdayDayHours = %v, want 90", got.WeekdayDayHours)
	}
	if got.ExtraWeekdayDayHours != 10 {
		t.Errorf("ExtraWeekdayDayHours = %v, want 10", got.ExtraWeekdayDayHours)
	}
	if got.SaturdayEveningHours != 5 {
		t.Errorf("SaturdayEveningHours = %v, want 5", got.SaturdayEveningHours)
	}
	if got.TotalOvertimeHours != 15 {
		t.Errorf("TotalOvertimeHours = %v, want 15", got.TotalOvertimeHours)
	}
	if got.TotalPayment != 1600 {
		t.Errorf("TotalPayment = %v, want 1600", got.TotalPayment)
	}
}

func TestCalculator_Buckets(t *testing.T) {
	tests := []struct {
		name        string
		workingDays int
		logs        map[string]worklog.DailyLog
		rates       Rates
		want        Result
	}{
		{
			name:        "no logs",
			workingDays: 20,
			rates:       DefaultRates(),
			want:        Result{WorkingDays: 20, ExpectedHours: 80},
		},
		{
			name:        "under quota is never negative",
			workingDays: 20,
			logs:        map[string]worklog.DailyLog{"2025-03-10": {DayHours: 30}},
			rates:       DefaultRates(),
			want:        Result{WorkingDays: 20, ExpectedHours: 80, WeekdayDayHours: 30},
		},
		{
			name:        "weekday evening is overtime without quota offset",
			workingDays: 20,
			logs:        map[string]worklog.DailyLog{"2025-03-10": {EveningHours: 3}},
			rates:       Rates{DayOvertimeRate: 100, EveningOvertimeRate: 120},
			want: Result{
				WorkingDays: 20, ExpectedHours: 80, WeekdayEveningHours: 3,
				TotalOvertimeHours: 3, TotalPayment: 360,
			},
		},
		{
			name:        "weekend day shift paid at evening rate",
			workingDays: 20,
			logs: map[string]worklog.DailyLog{
				"2025-03-15": {DayHours: 4, EveningHours: 1},
				"2025-03-16": {DayHours: 2, EveningHours: 0.5, Justification: "audit"},
			},
			rates: Rates{DayOvertimeRate: 10, EveningOvertimeRate: 20},
			want: Result{
				WorkingDays: 20, ExpectedHours: 80,
				SaturdayDayHours: 4, SaturdayEveningHours: 1,
				SundayDayHours: 2, SundayEveningHours: 0.5,
				TotalOvertimeHours: 7.5, TotalPayment: 150,
			},
		},
		{
			name:        "hours on a weekday holiday stay in the weekday bucket",
			workingDays: 0,
			logs:        map[string]worklog.DailyLog{"2025-03-31": {DayHours: 6}},
			rates:       Rates{DayOvertimeRate: 100, EveningOvertimeRate: 120},
			want: Result{
				WeekdayDayHours: 6, ExtraWeekdayDayHours: 6,
				TotalOvertimeHours: 6, TotalPayment: 600,
			},
		},
		{
			name:        "logs outside the month are ignored",
			workingDays: 20,
			logs:        map[string]worklog.DailyLog{"2025-04-05": {DayHours: 9}},
			rates:       DefaultRates(),
			want:        Result{WorkingDays: 20, ExpectedHours: 80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator(fixedWorkingDays(tt.workingDays), tt.rates, zap.NewNop())
			s := newStore(t, tt.logs)

			got := calc.Compute(s, "e1", 2025, time.March)

			tt.want.EmployeeID = "e1"
			tt.want.Year = 2025
			tt.want.Month = time.March
			if got != tt.want {
				t.Errorf("Compute() =\n %+v\nwant\n %+v", got, tt.want)
			}
		})
	}
}

func TestCalculator_QuotaProperty(t *testing.T) {
	for wd := 0; wd <= 23; wd++ {
		calc := NewCalculator(fixedWorkingDays(wd), DefaultRates(), zap.NewNop())
		got := calc.Compute(worklog.NewStore(nil), "e1", 2025, time.May)

		if got.ExpectedHours != float64(4*wd) {
			t.Errorf("workingDays=%d: ExpectedHours = %v, want %d", wd, got.ExpectedHours, 4*wd)
		}
		if got.ExtraWeekdayDayHours < 0 {
			t.Errorf("workingDays=%d: ExtraWeekdayDayHours negative", wd)
		}
	}
}

func TestCalculator_WeekendPremium(t *testing.T) {
	rates := Rates{DayOvertimeRate: 7, EveningOvertimeRate: 11}
	calc := NewCalculator(fixedWorkingDays(20), rates, zap.NewNop())
	s := newStore(t, map[string]worklog.DailyLog{
		"2025-03-01": {DayHours: 1.25, EveningHours: 2},
		"2025-03-08": {DayHours: 3},
		"2025-03-09": {EveningHours: 4.5, Justification: "night delivery"},
		"2025-03-30": {DayHours: 0.75, Justification: "stock count"},
	})

	got := calc.Compute(s, "e1", 2025, time.March)

	weekend := 1.25 + 2 + 3 + 4.5 + 0.75
	if !almostEqual(got.TotalOvertimeHours, weekend) {
		t.Errorf("TotalOvertimeHours = %v, want %v", got.TotalOvertimeHours, weekend)
	}
	if !almostEqual(got.TotalPayment, weekend*rates.EveningOvertimeRate) {
		t.Errorf("TotalPayment = %v, want %v", got.TotalPayment, weekend*rates.EveningOvertimeRate)
	}
}

func TestRates_Validate(t *testing.T) {
	if err := DefaultRates().Validate(); err != nil {
		t.Errorf("DefaultRates().Validate() = %v", err)
	}
	if err := (Rates{DayOvertimeRate: -1}).Validate(); !errors.Is(err, ErrNegativeRate) {
		t.Errorf("negative day rate error = %v", err)
	}
	if err := (Rates{EveningOvertimeRate: math.NaN()}).Validate(); !errors.Is(err, ErrNegativeRate) {
		t.Errorf("NaN evening rate error = %v", err)
	}
}
