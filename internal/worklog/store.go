package worklog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/username/overtime-tracker/pkg/dateutil"
)

var (
	// ErrJustificationRequired is returned when Sunday hours arrive without a reason
	ErrJustificationRequired = errors.New("sunday hours require a justification")
	// ErrNegativeHours is returned for a log with negative hours
	ErrNegativeHours = errors.New("hours must not be negative")
)

// Store is the in-memory set of daily logs
// It is not safe for concurrent use; one controller owns it.
type Store struct {
	logs Logs
}

// NewStore creates a Store over existing logs (nil means empty)
func NewStore(logs Logs) *Store {
	if logs == nil {
		logs = make(Logs)
	}
	return &Store{logs: logs}
}

// Get returns the log for the employee and date, or a zero log
func (s *Store) Get(employeeID, date string) DailyLog {
	return s.logs[employeeID][date]
}

// Set replaces the log for the employee and date
func (s *Store) Set(employeeID, date string, log DailyLog) error {
	day, err := dateutil.ParseDate(date)
	if err != nil {
		return fmt.Errorf("set log: %w", err)
	}
	if log.DayHours < 0 || log.EveningHours < 0 {
		return fmt.Errorf("set log %s/%s: %w", employeeID, date, ErrNegativeHours)
	}
	log.Justification = strings.TrimSpace(log.Justification)
	if RequiresJustification(day, log) {
		return fmt.Errorf("set log %s/%s: %w", employeeID, date, ErrJustificationRequired)
	}

	key := dateutil.FormatDate(day)
	if s.logs[employeeID] == nil {
		s.logs[employeeID] = make(map[string]DailyLog)
	}
	s.logs[employeeID][key] = log
	return nil
}

// Merge returns the candidate log with only the given shift overwritten
func (s *Store) Merge(employeeID, date string, shift Shift, hours float64) DailyLog {
	return s.Get(employeeID, date).WithShift(shift, hours)
}

// RemoveEmployee deletes every log of the employee
func (s *Store) RemoveEmployee(employeeID string) {
	delete(s.logs, employeeID)
}

// Logs returns the underlying map for persistence
func (s *Store) Logs() Logs {
	return s.logs
}

// Entry is a dated log of one employee
type Entry struct {
	Date string
	DailyLog
}

// Month returns the employee's stored logs within the month, ordered by date
func (s *Store) Month(employeeID string, year int, month time.Month) []Entry {
	prefix := dateutil.FormatMonth(year, month) + "-"

	var entries []Entry
	for date, log := range s.logs[employeeID] {
		if strings.HasPrefix(date, prefix) {
			entries = append(entries, Entry{Date: date, DailyLog: log})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
	return entries
}

// RequiresJustification reports whether a log on the date violates the
// Sunday rule: positive hours on a Sunday need a non-empty reason.
func RequiresJustification(date time.Time, log DailyLog) bool {
	return date.Weekday() == time.Sunday && log.HasHours() && strings.TrimSpace(log.Justification) == ""
}
