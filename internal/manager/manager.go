package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/username/overtime-tracker/internal/calendar"
	"github.com/username/overtime-tracker/internal/employee"
	"github.com/username/overtime-tracker/internal/importer"
	"github.com/username/overtime-tracker/internal/overtime"
	"github.com/username/overtime-tracker/internal/report"
	"github.com/username/overtime-tracker/internal/state"
	"github.com/username/overtime-tracker/internal/worklog"
	"github.com/username/overtime-tracker/pkg/dateutil"
	"go.uber.org/zap"
)

var (
	// ErrEmployeeNotFound is returned for an unknown employee reference
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrEmptyName is returned when adding an employee without a name
	ErrEmptyName = errors.New("employee name is required")
)

// Manager owns the application state and is the only writer of it.
// Every mutation is persisted before it returns.
type Manager struct {
	store      state.Store
	state      *state.State
	logs       *worklog.Store
	gate       *worklog.Gate
	policy     *calendar.Policy
	normalizer *importer.Normalizer
	conv       importer.Conventions
	logger     *zap.Logger
}

// New loads the state from the store and wires the components over it
func New(ctx context.Context, store state.Store, official calendar.HolidaySource,
	conv importer.Conventions, logger *zap.Logger) (*Manager, error) {
	st, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}

	logs := worklog.NewStore(st.WorkLogs)
	st.WorkLogs = logs.Logs()

	return &Manager{
		store:      store,
		state:      st,
		logs:       logs,
		gate:       worklog.NewGate(logs),
		policy:     calendar.NewPolicy(official, st.Holidays, logger),
		normalizer: importer.NewNormalizer(conv, logger),
		conv:       conv,
		logger:     logger,
	}, nil
}

// Close releases the store
func (m *Manager) Close() error {
	return m.store.Close()
}

func (m *Manager) save(ctx context.Context) error {
	if err := m.store.Save(ctx, m.state); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Employees returns the registered employees in insertion order
func (m *Manager) Employees() []employee.Employee {
	return m.state.Employees
}

// FindEmployee resolves an ID, an employee number or an exact name
func (m *Manager) FindEmployee(ref string) (employee.Employee, error) {
	for _, e := range m.state.Employees {
		if e.ID == ref {
			return e, nil
		}
	}
	for _, e := range m.state.Employees {
		if e.EmployeeNumber != "" && e.EmployeeNumber == ref {
			return e, nil
		}
	}
	if e, ok := employee.FindByName(m.state.Employees, ref); ok {
		return e, nil
	}
	return employee.Employee{}, fmt.Errorf("%q: %w", ref, ErrEmployeeNotFound)
}

// AddEmployee registers a single employee
func (m *Manager) AddEmployee(ctx context.Context, name, number string) (employee.Employee, error) {
	if strings.TrimSpace(name) == "" {
		return employee.Employee{}, ErrEmptyName
	}

	emp := employee.New(name, number)
	m.state.Employees = append(m.state.Employees, emp)
	if err := m.save(ctx); err != nil {
		return employee.Employee{}, err
	}

	m.logger.Info("Employee added",
		zap.String("id", emp.ID),
		zap.String("name", emp.Name))
	return emp, nil
}

// AddEmployeesBulk registers one employee per "name, number" line
func (m *Manager) AddEmployeesBulk(ctx context.Context, text string) ([]employee.Employee, error) {
	return m.addEmployees(ctx, employee.ParseBulk(text), "bulk")
}

// ImportEmployees registers the employees listed in a spreadsheet
func (m *Manager) ImportEmployees(ctx context.Context, r io.Reader) ([]employee.Employee, error) {
	wb, err := importer.DecodeWorkbook(r)
	if err != nil {
		return nil, err
	}
	return m.addEmployees(ctx, importer.ParseEmployees(wb), "spreadsheet")
}

func (m *Manager) addEmployees(ctx context.Context, added []employee.Employee, source string) ([]employee.Employee, error) {
	if len(added) == 0 {
		return nil, nil
	}

	m.state.Employees = append(m.state.Employees, added...)
	if err := m.save(ctx); err != nil {
		return nil, err
	}

	m.logger.Info("Employees added",
		zap.String("source", source),
		zap.Int("count", len(added)))
	return added, nil
}

// RemoveEmployee deletes the employee and every log of theirs
func (m *Manager) RemoveEmployee(ctx context.Context, id string) error {
	kept, ok := employee.Remove(m.state.Employees, id)
	if !ok {
		return fmt.Errorf("%q: %w", id, ErrEmployeeNotFound)
	}

	m.state.Employees = kept
	m.logs.RemoveEmployee(id)
	if err := m.save(ctx); err != nil {
		return err
	}

	m.logger.Info("Employee removed", zap.String("id", id))
	return nil
}

// Holidays returns the override dates, sorted
func (m *Manager) Holidays() []string {
	return m.state.Holidays
}

// AddHoliday marks a date as non-working
func (m *Manager) AddHoliday(ctx context.Context, date string) error {
	day, err := dateutil.ParseDate(date)
	if err != nil {
		return err
	}

	m.state.Holidays = state.NormalizeHolidays(append(m.state.Holidays, dateutil.FormatDate(day)))
	m.policy.SetOverrides(m.state.Holidays)
	if err := m.save(ctx); err != nil {
		return err
	}

	m.logger.Info("Holiday added", zap.String("date", dateutil.FormatDate(day)))
	return nil
}

// RemoveHoliday removes an override date. Removing an absent date is not an error.
func (m *Manager) RemoveHoliday(ctx context.Context, date string) error {
	day, err := dateutil.ParseDate(date)
	if err != nil {
		return err
	}
	key := dateutil.FormatDate(day)

	kept := make([]string, 0, len(m.state.Holidays))
	for _, h := range m.state.Holidays {
		if h != key {
			kept = append(kept, h)
		}
	}
	m.state.Holidays = kept
	m.policy.SetOverrides(kept)
	if err := m.save(ctx); err != nil {
		return err
	}

	m.logger.Info("Holiday removed", zap.String("date", key))
	return nil
}

// Rates returns the overtime rates in use
func (m *Manager) Rates() overtime.Rates {
	return m.state.Rates
}

// SetRates replaces both overtime rates
func (m *Manager) SetRates(ctx context.Context, rates overtime.Rates) error {
	if err := rates.Validate(); err != nil {
		return err
	}

	m.state.Rates = rates
	if err := m.save(ctx); err != nil {
		return err
	}

	m.logger.Info("Rates updated",
		zap.Float64("day_rate", rates.DayOvertimeRate),
		zap.Float64("evening_rate", rates.EveningOvertimeRate))
	return nil
}

// Log returns the stored log of one employee and date
func (m *Manager) Log(employeeID, date string) worklog.DailyLog {
	return m.logs.Get(employeeID, date)
}

// MonthLogs returns the employee's logs within the month
func (m *Manager) MonthLogs(employeeID string, year int, month time.Month) []worklog.Entry {
	return m.logs.Month(employeeID, year, month)
}

// ProposeLog edits one shift's hours through the justification gate. When the
// edit is held, nothing is persisted until SubmitJustification.
func (m *Manager) ProposeLog(ctx context.Context, employeeRef, date string, shift worklog.Shift, rawValue string) (worklog.Outcome, error) {
	emp, err := m.FindEmployee(employeeRef)
	if err != nil {
		return worklog.Applied, err
	}

	outcome, err := m.gate.Propose(emp.ID, date, shift, rawValue)
	if err != nil {
		return outcome, err
	}

	if outcome == worklog.NeedsJustification {
		m.logger.Info("Sunday edit awaiting justification",
			zap.String("employee_id", emp.ID),
			zap.String("date", date),
			zap.String("shift", string(shift)))
		return outcome, nil
	}

	return outcome, m.save(ctx)
}

// SubmitJustification applies the held edit with the reason and persists it
func (m *Manager) SubmitJustification(ctx context.Context, reason string) error {
	p, err := m.gate.Submit(reason)
	if err != nil {
		return err
	}

	m.logger.Info("Sunday edit justified",
		zap.String("employee_id", p.EmployeeID),
		zap.String("date", p.Date))
	return m.save(ctx)
}

// CancelJustification discards the held edit
func (m *Manager) CancelJustification() (worklog.PendingWrite, bool) {
	p, ok := m.gate.Cancel()
	if ok {
		m.logger.Info("Sunday edit cancelled",
			zap.String("employee_id", p.EmployeeID),
			zap.String("date", p.Date))
	}
	return p, ok
}

// PendingJustification returns the held edit, if any
func (m *Manager) PendingJustification() (worklog.PendingWrite, bool) {
	return m.gate.Pending()
}

// ImportSummary describes one spreadsheet import
type ImportSummary struct {
	Layout  importer.Layout
	Tuples  int
	Written int
}

// ImportWorkLogs reads a spreadsheet of hours and merges it into the logs
func (m *Manager) ImportWorkLogs(ctx context.Context, r io.Reader) (ImportSummary, error) {
	wb, err := importer.DecodeWorkbook(r)
	if err != nil {
		return ImportSummary{}, err
	}

	tuples, layout := m.normalizer.Normalize(wb, m.state.Employees)
	written := m.normalizer.Apply(m.logs, tuples)
	if err := m.save(ctx); err != nil {
		return ImportSummary{}, err
	}

	m.logger.Info("Work logs imported",
		zap.String("layout", string(layout)),
		zap.Int("tuples", len(tuples)),
		zap.Int("written", written))

	return ImportSummary{Layout: layout, Tuples: len(tuples), Written: written}, nil
}

func (m *Manager) calculator() *overtime.Calculator {
	return overtime.NewCalculator(m.policy, m.state.Rates, m.logger)
}

// Compute returns the overtime result of one employee for the month
func (m *Manager) Compute(employeeID string, year int, month time.Month) overtime.Result {
	return m.calculator().Compute(m.logs, employeeID, year, month)
}

// Report computes every employee for the month into report records
func (m *Manager) Report(shape report.Shape, year int, month time.Month) *report.Report {
	calc := m.calculator()
	return report.Build(shape, dateutil.FormatMonth(year, month), m.state.Employees,
		func(employeeID string) overtime.Result {
			return calc.Compute(m.logs, employeeID, year, month)
		})
}

// Template writes an empty hours workbook for the month
func (m *Manager) Template(w io.Writer, layout importer.Layout, year int, month time.Month) error {
	return report.WriteTemplate(w, layout, m.conv, m.state.Employees, year, month)
}

// MonthInfo returns the calendar classification of every day of the month
func (m *Manager) MonthInfo(year int, month time.Month) *calendar.MonthInfo {
	return m.policy.GetMonthInfo(year, month)
}
