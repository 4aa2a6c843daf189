package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/username/overtime-tracker/internal/employee"
	"github.com/username/overtime-tracker/internal/overtime"
	"github.com/username/overtime-tracker/internal/worklog"
	"go.uber.org/zap"
)

// Persisted keys
const (
	KeyEmployees   = "employees"
	KeyWorkLogs    = "workLogs"
	KeyHolidays    = "holidays"
	KeyDayRate     = "dayRate"
	KeyEveningRate = "eveningRate"
)

// State is everything the application persists
type State struct {
	Employees []employee.Employee
	WorkLogs  worklog.Logs
	Holidays  []string
	Rates     overtime.Rates
}

// New returns an empty state with default rates
func New() *State {
	return &State{
		Employees: []employee.Employee{},
		WorkLogs:  make(worklog.Logs),
		Holidays:  []string{},
		Rates:     overtime.DefaultRates(),
	}
}

// Store loads and saves the whole state
type Store interface {
	Load(ctx context.Context) (*State, error)
	Save(ctx context.Context, s *State) error
	Close() error
}

// Backend is a string-keyed store of JSON values
type Backend interface {
	// Read returns every stored key; a fresh backend returns an empty map
	Read(ctx context.Context) (map[string][]byte, error)
	// Write replaces the stored keys with values
	Write(ctx context.Context, values map[string][]byte) error
	Close() error
}

// KVStore maps State onto the five persisted keys of a Backend
type KVStore struct {
	backend  Backend
	defaults overtime.Rates
	logger   *zap.Logger
}

// NewKVStore creates a new KVStore
func NewKVStore(backend Backend, logger *zap.Logger) *KVStore {
	return &KVStore{
		backend:  backend,
		defaults: overtime.DefaultRates(),
		logger:   logger,
	}
}

// WithDefaultRates sets the rates used when the backend stores none
func (s *KVStore) WithDefaultRates(rates overtime.Rates) *KVStore {
	s.defaults = rates
	return s
}

// Load reads the state. Absent keys take their defaults and the work logs
// pass through the legacy migration before decoding.
func (s *KVStore) Load(ctx context.Context) (*State, error) {
	values, err := s.backend.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read state: %w", err)
	}

	st := New()
	st.Rates = s.defaults

	if raw, ok := values[KeyEmployees]; ok {
		if err := json.Unmarshal(raw, &st.Employees); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", KeyEmployees, err)
		}
		if st.Employees == nil {
			st.Employees = []employee.Employee{}
		}
	}

	if raw, ok := values[KeyWorkLogs]; ok {
		logs, err := worklog.DecodeLogs(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", KeyWorkLogs, err)
		}
		st.WorkLogs = logs
	}

	if raw, ok := values[KeyHolidays]; ok {
		if err := json.Unmarshal(raw, &st.Holidays); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", KeyHolidays, err)
		}
		st.Holidays = NormalizeHolidays(st.Holidays)
	}

	if raw, ok := values[KeyDayRate]; ok {
		if err := json.Unmarshal(raw, &st.Rates.DayOvertimeRate); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", KeyDayRate, err)
		}
	}
	if raw, ok := values[KeyEveningRate]; ok {
		if err := json.Unmarshal(raw, &st.Rates.EveningOvertimeRate); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", KeyEveningRate, err)
		}
	}

	s.logger.Info("State loaded",
		zap.Int("employees", len(st.Employees)),
		zap.Int("employees_with_logs", len(st.WorkLogs)),
		zap.Int("holidays", len(st.Holidays)))

	return st, nil
}

// Save writes every key of the state
func (s *KVStore) Save(ctx context.Context, st *State) error {
	values := make(map[string][]byte, 5)
	for key, v := range map[string]interface{}{
		KeyEmployees:   st.Employees,
		KeyWorkLogs:    st.WorkLogs,
		KeyHolidays:    st.Holidays,
		KeyDayRate:     st.Rates.DayOvertimeRate,
		KeyEveningRate: st.Rates.EveningOvertimeRate,
	} {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", key, err)
		}
		values[key] = data
	}

	if err := s.backend.Write(ctx, values); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}

	s.logger.Debug("State saved",
		zap.Int("employees", len(st.Employees)),
		zap.Int("holidays", len(st.Holidays)))

	return nil
}

// Close releases the backend
func (s *KVStore) Close() error {
	return s.backend.Close()
}

// NormalizeHolidays returns the dates sorted and without duplicates
func NormalizeHolidays(dates []string) []string {
	seen := make(map[string]struct{}, len(dates))
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
