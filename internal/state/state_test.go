package state

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/username/overtime-tracker/internal/employee"
	"github.com/username/overtime-tracker/internal/overtime"
	"github.com/username/overtime-tracker/internal/worklog"
	"go.uber.org/zap"
)

func newBackends(t *testing.T) map[string]Backend {
	t.Helper()
	logger := zap.NewNop()
	dir := t.TempDir()

	sqlite, err := NewSQLiteBackend(context.Background(), filepath.Join(dir, "state.db"), logger)
	if err != nil {
		t.Fatalf("NewSQLiteBackend() error = %v", err)
	}

	return map[string]Backend{
		"file":   NewFileBackend(filepath.Join(dir, "nested", "state.json"), logger),
		"sqlite": sqlite,
	}
}

func sampleState() *State {
	return &State{
		Employees: []employee.Employee{
			{ID: "e1", Name: "Ayşe Yılmaz", EmployeeNumber: "1001"},
			{ID: "e2", Name: "Mehmet Demir"},
		},
		WorkLogs: worklog.Logs{
			"e1": {
				"2025-03-10": {DayHours: 8, EveningHours: 2},
				"2025-03-16": {DayHours: 3, Justification: "inventory"},
			},
		},
		Holidays: []string{"2025-03-14"},
		Rates:    overtime.Rates{DayOvertimeRate: 150, EveningOvertimeRate: 200},
	}
}

func TestKVStore_RoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, backend := range newBackends(t) {
		t.Run(name, func(t *testing.T) {
			store := NewKVStore(backend, zap.NewNop())
			defer store.Close()

			empty, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("Load() on fresh backend error = %v", err)
			}
			if !reflect.DeepEqual(empty, New()) {
				t.Errorf("fresh Load() = %+v, want defaults", empty)
			}

			want := sampleState()
			if err := store.Save(ctx, want); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err := store.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Load() = %+v, want %+v", got, want)
			}

			// A second save overwrites rather than appends
			want.Holidays = []string{}
			want.Rates.DayOvertimeRate = 0
			if err := store.Save(ctx, want); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			got, err = store.Load(ctx)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(got.Holidays) != 0 || got.Rates.DayOvertimeRate != 0 {
				t.Errorf("second Load() = %+v", got)
			}
		})
	}
}

func TestKVStore_LegacyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	legacy := `{
  "employees": [{"id":"e1","name":"Ayşe Yılmaz"}],
  "workLogs": {"e1": {"2025-03-10": 9, "2025-03-11": {"day": 4, "evening": 1}, "2025-03-12": "x"}},
  "holidays": ["2025-03-20", "2025-03-14", "2025-03-20"]
}`
	if err := os.WriteFile(path, []byte(legacy), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewKVStore(NewFileBackend(path, zap.NewNop()), zap.NewNop())
	got, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	wantLogs := map[string]worklog.DailyLog{
		"2025-03-10": {DayHours: 9},
		"2025-03-11": {DayHours: 4, EveningHours: 1},
	}
	if !reflect.DeepEqual(got.WorkLogs["e1"], wantLogs) {
		t.Errorf("migrated logs = %+v, want %+v", got.WorkLogs["e1"], wantLogs)
	}
	if !reflect.DeepEqual(got.Holidays, []string{"2025-03-14", "2025-03-20"}) {
		t.Errorf("holidays = %v, want sorted and unique", got.Holidays)
	}
	if got.Rates != overtime.DefaultRates() {
		t.Errorf("rates = %+v, want defaults for absent keys", got.Rates)
	}
}

func TestFileBackend_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := NewFileBackend(path, zap.NewNop()).Read(context.Background())
	if err == nil {
		t.Fatal("Read() expected error for corrupt JSON")
	}
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Errorf("backup file missing: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("corrupt file still in place")
	}
}

func TestNormalizeHolidays(t *testing.T) {
	got := NormalizeHolidays([]string{"2025-05-02", "2025-01-02", "2025-05-02"})
	want := []string{"2025-01-02", "2025-05-02"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeHolidays() = %v, want %v", got, want)
	}
	if got := NormalizeHolidays(nil); got == nil || len(got) != 0 {
		t.Errorf("NormalizeHolidays(nil) = %#v, want empty slice", got)
	}
}

func TestKVStore_DefaultRates(t *testing.T) {
	backend := NewFileBackend(filepath.Join(t.TempDir(), "state.json"), zap.NewNop())
	rates := overtime.Rates{DayOvertimeRate: 90, EveningOvertimeRate: 95}

	got, err := NewKVStore(backend, zap.NewNop()).WithDefaultRates(rates).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Rates != rates {
		t.Errorf("rates = %+v, want configured defaults %+v", got.Rates, rates)
	}
}
