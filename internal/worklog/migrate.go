package worklog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MigrateLegacy rewrites the persisted workLogs document so that every entry is
// structured. Early versions stored a bare number of hours per date; those become
// {"day":n,"evening":0}. Structured entries pass through, so applying it twice
// gives the same bytes as applying it once. Entries that are neither numbers nor
// objects are dropped (read as zero).
func MigrateLegacy(raw []byte) ([]byte, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []byte("{}"), nil
	}

	var doc map[string]map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse work logs: %w", err)
	}

	for employeeID, days := range doc {
		if days == nil {
			doc[employeeID] = map[string]json.RawMessage{}
			continue
		}
		for date, entry := range days {
			migrated, ok := migrateEntry(entry)
			if !ok {
				delete(days, date)
				continue
			}
			days[date] = migrated
		}
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode work logs: %w", err)
	}
	return out, nil
}

func migrateEntry(entry json.RawMessage) (json.RawMessage, bool) {
	entry = bytes.TrimSpace(entry)
	if len(entry) > 0 && entry[0] == '{' {
		return entry, true
	}

	var hours float64
	if err := json.Unmarshal(entry, &hours); err != nil {
		return nil, false
	}

	migrated, err := json.Marshal(DailyLog{DayHours: rawHours(entry)})
	if err != nil {
		return nil, false
	}
	return migrated, true
}

// DecodeLogs migrates and decodes a persisted workLogs document
func DecodeLogs(raw []byte) (Logs, error) {
	migrated, err := MigrateLegacy(raw)
	if err != nil {
		return nil, err
	}

	logs := make(Logs)
	if err := json.Unmarshal(migrated, &logs); err != nil {
		return nil, fmt.Errorf("failed to decode work logs: %w", err)
	}
	for employeeID, days := range logs {
		if days == nil {
			logs[employeeID] = make(map[string]DailyLog)
		}
	}
	return logs, nil
}
