package worklog

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Shift is one of the two tracked categories of hours per date
type Shift string

const (
	ShiftDay     Shift = "day"
	ShiftEvening Shift = "evening"
)

// ParseShift parses a shift name
func ParseShift(s string) (Shift, error) {
	switch Shift(strings.ToLower(strings.TrimSpace(s))) {
	case ShiftDay:
		return ShiftDay, nil
	case ShiftEvening:
		return ShiftEvening, nil
	default:
		return "", fmt.Errorf("unknown shift %q (want day or evening)", s)
	}
}

// DailyLog holds the hours one employee worked on one date
// The JSON form {"day":n,"evening":n,"reason":"..."} is the persisted format.
type DailyLog struct {
	DayHours      float64 `json:"day"`
	EveningHours  float64 `json:"evening"`
	Justification string  `json:"reason,omitempty"`
}

// HasHours reports whether any shift carries positive hours
func (l DailyLog) HasHours() bool {
	return l.DayHours > 0 || l.EveningHours > 0
}

// Hours returns the hours of one shift
func (l DailyLog) Hours(shift Shift) float64 {
	if shift == ShiftEvening {
		return l.EveningHours
	}
	return l.DayHours
}

// WithShift returns a copy with only the given shift overwritten
func (l DailyLog) WithShift(shift Shift, hours float64) DailyLog {
	if shift == ShiftEvening {
		l.EveningHours = hours
	} else {
		l.DayHours = hours
	}
	return l
}

// UnmarshalJSON implements json.Unmarshaler for DailyLog
// Hour fields may arrive as numbers or numeric strings; anything else reads as zero.
func (l *DailyLog) UnmarshalJSON(b []byte) error {
	var aux struct {
		Day     json.RawMessage `json:"day"`
		Evening json.RawMessage `json:"evening"`
		Reason  *string         `json:"reason"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return fmt.Errorf("daily log: %w", err)
	}

	l.DayHours = rawHours(aux.Day)
	l.EveningHours = rawHours(aux.Evening)
	l.Justification = ""
	if aux.Reason != nil {
		l.Justification = *aux.Reason
	}
	return nil
}

// Logs is the nested employeeID -> date -> DailyLog map
type Logs map[string]map[string]DailyLog

// ParseHours coerces a user or spreadsheet value to hours
// Non-numeric, negative and non-finite input reads as zero; a comma is accepted
// as decimal separator.
func ParseHours(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	value = strings.Replace(value, ",", ".", 1)

	hours, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 {
		return 0
	}
	return hours
}

func rawHours(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return ParseHours(s)
	}
	return 0
}
