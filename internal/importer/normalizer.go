package importer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/username/overtime-tracker/internal/employee"
	"github.com/username/overtime-tracker/internal/worklog"
	"github.com/username/overtime-tracker/pkg/dateutil"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Layout is a recognized arrangement of hour columns
type Layout string

const (
	// LayoutCombined is one sheet with a plain date column per day, day hours only
	LayoutCombined Layout = "combined"
	// LayoutSuffixed is one sheet with "YYYY-MM-DD (Day)" / "YYYY-MM-DD (Evening)" columns
	LayoutSuffixed Layout = "suffixed"
	// LayoutDualSheet is a day sheet and an evening sheet, each with plain date columns
	LayoutDualSheet Layout = "dual-sheet"
)

// Conventions names the sheets, columns and markers of a spreadsheet
type Conventions struct {
	NameColumn          string
	DaySheet            string
	EveningSheet        string
	DayMarkers          []string
	EveningMarkers      []string
	SundayJustification string
}

// DefaultConventions returns the Turkish names used by the templates
func DefaultConventions() Conventions {
	return Conventions{
		NameColumn:          "Ad Soyad",
		DaySheet:            "Gündüz Mesaisi",
		EveningSheet:        "Akşam Mesaisi",
		DayMarkers:          []string{"Gündüz", "Day"},
		EveningMarkers:      []string{"Akşam", "Evening"},
		SundayJustification: "Excel'den toplu yüklendi",
	}
}

// Tuple is one normalized hour value
type Tuple struct {
	EmployeeID string
	Date       string
	Shift      worklog.Shift
	Hours      float64
}

var suffixedColumn = regexp.MustCompile(`^(\S+)\s*\(\s*([^()]+?)\s*\)$`)

// columnParser maps a header to a date and shift
type columnParser func(header string) (date string, shift worklog.Shift, ok bool)

type sheetPlan struct {
	sheet Sheet
	parse columnParser
}

// Normalizer turns decoded workbooks into hour tuples
type Normalizer struct {
	conv   Conventions
	logger *zap.Logger
}

// NewNormalizer creates a new Normalizer
func NewNormalizer(conv Conventions, logger *zap.Logger) *Normalizer {
	return &Normalizer{
		conv:   conv,
		logger: logger,
	}
}

// Detect picks the layout from the sheet names and header shapes
func (n *Normalizer) Detect(wb *Workbook) Layout {
	_, hasDay := wb.Sheet(n.conv.DaySheet)
	_, hasEvening := wb.Sheet(n.conv.EveningSheet)
	if hasDay || hasEvening {
		return LayoutDualSheet
	}

	if first, ok := wb.First(); ok {
		for _, h := range first.Headers {
			if _, _, ok := n.parseSuffixed(h); ok {
				return LayoutSuffixed
			}
		}
	}
	return LayoutCombined
}

// Normalize resolves rows to employees by exact name and emits a tuple for every
// positive hour cell. Rows naming no known employee are skipped.
func (n *Normalizer) Normalize(wb *Workbook, employees []employee.Employee) ([]Tuple, Layout) {
	layout := n.Detect(wb)

	var tuples []Tuple
	for _, plan := range n.plan(wb, layout) {
		nameColumn := n.nameColumn(plan.sheet)

		for i, row := range plan.sheet.Rows {
			name := row[nameColumn]
			emp, ok := employee.FindByName(employees, name)
			if !ok {
				n.logger.Debug("Skipping row without matching employee",
					zap.String("sheet", plan.sheet.Name),
					zap.Int("row", i+2),
					zap.String("name", name))
				continue
			}

			for _, header := range plan.sheet.Headers {
				date, shift, ok := plan.parse(header)
				if !ok {
					continue
				}
				hours := worklog.ParseHours(row[header])
				if hours <= 0 {
					continue
				}
				tuples = append(tuples, Tuple{
					EmployeeID: emp.ID,
					Date:       date,
					Shift:      shift,
					Hours:      hours,
				})
			}
		}
	}

	n.logger.Info("Workbook normalized",
		zap.String("layout", string(layout)),
		zap.Int("sheets", len(wb.Sheets)),
		zap.Int("tuples", len(tuples)))

	return tuples, layout
}

// Apply merges tuples into the store. A tuple overwrites only its own shift.
// Sunday dates that end up with hours and no reason get the conventional
// bulk-import justification. Returns the number of tuples written.
func (n *Normalizer) Apply(store *worklog.Store, tuples []Tuple) int {
	written := 0
	for _, t := range tuples {
		log := store.Merge(t.EmployeeID, t.Date, t.Shift, t.Hours)

		if day, err := dateutil.ParseDate(t.Date); err == nil && day.Weekday() == time.Sunday &&
			log.HasHours() && strings.TrimSpace(log.Justification) == "" {
			log.Justification = n.conv.SundayJustification
		}

		if err := store.Set(t.EmployeeID, t.Date, log); err != nil {
			n.logger.Warn("Skipping imported value",
				zap.String("employee_id", t.EmployeeID),
				zap.String("date", t.Date),
				zap.Error(err))
			continue
		}
		written++
	}
	return written
}

func (n *Normalizer) plan(wb *Workbook, layout Layout) []sheetPlan {
	switch layout {
	case LayoutDualSheet:
		var plans []sheetPlan
		if s, ok := wb.Sheet(n.conv.DaySheet); ok {
			plans = append(plans, sheetPlan{sheet: s, parse: plainColumn(worklog.ShiftDay)})
		}
		if s, ok := wb.Sheet(n.conv.EveningSheet); ok {
			plans = append(plans, sheetPlan{sheet: s, parse: plainColumn(worklog.ShiftEvening)})
		}
		return plans
	case LayoutSuffixed:
		first, _ := wb.First()
		return []sheetPlan{{sheet: first, parse: n.parseSuffixed}}
	default:
		first, ok := wb.First()
		if !ok {
			return nil
		}
		return []sheetPlan{{sheet: first, parse: plainColumn(worklog.ShiftDay)}}
	}
}

// nameColumn returns the configured name header, or the first header when the
// sheet does not carry it
func (n *Normalizer) nameColumn(sheet Sheet) string {
	for _, h := range sheet.Headers {
		if h == n.conv.NameColumn {
			return h
		}
	}
	if len(sheet.Headers) > 0 {
		return sheet.Headers[0]
	}
	return n.conv.NameColumn
}

func (n *Normalizer) parseSuffixed(header string) (string, worklog.Shift, bool) {
	m := suffixedColumn.FindStringSubmatch(strings.TrimSpace(header))
	if m == nil {
		return "", "", false
	}

	date, ok := ParseColumnDate(m[1])
	if !ok {
		return "", "", false
	}

	marker := m[2]
	for _, dm := range n.conv.DayMarkers {
		if strings.EqualFold(marker, dm) {
			return date, worklog.ShiftDay, true
		}
	}
	for _, em := range n.conv.EveningMarkers {
		if strings.EqualFold(marker, em) {
			return date, worklog.ShiftEvening, true
		}
	}
	return "", "", false
}

func plainColumn(shift worklog.Shift) columnParser {
	return func(header string) (string, worklog.Shift, bool) {
		date, ok := ParseColumnDate(header)
		if !ok {
			return "", "", false
		}
		return date, shift, true
	}
}

// ParseColumnDate reads a date header, either as text or as an Excel serial
// number, and returns it as YYYY-MM-DD
func ParseColumnDate(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}

	if serial, err := strconv.ParseFloat(header, 64); err == nil {
		// Plain years and small numbers are not dates.
		if serial < 20000 || serial > 80000 {
			return "", false
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", false
		}
		return dateutil.FormatDate(t), true
	}

	t, err := dateutil.ParseDate(header)
	if err != nil {
		return "", false
	}
	return dateutil.FormatDate(t), true
}
