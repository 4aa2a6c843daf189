package report

import (
	"fmt"
	"io"
	"time"

	"github.com/username/overtime-tracker/internal/employee"
	"github.com/username/overtime-tracker/internal/importer"
	"github.com/username/overtime-tracker/pkg/dateutil"
	"github.com/xuri/excelize/v2"
)

// TemplateSheetName is the sheet of a suffixed template
const TemplateSheetName = "Çalışma Saatleri"

// TemplateFileName returns the conventional template name for a month
func TemplateFileName(year int, month time.Month) string {
	return fmt.Sprintf("calisma-saati-sablonu-%s.xlsx", dateutil.FormatMonth(year, month))
}

// WriteTemplate writes an empty hours workbook for the month with one row per
// employee, laid out so that the importer reads it back with the same conventions.
func WriteTemplate(w io.Writer, layout importer.Layout, conv importer.Conventions,
	employees []employee.Employee, year int, month time.Month) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	dates := dateutil.MonthDates(year, month)

	switch layout {
	case importer.LayoutDualSheet:
		if err := f.SetSheetName(f.GetSheetName(0), conv.DaySheet); err != nil {
			return fmt.Errorf("failed to name day sheet: %w", err)
		}
		if _, err := f.NewSheet(conv.EveningSheet); err != nil {
			return fmt.Errorf("failed to create evening sheet: %w", err)
		}
		headers := []interface{}{conv.NameColumn}
		for _, d := range dates {
			headers = append(headers, dateutil.FormatDate(d))
		}
		for _, sheet := range []string{conv.DaySheet, conv.EveningSheet} {
			if err := writeRows(f, sheet, nameRows(headers, employees)); err != nil {
				return err
			}
		}
	case importer.LayoutSuffixed:
		if len(conv.DayMarkers) == 0 || len(conv.EveningMarkers) == 0 {
			return fmt.Errorf("suffixed template needs day and evening markers")
		}
		if err := f.SetSheetName(f.GetSheetName(0), TemplateSheetName); err != nil {
			return fmt.Errorf("failed to name template sheet: %w", err)
		}
		headers := []interface{}{conv.NameColumn}
		for _, d := range dates {
			date := dateutil.FormatDate(d)
			headers = append(headers,
				fmt.Sprintf("%s (%s)", date, conv.DayMarkers[0]),
				fmt.Sprintf("%s (%s)", date, conv.EveningMarkers[0]))
		}
		if err := writeRows(f, TemplateSheetName, nameRows(headers, employees)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported template layout %q", layout)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write template workbook: %w", err)
	}
	return nil
}

func nameRows(headers []interface{}, employees []employee.Employee) [][]interface{} {
	rows := [][]interface{}{headers}
	for _, emp := range employees {
		rows = append(rows, []interface{}{emp.Name})
	}
	return rows
}
