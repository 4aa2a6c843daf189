package importer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is a decoded worksheet: the header row and one map per data row
type Sheet struct {
	Name    string
	Headers []string
	Rows    []map[string]string
}

// Workbook is a decoded spreadsheet
type Workbook struct {
	Sheets []Sheet
}

// Sheet returns the sheet with the given name
func (w *Workbook) Sheet(name string) (Sheet, bool) {
	for _, s := range w.Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// First returns the first sheet
func (w *Workbook) First() (Sheet, bool) {
	if len(w.Sheets) == 0 {
		return Sheet{}, false
	}
	return w.Sheets[0], true
}

// NewSheet builds a Sheet from a header row and positional data rows
func NewSheet(name string, rows [][]string) Sheet {
	sheet := Sheet{Name: name}
	if len(rows) == 0 {
		return sheet
	}

	for _, h := range rows[0] {
		sheet.Headers = append(sheet.Headers, strings.TrimSpace(h))
	}

	for _, cells := range rows[1:] {
		row := make(map[string]string, len(sheet.Headers))
		empty := true
		for i, header := range sheet.Headers {
			if header == "" || i >= len(cells) {
				continue
			}
			row[header] = cells[i]
			if strings.TrimSpace(cells[i]) != "" {
				empty = false
			}
		}
		if !empty {
			sheet.Rows = append(sheet.Rows, row)
		}
	}
	return sheet
}

// DecodeWorkbook reads an xlsx workbook. Cells are read raw so that date-typed
// header cells arrive as serial numbers, which ParseColumnDate understands.
func DecodeWorkbook(r io.Reader) (*Workbook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read workbook: %w", err)
	}

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	wb := &Workbook{}
	for _, name := range file.GetSheetList() {
		rows, err := file.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
		}
		wb.Sheets = append(wb.Sheets, NewSheet(name, rows))
	}

	if len(wb.Sheets) == 0 {
		return nil, fmt.Errorf("no worksheet found")
	}
	return wb, nil
}
