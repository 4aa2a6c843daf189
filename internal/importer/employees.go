package importer

import (
	"strings"

	"github.com/username/overtime-tracker/internal/employee"
)

var (
	nameHeaders   = []string{"Ad Soyad", "Ad", "İsim", "Name"}
	numberHeaders = []string{"Çalışan No", "No", "Employee No"}
)

// ParseEmployees reads employees from the first sheet of a workbook
// Rows without a name are skipped.
func ParseEmployees(wb *Workbook) []employee.Employee {
	sheet, ok := wb.First()
	if !ok {
		return nil
	}

	var employees []employee.Employee
	for _, row := range sheet.Rows {
		name := firstValue(row, nameHeaders)
		if name == "" {
			continue
		}
		employees = append(employees, employee.New(name, firstValue(row, numberHeaders)))
	}
	return employees
}

func firstValue(row map[string]string, headers []string) string {
	for _, h := range headers {
		if v := strings.TrimSpace(row[h]); v != "" {
			return v
		}
	}
	return ""
}
