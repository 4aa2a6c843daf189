package report

import (
	"fmt"
	"strings"

	"github.com/username/overtime-tracker/internal/employee"
	"github.com/username/overtime-tracker/internal/overtime"
)

// Shape selects the columns of a report
type Shape string

const (
	// ShapeFull carries every bucket of the computation
	ShapeFull Shape = "full"
	// ShapeReduced carries only expected hours and totals
	ShapeReduced Shape = "reduced"
)

// ParseShape parses a report shape name
func ParseShape(s string) (Shape, error) {
	switch Shape(strings.ToLower(strings.TrimSpace(s))) {
	case ShapeFull, "":
		return ShapeFull, nil
	case ShapeReduced:
		return ShapeReduced, nil
	default:
		return "", fmt.Errorf("unknown report shape %q (want full or reduced)", s)
	}
}

// SheetName is the worksheet name of the exported report
const SheetName = "Fazla Mesai Raporu"

// MissingNumber is rendered for employees without an employee number
const MissingNumber = "-"

// FullRecord is one employee row of the full report
type FullRecord struct {
	Name                 string  `csv:"Ad Soyad"`
	EmployeeNumber       string  `csv:"Çalışan No"`
	ExpectedHours        float64 `csv:"Beklenen Saat"`
	ExtraDayHours        float64 `csv:"Fazla Gündüz"`
	WeekdayEveningHours  float64 `csv:"Toplam Akşam"`
	SaturdayDayHours     float64 `csv:"Cumartesi Gündüz"`
	SaturdayEveningHours float64 `csv:"Cumartesi Akşam"`
	SundayDayHours       float64 `csv:"Pazar Gündüz"`
	SundayEveningHours   float64 `csv:"Pazar Akşam"`
	TotalOvertimeHours   float64 `csv:"Toplam Fazla Mesai"`
	TotalPayment         string  `csv:"Toplam Ödeme (₺)"`
}

// ReducedRecord is one employee row of the reduced report
type ReducedRecord struct {
	Name               string  `csv:"Ad Soyad"`
	EmployeeNumber     string  `csv:"Çalışan No"`
	ExpectedHours      float64 `csv:"Beklenen Saat"`
	TotalOvertimeHours float64 `csv:"Toplam Fazla Mesai"`
	TotalPayment       string  `csv:"Toplam Ödeme (₺)"`
}

var (
	fullHeaders = []string{
		"Ad Soyad", "Çalışan No", "Beklenen Saat", "Fazla Gündüz", "Toplam Akşam",
		"Cumartesi Gündüz", "Cumartesi Akşam", "Pazar Gündüz", "Pazar Akşam",
		"Toplam Fazla Mesai", "Toplam Ödeme (₺)",
	}
	reducedHeaders = []string{
		"Ad Soyad", "Çalışan No", "Beklenen Saat", "Toplam Fazla Mesai", "Toplam Ödeme (₺)",
	}
)

// ComputeFunc returns the monthly result of one employee
type ComputeFunc func(employeeID string) overtime.Result

// Report is the flat export of one month, one record per employee
type Report struct {
	Shape   Shape
	Month   string
	Full    []*FullRecord
	Reduced []*ReducedRecord
}

// Build computes every employee and flattens the results into records.
// Payment is formatted with two decimals; everything upstream stays unrounded.
func Build(shape Shape, month string, employees []employee.Employee, compute ComputeFunc) *Report {
	r := &Report{Shape: shape, Month: month}

	for _, emp := range employees {
		res := compute(emp.ID)
		number := emp.EmployeeNumber
		if number == "" {
			number = MissingNumber
		}
		payment := FormatPayment(res.TotalPayment)

		switch shape {
		case ShapeReduced:
			r.Reduced = append(r.Reduced, &ReducedRecord{
				Name:               emp.Name,
				EmployeeNumber:     number,
				ExpectedHours:      res.ExpectedHours,
				TotalOvertimeHours: res.TotalOvertimeHours,
				TotalPayment:       payment,
			})
		default:
			r.Full = append(r.Full, &FullRecord{
				Name:                 emp.Name,
				EmployeeNumber:       number,
				ExpectedHours:        res.ExpectedHours,
				ExtraDayHours:        res.ExtraWeekdayDayHours,
				WeekdayEveningHours:  res.WeekdayEveningHours,
				SaturdayDayHours:     res.SaturdayDayHours,
				SaturdayEveningHours: res.SaturdayEveningHours,
				SundayDayHours:       res.SundayDayHours,
				SundayEveningHours:   res.SundayEveningHours,
				TotalOvertimeHours:   res.TotalOvertimeHours,
				TotalPayment:         payment,
			})
		}
	}
	return r
}

// FormatPayment renders an amount with exactly two decimals
func FormatPayment(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// Headers returns the column titles of the report
func (r *Report) Headers() []string {
	if r.Shape == ShapeReduced {
		return reducedHeaders
	}
	return fullHeaders
}

// Rows returns the records as positional cell values
func (r *Report) Rows() [][]interface{} {
	var rows [][]interface{}
	if r.Shape == ShapeReduced {
		for _, rec := range r.Reduced {
			rows = append(rows, []interface{}{
				rec.Name, rec.EmployeeNumber, rec.ExpectedHours, rec.TotalOvertimeHours, rec.TotalPayment,
			})
		}
		return rows
	}

	for _, rec := range r.Full {
		rows = append(rows, []interface{}{
			rec.Name, rec.EmployeeNumber, rec.ExpectedHours, rec.ExtraDayHours, rec.WeekdayEveningHours,
			rec.SaturdayDayHours, rec.SaturdayEveningHours, rec.SundayDayHours, rec.SundayEveningHours,
			rec.TotalOvertimeHours, rec.TotalPayment,
		})
	}
	return rows
}

// Len returns the number of records
func (r *Report) Len() int {
	if r.Shape == ShapeReduced {
		return len(r.Reduced)
	}
	return len(r.Full)
}

// FileName returns the conventional export name for the given extension
func (r *Report) FileName(ext string) string {
	return fmt.Sprintf("fazla-mesai-raporu-%s.%s", r.Month, ext)
}
