package employee

import (
	"strings"

	"github.com/google/uuid"
)

// Employee represents a person whose hours are tracked
type Employee struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	EmployeeNumber string `json:"empId,omitempty"`
}

// New creates an employee with a fresh immutable ID
func New(name, number string) Employee {
	return Employee{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(name),
		EmployeeNumber: strings.TrimSpace(number),
	}
}

// ParseBulk parses pasted text, one "name, number" per line
// Blank lines and lines without a name are skipped.
func ParseBulk(text string) []Employee {
	var employees []Employee
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, number, _ := strings.Cut(line, ",")
		if strings.TrimSpace(name) == "" {
			continue
		}
		employees = append(employees, New(name, number))
	}
	return employees
}

// FindByName returns the first employee whose name matches exactly
func FindByName(employees []Employee, name string) (Employee, bool) {
	for _, e := range employees {
		if e.Name == name {
			return e, true
		}
	}
	return Employee{}, false
}

// Remove returns the list without the employee and whether it was present
func Remove(employees []Employee, id string) ([]Employee, bool) {
	kept := employees[:0:0]
	found := false
	for _, e := range employees {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	return kept, found
}
