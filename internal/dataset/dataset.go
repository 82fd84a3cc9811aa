package dataset

import (
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/models"
)

// Key identifies one of the loadable datasets.
type Key string

const (
	KeyUSA     Key = "usa"
	KeyCompare Key = "compare"
)

// Dataset is an immutable loaded table. Rows and Skills are never
// mutated after load; consumers share the same instance.
type Dataset struct {
	Name   string
	Rows   []models.JobRecord
	Skills []string
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Rows)
}

// SalaryBounds returns the lowest and highest salary in the table.
// ok is false for an empty table.
func (d *Dataset) SalaryBounds() (min, max float64, ok bool) {
	if len(d.Rows) == 0 {
		return 0, 0, false
	}
	min, max = d.Rows[0].Salary, d.Rows[0].Salary
	for _, r := range d.Rows[1:] {
		if r.Salary < min {
			min = r.Salary
		}
		if r.Salary > max {
			max = r.Salary
		}
	}
	return min, max, true
}
