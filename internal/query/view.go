package query

import (
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dataset"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/models"
)

// View is a row subset of a loaded dataset. It holds indices into the
// dataset's rows; no row data is copied and the underlying records
// are never mutated. A nil index slice means "all rows".
type View struct {
	rows []models.JobRecord
	idx  []int
	all  bool
}

// Full returns a view spanning every row of the dataset.
func Full(ds *dataset.Dataset) View {
	return View{rows: ds.Rows, all: true}
}

func subView(rows []models.JobRecord, idx []int) View {
	return View{rows: rows, idx: idx}
}

func (v View) Len() int {
	if v.all {
		return len(v.rows)
	}
	return len(v.idx)
}

// Record returns the i-th record of the view.
func (v View) Record(i int) *models.JobRecord {
	if v.all {
		return &v.rows[i]
	}
	return &v.rows[v.idx[i]]
}

// Salaries collects the salary column of the view.
func (v View) Salaries() []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.Record(i).Salary
	}
	return out
}

// Where returns the subset of the view matching pred.
func (v View) Where(pred func(*models.JobRecord) bool) View {
	idx := make([]int, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		if pred(v.Record(i)) {
			if v.all {
				idx = append(idx, i)
			} else {
				idx = append(idx, v.idx[i])
			}
		}
	}
	return subView(v.rows, idx)
}
