package query

import (
	"sort"
	"strconv"
	"strings"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dataset"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/models"
)

// Wildcard is the single-select value meaning "no restriction".
const Wildcard = "All"

// Range is an inclusive numeric salary bound.
type Range struct {
	Min float64
	Max float64
}

// Params holds the user-selected filter state for one render.
//
// Categories distinguishes nil (no category filter) from an empty
// non-nil slice (explicit empty selection, which matches nothing).
// Single-select fields treat "" and Wildcard as unrestricted. A nil
// Salary range is unrestricted; an inverted range matches nothing.
type Params struct {
	Categories []string
	Seniority  string
	State      string
	Country    string
	Salary     *Range
}

func wildcarded(value string) bool {
	return value == "" || value == Wildcard
}

// Apply returns the subset of the dataset satisfying the conjunction
// of all active predicates. Values within the category set are
// OR-combined; matching is case-insensitive.
func Apply(ds *dataset.Dataset, p Params) View {
	view := Full(ds)

	var categories map[string]bool
	if p.Categories != nil {
		categories = toLowerSet(p.Categories)
	}

	seniority := strings.ToLower(p.Seniority)
	state := strings.ToLower(p.State)
	country := strings.ToLower(p.Country)

	return view.Where(func(r *models.JobRecord) bool {
		if categories != nil && !categories[strings.ToLower(r.Category)] {
			return false
		}
		if !wildcarded(p.Seniority) && strings.ToLower(r.Seniority) != seniority {
			return false
		}
		if !wildcarded(p.State) && strings.ToLower(r.State) != state {
			return false
		}
		if !wildcarded(p.Country) && strings.ToLower(r.Country) != country {
			return false
		}
		if p.Salary != nil && (r.Salary < p.Salary.Min || r.Salary > p.Salary.Max) {
			return false
		}
		return true
	})
}

// CacheKey renders the params as a canonical string for response
// caching. Equal filter states always produce equal keys.
func (p Params) CacheKey() string {
	var b strings.Builder

	b.WriteString("cat=")
	if p.Categories == nil {
		b.WriteString("*")
	} else {
		cats := make([]string, len(p.Categories))
		for i, c := range p.Categories {
			cats[i] = strings.ToLower(c)
		}
		sort.Strings(cats)
		b.WriteString(strings.Join(cats, ","))
	}

	writeSingle(&b, ";sen=", p.Seniority)
	writeSingle(&b, ";state=", p.State)
	writeSingle(&b, ";country=", p.Country)

	b.WriteString(";sal=")
	if p.Salary == nil {
		b.WriteString("*")
	} else {
		b.WriteString(formatBound(p.Salary.Min))
		b.WriteString("-")
		b.WriteString(formatBound(p.Salary.Max))
	}

	return b.String()
}

func writeSingle(b *strings.Builder, prefix, value string) {
	b.WriteString(prefix)
	if wildcarded(value) {
		b.WriteString("*")
	} else {
		b.WriteString(strings.ToLower(value))
	}
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func toLowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
