package models

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	SeniorityJunior = "Junior"
	SeniorityMid    = "Mid-Level"
	SenioritySenior = "Senior"
)

const (
	CountryUSA   = "USA"
	CountryIndia = "India"
)

// SeniorityLevels lists the classified levels in career order.
var SeniorityLevels = []string{SeniorityJunior, SeniorityMid, SenioritySenior}

// JobRecord is a single cleaned job posting row. Salary is in the
// record's native unit: USD thousands for USA rows, LPA for India rows.
type JobRecord struct {
	ID        string
	Title     string
	Category  string
	Seniority string
	Company   string
	Industry  string
	State     string
	City      string
	Country   string
	Salary    float64
	Skills    map[string]bool
}

func (r *JobRecord) HasSkill(skill string) bool {
	return r.Skills[skill]
}

var recordNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// RecordID derives a stable UUID for a row from its identifying fields,
// so repeated loads and warehouse exports produce the same IDs.
func RecordID(r *JobRecord) string {
	seed := strings.Join([]string{
		r.Country, r.Company, r.Title, r.City, fmt.Sprintf("%.2f", r.Salary),
	}, "|")
	return uuid.NewSHA1(recordNamespace, []byte(seed)).String()
}
