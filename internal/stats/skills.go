package stats

import (
	"sort"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/query"
)

// SkillStat is demand for one skill within a filtered view.
type SkillStat struct {
	Skill      string  `json:"skill"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// comparisonPrevalenceFloor is the combined USA+India percentage below
// which a skill is dropped from cross-dataset comparison output.
const comparisonPrevalenceFloor = 5.0

// SkillPrevalence computes, for each skill flag, the count and
// percentage of rows in the view where the flag is set. Skills with
// zero occurrences are dropped. Percentages are always within
// [0, 100]; an empty view yields no entries. Output is ordered by
// count descending, ties alphabetical.
func SkillPrevalence(view query.View, skills []string) []SkillStat {
	total := view.Len()
	if total == 0 {
		return nil
	}

	out := make([]SkillStat, 0, len(skills))
	for _, skill := range skills {
		count := 0
		for i := 0; i < total; i++ {
			if view.Record(i).HasSkill(skill) {
				count++
			}
		}
		if count == 0 {
			continue
		}
		out = append(out, SkillStat{
			Skill:      skill,
			Count:      count,
			Percentage: float64(count) / float64(total) * 100,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Skill < out[j].Skill
	})
	return out
}

// SkillComparison pairs a skill's prevalence in both datasets.
type SkillComparison struct {
	Skill    string  `json:"skill"`
	USAPct   float64 `json:"usa_pct"`
	IndiaPct float64 `json:"india_pct"`
	Combined float64 `json:"combined_pct"`
}

// CompareSkills merges per-country prevalence lists and drops skills
// whose combined percentage falls below the 5% floor. Ordered by
// combined prevalence descending, ties alphabetical.
func CompareSkills(usa, india []SkillStat) []SkillComparison {
	usaPct := make(map[string]float64, len(usa))
	for _, s := range usa {
		usaPct[s.Skill] = s.Percentage
	}
	indiaPct := make(map[string]float64, len(india))
	for _, s := range india {
		indiaPct[s.Skill] = s.Percentage
	}

	seen := make(map[string]bool)
	var out []SkillComparison
	add := func(skill string) {
		if seen[skill] {
			return
		}
		seen[skill] = true
		c := SkillComparison{
			Skill:    skill,
			USAPct:   usaPct[skill],
			IndiaPct: indiaPct[skill],
		}
		c.Combined = c.USAPct + c.IndiaPct
		if c.Combined >= comparisonPrevalenceFloor {
			out = append(out, c)
		}
	}
	for _, s := range usa {
		add(s.Skill)
	}
	for _, s := range india {
		add(s.Skill)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Combined != out[j].Combined {
			return out[i].Combined > out[j].Combined
		}
		return out[i].Skill < out[j].Skill
	})
	return out
}
