package stats

import (
	"testing"

	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/dataset"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/models"
	"github.com/SANJANA-DHAGE05/job-market-analysis/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skillView(skills ...map[string]bool) query.View {
	ds := &dataset.Dataset{}
	for _, s := range skills {
		ds.Rows = append(ds.Rows, models.JobRecord{Skills: s})
	}
	return query.Full(ds)
}

func TestSkillPrevalence(t *testing.T) {
	known := []string{"Python", "Sql", "Power Bi"}

	t.Run("empty view yields no entries", func(t *testing.T) {
		assert.Nil(t, SkillPrevalence(skillView(), known))
	})

	t.Run("percentages stay within bounds", func(t *testing.T) {
		view := skillView(
			map[string]bool{"Python": true, "Sql": true},
			map[string]bool{"Python": true},
			map[string]bool{"Python": true},
			map[string]bool{},
		)
		out := SkillPrevalence(view, known)
		require.Len(t, out, 2)
		for _, s := range out {
			assert.GreaterOrEqual(t, s.Percentage, 0.0)
			assert.LessOrEqual(t, s.Percentage, 100.0)
		}
		assert.Equal(t, "Python", out[0].Skill)
		assert.Equal(t, 3, out[0].Count)
		assert.InDelta(t, 75.0, out[0].Percentage, 1e-9)
		assert.Equal(t, "Sql", out[1].Skill)
		assert.InDelta(t, 25.0, out[1].Percentage, 1e-9)
	})

	t.Run("universal skill hits exactly 100", func(t *testing.T) {
		view := skillView(
			map[string]bool{"Python": true},
			map[string]bool{"Python": true},
		)
		out := SkillPrevalence(view, known)
		require.Len(t, out, 1)
		assert.Equal(t, 100.0, out[0].Percentage)
	})

	t.Run("absent skills are dropped", func(t *testing.T) {
		view := skillView(map[string]bool{"Python": true})
		out := SkillPrevalence(view, known)
		require.Len(t, out, 1)
		assert.Equal(t, "Python", out[0].Skill)
	})
}

func TestCompareSkills(t *testing.T) {
	t.Run("drops skills below the combined floor", func(t *testing.T) {
		usa := []SkillStat{
			{Skill: "Python", Percentage: 60},
			{Skill: "Cobol", Percentage: 2},
		}
		india := []SkillStat{
			{Skill: "Python", Percentage: 70},
			{Skill: "Cobol", Percentage: 1.5},
		}

		out := CompareSkills(usa, india)
		require.Len(t, out, 1)
		assert.Equal(t, "Python", out[0].Skill)
		assert.InDelta(t, 130.0, out[0].Combined, 1e-9)
	})

	t.Run("keeps skills at exactly the floor", func(t *testing.T) {
		out := CompareSkills(
			[]SkillStat{{Skill: "Rust", Percentage: 3}},
			[]SkillStat{{Skill: "Rust", Percentage: 2}},
		)
		require.Len(t, out, 1)
	})

	t.Run("skill present in one country only still compares", func(t *testing.T) {
		out := CompareSkills(
			[]SkillStat{{Skill: "Tableau", Percentage: 20}},
			nil,
		)
		require.Len(t, out, 1)
		assert.Equal(t, 20.0, out[0].USAPct)
		assert.Equal(t, 0.0, out[0].IndiaPct)
	})

	t.Run("orders by combined prevalence", func(t *testing.T) {
		out := CompareSkills(
			[]SkillStat{{Skill: "Sql", Percentage: 40}, {Skill: "Python", Percentage: 50}},
			[]SkillStat{{Skill: "Sql", Percentage: 30}, {Skill: "Python", Percentage: 45}},
		)
		require.Len(t, out, 2)
		assert.Equal(t, "Python", out[0].Skill)
		assert.Equal(t, "Sql", out[1].Skill)
	})
}
