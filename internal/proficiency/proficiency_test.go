package proficiency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLanguagesBlendsVolumeBreadthQuality(t *testing.T) {
	t.Parallel()

	facts := []RepoFacts{
		{Language: "Go", LinesOfCode: 1000, QualityScore: 80},
		{Language: "Go", LinesOfCode: 500, QualityScore: 60},
		{Language: "Python", LinesOfCode: 200, QualityScore: 90},
	}

	langs := Languages(facts)
	require.Len(t, langs, 2)

	// Go: 1500/1000*20 + 2*10 + 70*0.5 = 85.
	assert.Equal(t, Language{Name: "Go", Proficiency: 85, LinesOfCode: 1500, Repositories: 2}, langs[0])
	// Python: 200/1000*20 + 10 + 45 = 59.
	assert.Equal(t, Language{Name: "Python", Proficiency: 59, LinesOfCode: 200, Repositories: 1}, langs[1])
}

func TestLanguagesSaturatesAt100(t *testing.T) {
	t.Parallel()

	langs := Languages([]RepoFacts{{Language: "Go", LinesOfCode: 50000, QualityScore: 100}})
	require.Len(t, langs, 1)
	assert.Equal(t, 100, langs[0].Proficiency)
}

func TestLanguagesSkipsUnknownLanguage(t *testing.T) {
	t.Parallel()

	langs := Languages([]RepoFacts{{Language: "", LinesOfCode: 100, QualityScore: 50}})
	assert.Empty(t, langs)
}

func TestDistributionIndependentRounding(t *testing.T) {
	t.Parallel()

	dist := Distribution([]RepoFacts{
		{Language: "Go", LinesOfCode: 800},
		{Language: "Python", LinesOfCode: 200},
	})

	assert.Equal(t, map[string]int{"Go": 80, "Python": 20}, dist)
}

func TestDistributionEmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Distribution(nil))
}

func TestSkillsMatchAndAverage(t *testing.T) {
	t.Parallel()

	facts := []RepoFacts{
		{SearchText: "go grpc microservice", QualityScore: 80, RelevanceScore: 60},
		{SearchText: "go cli tool", QualityScore: 60, RelevanceScore: 40},
		{SearchText: "react frontend", QualityScore: 90, RelevanceScore: 20},
	}

	skills := Skills([]string{"Go", "Kubernetes"}, facts)
	require.Len(t, skills, 2)

	assert.Equal(t, Skill{Name: "go", Proficiency: 60, Matched: true}, skills[0])
	assert.Equal(t, Skill{Name: "kubernetes", Matched: false}, skills[1])

	assert.Equal(t, []string{"go"}, Matched(skills))
}

func TestSkillsNoRepositoriesMentionSkill(t *testing.T) {
	t.Parallel()

	facts := []RepoFacts{{SearchText: "ruby on rails blog"}}
	skills := Skills([]string{"Go", "Kubernetes"}, facts)

	assert.Empty(t, Matched(skills))
	assert.NotNil(t, Matched(skills))
	for _, s := range skills {
		assert.Zero(t, s.Proficiency)
	}
}

func TestSkillsDeduplicates(t *testing.T) {
	t.Parallel()

	skills := Skills([]string{"go", "GO", "  go "}, []RepoFacts{{SearchText: "go service"}})
	assert.Len(t, skills, 1)
}
