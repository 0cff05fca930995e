// Package proficiency folds per-repository analysis results into per-language
// and per-skill depth estimates for a whole candidate profile.
package proficiency

import (
	"math"
	"sort"
	"strings"
)

// RepoFacts is the slice of one repository's analysis that aggregation needs.
// SearchText is the lowercased concatenation of language, name, description,
// README and detected technology tags.
type RepoFacts struct {
	Language       string
	LinesOfCode    int
	QualityScore   int
	RelevanceScore int
	SearchText     string
}

// Language is a candidate's standing in one programming language.
type Language struct {
	Name         string `json:"name"`
	Proficiency  int    `json:"proficiency"`
	LinesOfCode  int    `json:"lines_of_code"`
	Repositories int    `json:"repositories"`
}

// Skill is a required job skill with the candidate's matched depth.
// Proficiency is zero when no repository mentions the skill.
type Skill struct {
	Name        string `json:"name"`
	Proficiency int    `json:"proficiency"`
	Matched     bool   `json:"matched"`
}

// Languages aggregates volume, breadth and quality per language. The score
// saturates at 100: every 1000 lines adds 20, every repository adds 10, and
// half of the mean quality score carries over. Sorted by lines of code
// descending, ties by name.
func Languages(facts []RepoFacts) []Language {
	type acc struct {
		lines   int
		repos   int
		quality int
	}
	byLang := make(map[string]*acc)
	for _, f := range facts {
		if f.Language == "" {
			continue
		}
		a := byLang[f.Language]
		if a == nil {
			a = &acc{}
			byLang[f.Language] = a
		}
		a.lines += f.LinesOfCode
		a.repos++
		a.quality += f.QualityScore
	}

	langs := make([]Language, 0, len(byLang))
	for name, a := range byLang {
		avgQuality := float64(a.quality) / float64(a.repos)
		score := float64(a.lines)/1000*20 + float64(a.repos)*10 + avgQuality*0.5
		langs = append(langs, Language{
			Name:         name,
			Proficiency:  int(math.Round(math.Min(100, score))),
			LinesOfCode:  a.lines,
			Repositories: a.repos,
		})
	}

	sort.Slice(langs, func(i, j int) bool {
		if langs[i].LinesOfCode != langs[j].LinesOfCode {
			return langs[i].LinesOfCode > langs[j].LinesOfCode
		}
		return langs[i].Name < langs[j].Name
	})
	return langs
}

// Distribution returns each language's percentage share of total lines of
// code, rounded independently. Shares may sum to 99-101.
func Distribution(facts []RepoFacts) map[string]int {
	totals := make(map[string]int)
	sum := 0
	for _, f := range facts {
		if f.Language == "" || f.LinesOfCode == 0 {
			continue
		}
		totals[f.Language] += f.LinesOfCode
		sum += f.LinesOfCode
	}

	dist := make(map[string]int, len(totals))
	if sum == 0 {
		return dist
	}
	for lang, lines := range totals {
		dist[lang] = int(math.Round(float64(lines) / float64(sum) * 100))
	}
	return dist
}

// Skills rates each required skill against the candidate's repositories. A
// skill is matched when it appears as a substring of any repository's search
// text; its proficiency averages (quality+relevance)/2 over matching
// repositories. Order follows the input, deduplicated.
func Skills(requiredSkills []string, facts []RepoFacts) []Skill {
	skills := make([]Skill, 0, len(requiredSkills))
	seen := make(map[string]struct{})

	for _, raw := range requiredSkills {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		sum, count := 0, 0
		for _, f := range facts {
			if strings.Contains(f.SearchText, name) {
				sum += (f.QualityScore + f.RelevanceScore) / 2
				count++
			}
		}

		skill := Skill{Name: name}
		if count > 0 {
			skill.Matched = true
			skill.Proficiency = int(math.Round(float64(sum) / float64(count)))
		}
		skills = append(skills, skill)
	}
	return skills
}

// Matched filters the skill set down to the matched names.
func Matched(skills []Skill) []string {
	matched := []string{}
	for _, s := range skills {
		if s.Matched {
			matched = append(matched, s.Name)
		}
	}
	return matched
}
