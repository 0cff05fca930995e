// Package relevance scores how well a repository's visible text matches a job
// posting without calling any external service.
package relevance

import (
	"sort"
	"strings"
)

const (
	skillWeight   = 15
	keywordWeight = 2
	minKeywordLen = 4
)

// Score rates text (repository description and readme joined together)
// against the job's required skills and free-form description.
// Each required skill present in the text is worth 15 points; each distinct
// description keyword longer than three characters is worth 2. The result is
// clamped to [0,100]. The matched required skills are returned sorted.
func Score(requiredSkills []string, jobDescription, text string) (int, []string) {
	haystack := strings.ToLower(text)

	score := 0
	matched := []string{}
	seen := make(map[string]struct{})
	for _, skill := range requiredSkills {
		needle := strings.ToLower(strings.TrimSpace(skill))
		if needle == "" {
			continue
		}
		if _, dup := seen[needle]; dup {
			continue
		}
		seen[needle] = struct{}{}
		if strings.Contains(haystack, needle) {
			score += skillWeight
			matched = append(matched, needle)
		}
	}

	for _, keyword := range Keywords(jobDescription) {
		if strings.Contains(haystack, keyword) {
			score += keywordWeight
		}
	}

	if score > 100 {
		score = 100
	}
	sort.Strings(matched)
	return score, matched
}

// Keywords tokenizes a job description into distinct lowercase words longer
// than three characters, sorted for stable iteration.
func Keywords(description string) []string {
	fields := strings.FieldsFunc(strings.ToLower(description), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})

	set := make(map[string]struct{})
	for _, w := range fields {
		if len(w) >= minKeywordLen {
			set[w] = struct{}{}
		}
	}

	keywords := make([]string, 0, len(set))
	for w := range set {
		keywords = append(keywords, w)
	}
	sort.Strings(keywords)
	return keywords
}
