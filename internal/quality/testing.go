package quality

import (
	"math"
	"strings"
)

var testPathMarkers = []string{"test", "spec", "__tests__"}

// testFrameworkIdents are matched case-insensitively against file content;
// each file mentioning a framework adds a flat bonus.
var testFrameworkIdents = []string{
	"testing.t",
	"testify",
	"jest",
	"mocha",
	"chai",
	"pytest",
	"unittest",
	"rspec",
	"junit",
	"xunit",
	"jasmine",
	"cypress",
	"playwright",
	"vitest",
}

const testFrameworkBonus = 5

// analyzeTesting scores the share of test files (a third of files being
// tests saturates at 100) plus a per-file framework bonus, capped at 100.
func analyzeTesting(files []SourceFile) float64 {
	if len(files) == 0 {
		return 0
	}

	testFiles := 0
	bonus := 0.0
	for _, f := range files {
		path := strings.ToLower(f.Path)
		for _, marker := range testPathMarkers {
			if strings.Contains(path, marker) {
				testFiles++
				break
			}
		}

		content := strings.ToLower(f.Content)
		for _, ident := range testFrameworkIdents {
			if strings.Contains(content, ident) {
				bonus += testFrameworkBonus
				break
			}
		}
	}

	fraction := float64(testFiles) / float64(len(files))
	return clampScore(math.Min(100, fraction*300) + bonus)
}
