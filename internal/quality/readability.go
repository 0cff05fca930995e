package quality

import (
	"regexp"
	"strings"
)

const maxLineLength = 120

var identifierPattern = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)

// analyzeReadability averages the per-file readability score.
func analyzeReadability(files []SourceFile) float64 {
	if len(files) == 0 {
		return 0
	}

	sum := 0.0
	for _, f := range files {
		sum += fileReadability(f.Content)
	}
	return sum / float64(len(files))
}

// fileReadability starts at 100, penalizes long lines proportionally (up to
// -20), rewards consistent even space indentation (+10) and a high share of
// multi-character identifiers (up to +15).
func fileReadability(content string) float64 {
	lines := strings.Split(content, "\n")
	score := 100.0

	long := 0
	spaceIndented, tabIndented, oddIndented := 0, 0, 0
	for _, line := range lines {
		if len(line) > maxLineLength {
			long++
		}
		switch {
		case strings.HasPrefix(line, "\t"):
			tabIndented++
		case strings.HasPrefix(line, " "):
			width := len(line) - len(strings.TrimLeft(line, " "))
			if width%2 == 0 {
				spaceIndented++
			} else {
				oddIndented++
			}
		}
	}

	score -= 20 * float64(long) / float64(len(lines))

	if spaceIndented > 0 && tabIndented == 0 && oddIndented == 0 {
		score += 10
	}

	idents := identifierPattern.FindAllString(content, -1)
	if len(idents) > 0 {
		multi := 0
		for _, ident := range idents {
			if len(ident) > 1 {
				multi++
			}
		}
		score += 15 * float64(multi) / float64(len(idents))
	}

	return clampScore(score)
}
