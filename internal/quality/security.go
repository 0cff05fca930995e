package quality

import (
	"fmt"
	"regexp"
)

// securitySignature describes one known-bad pattern. The table is versioned
// here so each entry can be unit-tested in isolation.
type securitySignature struct {
	description string
	pattern     *regexp.Regexp
	penalty     int
}

var securitySignatures = []securitySignature{
	{
		description: "hardcoded credential",
		pattern:     regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret)\s*[:=]\s*["'][^"']+["']`),
		penalty:     25,
	},
	{
		description: "hardcoded API key or token",
		pattern:     regexp.MustCompile(`(?i)\b(api[_-]?key|apikey|access[_-]?token|auth[_-]?token|private[_-]?key)\s*[:=]\s*["'][^"']+["']`),
		penalty:     25,
	},
	{
		description: "dynamic eval of runtime data",
		pattern:     regexp.MustCompile(`\beval\s*\(`),
		penalty:     20,
	},
	{
		description: "dynamic function construction",
		pattern:     regexp.MustCompile(`new\s+Function\s*\(`),
		penalty:     20,
	},
	{
		description: "unescaped DOM injection",
		pattern:     regexp.MustCompile(`\.innerHTML\s*=|document\.write\s*\(`),
		penalty:     15,
	},
	{
		description: "string-concatenated query construction",
		pattern:     regexp.MustCompile(`(?i)["'][^"'\n]*\b(select|insert|update|delete)\b[^"'\n]*["']\s*\+`),
		penalty:     20,
	},
}

// analyzeSecurity starts at 100 and deducts a fixed penalty per signature
// match, floored at zero. Every match is recorded as an issue.
func analyzeSecurity(files []SourceFile) (float64, []string) {
	score := 100.0
	issues := []string{}

	for _, f := range files {
		for _, sig := range securitySignatures {
			matches := sig.pattern.FindAllStringIndex(f.Content, -1)
			for range matches {
				score -= float64(sig.penalty)
				issues = append(issues, fmt.Sprintf("%s: %s", f.Path, sig.description))
			}
		}
	}

	if score < 0 {
		score = 0
	}
	return score, issues
}
