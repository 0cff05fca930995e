package quality

import "regexp"

// decisionPoints are the tokens counted as branches for the proxy cyclomatic
// measure: conditionals, loops, switch arms, exception handlers, ternaries.
var decisionPoints = []*regexp.Regexp{
	regexp.MustCompile(`\bif\b`),
	regexp.MustCompile(`\belif\b`),
	regexp.MustCompile(`\bfor\b`),
	regexp.MustCompile(`\bwhile\b`),
	regexp.MustCompile(`\bcase\b`),
	regexp.MustCompile(`\bwhen\b`),
	regexp.MustCompile(`\bcatch\b`),
	regexp.MustCompile(`\bexcept\b`),
	regexp.MustCompile(`\brescue\b`),
	regexp.MustCompile(`\s\?\s`),
}

// analyzeComplexity averages the per-file decision-point count (base 1) and
// maps it linearly onto [0,100]: more branching, lower score.
func analyzeComplexity(files []SourceFile) float64 {
	if len(files) == 0 {
		return 0
	}

	total := 0.0
	for _, f := range files {
		count := 1.0
		for _, re := range decisionPoints {
			count += float64(len(re.FindAllStringIndex(f.Content, -1)))
		}
		total += count
	}

	avg := total / float64(len(files))
	return clampScore(100 - avg*2)
}
