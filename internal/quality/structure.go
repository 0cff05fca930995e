package quality

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	maxFunctionLines   = 50
	duplicateMinRepeat = 5
	duplicateMinLength = 20
)

var functionStart = regexp.MustCompile(`^\s*(func\s|def\s|function[\s(]|fn\s|(public|private|protected|static)\s[\w\s<>\[\]]*\()`)

// structuralIssues flags over-long functions and repeated line groups. Both
// rely on brace/indent counting instead of real block parsing, so they are
// surfaced as issues only and never feed the numeric scores.
func structuralIssues(files []SourceFile) []string {
	issues := []string{}
	for _, f := range files {
		issues = append(issues, longFunctionIssues(f)...)
		issues = append(issues, duplicateLineIssues(f)...)
	}
	return issues
}

func longFunctionIssues(f SourceFile) []string {
	lines := strings.Split(f.Content, "\n")
	var issues []string

	for i := 0; i < len(lines); i++ {
		if !functionStart.MatchString(lines[i]) {
			continue
		}
		end := functionExtent(lines, i)
		if end-i > maxFunctionLines {
			issues = append(issues, fmt.Sprintf("%s: function near line %d spans %d lines", f.Path, i+1, end-i))
		}
		i = end
	}
	return issues
}

// functionExtent finds where a function ends, by brace depth for
// brace-delimited languages and by dedent otherwise.
func functionExtent(lines []string, start int) int {
	depth := strings.Count(lines[start], "{") - strings.Count(lines[start], "}")
	if depth > 0 {
		for j := start + 1; j < len(lines); j++ {
			depth += strings.Count(lines[j], "{") - strings.Count(lines[j], "}")
			if depth <= 0 {
				return j
			}
		}
		return len(lines) - 1
	}

	base := indentWidth(lines[start])
	for j := start + 1; j < len(lines); j++ {
		if strings.TrimSpace(lines[j]) == "" {
			continue
		}
		if indentWidth(lines[j]) <= base {
			return j - 1
		}
	}
	return len(lines) - 1
}

func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}

func duplicateLineIssues(f SourceFile) []string {
	counts := make(map[string]int)
	for _, raw := range strings.Split(f.Content, "\n") {
		line := strings.TrimSpace(raw)
		if len(line) <= duplicateMinLength {
			continue
		}
		counts[line]++
	}

	repeated := 0
	for _, n := range counts {
		if n >= duplicateMinRepeat {
			repeated++
		}
	}
	if repeated == 0 {
		return nil
	}
	return []string{fmt.Sprintf("%s: %d line(s) repeated %d+ times, possible duplicated code", f.Path, repeated, duplicateMinRepeat)}
}
