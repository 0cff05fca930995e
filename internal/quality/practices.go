package quality

import (
	"fmt"
	"regexp"
	"sort"
)

// practiceCheck is a language-specific positive or negative signal. Findings
// are purely textual; they enrich the report without moving any score.
type practiceCheck struct {
	pattern  *regexp.Regexp
	message  string
	strength bool
}

var bestPractices = map[string][]practiceCheck{
	"JavaScript": {
		{regexp.MustCompile(`\b(const|let)\s`), "modern const/let declarations", true},
		{regexp.MustCompile(`\bvar\s`), "legacy var declarations", false},
		{regexp.MustCompile(`===|!==`), "strict equality comparisons", true},
		{regexp.MustCompile(`\basync\s+function|\bawait\s`), "async/await flow", true},
	},
	"TypeScript": {
		{regexp.MustCompile(`:\s*(string|number|boolean|void|Promise<)`), "explicit type annotations", true},
		{regexp.MustCompile(`:\s*any\b`), "untyped any annotations", false},
		{regexp.MustCompile(`\binterface\s+[A-Z]`), "interface-driven contracts", true},
	},
	"Python": {
		{regexp.MustCompile(`def \w+\([^)]*\)\s*->`), "type-hinted signatures", true},
		{regexp.MustCompile(`except\s*:`), "bare except clauses", false},
		{regexp.MustCompile(`with\s+open\(`), "context-managed resources", true},
		{regexp.MustCompile(`\bf["']`), "f-string formatting", true},
	},
	"Go": {
		{regexp.MustCompile(`if err != nil`), "structured error handling", true},
		{regexp.MustCompile(`\bpanic\(`), "panic outside main flow", false},
		{regexp.MustCompile(`\bcontext\.Context\b`), "context propagation", true},
	},
	"Java": {
		{regexp.MustCompile(`\bprivate\s+\w`), "encapsulated fields", true},
		{regexp.MustCompile(`catch\s*\(\s*Exception\b`), "catch-all exception handlers", false},
		{regexp.MustCompile(`@Override\b`), "explicit overrides", true},
	},
	"Ruby": {
		{regexp.MustCompile(`\battr_(reader|writer|accessor)\b`), "declarative accessors", true},
		{regexp.MustCompile(`\brescue\s*$`), "blanket rescue clauses", false},
	},
}

// practiceFindings returns deduplicated strengths (repo-wide) and per-file
// issues from the language-specific tables.
func practiceFindings(files []SourceFile) ([]string, []string) {
	strengthSet := make(map[string]struct{})
	issueSet := make(map[string]struct{})

	for _, f := range files {
		for _, check := range bestPractices[f.Language] {
			if !check.pattern.MatchString(f.Content) {
				continue
			}
			if check.strength {
				strengthSet[check.message] = struct{}{}
			} else {
				issueSet[fmt.Sprintf("%s: %s", f.Path, check.message)] = struct{}{}
			}
		}
	}

	return sortedKeys(strengthSet), sortedKeys(issueSet)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
