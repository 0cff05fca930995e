package quality

import (
	"math"
	"strings"
)

type commentSyntax struct {
	line       []string
	blockStart string
	blockEnd   string
}

var slashSyntax = commentSyntax{line: []string{"//"}, blockStart: "/*", blockEnd: "*/"}

var commentSyntaxes = map[string]commentSyntax{
	"Go":         slashSyntax,
	"JavaScript": slashSyntax,
	"TypeScript": slashSyntax,
	"Java":       slashSyntax,
	"C":          slashSyntax,
	"C++":        slashSyntax,
	"C#":         slashSyntax,
	"Kotlin":     slashSyntax,
	"Swift":      slashSyntax,
	"Rust":       slashSyntax,
	"Scala":      slashSyntax,
	"Dart":       slashSyntax,
	"PHP":        {line: []string{"//", "#"}, blockStart: "/*", blockEnd: "*/"},
	"Python":     {line: []string{"#"}, blockStart: `"""`, blockEnd: `"""`},
	"Ruby":       {line: []string{"#"}},
	"Elixir":     {line: []string{"#"}},
	"Shell":      {line: []string{"#"}},
	"Perl":       {line: []string{"#"}},
	"R":          {line: []string{"#"}},
	"SQL":        {line: []string{"--"}, blockStart: "/*", blockEnd: "*/"},
	"Lua":        {line: []string{"--"}},
	"Haskell":    {line: []string{"--"}},
	"Erlang":     {line: []string{"%"}},
	"HTML":       {blockStart: "<!--", blockEnd: "-->"},
	"Vue":        {line: []string{"//"}, blockStart: "<!--", blockEnd: "-->"},
	"Svelte":     {line: []string{"//"}, blockStart: "<!--", blockEnd: "-->"},
	"CSS":        {blockStart: "/*", blockEnd: "*/"},
	"SCSS":       {line: []string{"//"}, blockStart: "/*", blockEnd: "*/"},
	"Less":       {line: []string{"//"}, blockStart: "/*", blockEnd: "*/"},
}

// analyzeDocumentation scores the comment-to-code ratio per file, scaled so a
// 50% ratio saturates at 100. Files with no code lines contribute zero.
func analyzeDocumentation(files []SourceFile) float64 {
	if len(files) == 0 {
		return 0
	}

	sum := 0.0
	for _, f := range files {
		comments, code := countLines(f)
		if code == 0 {
			continue
		}
		ratio := float64(comments) / float64(code)
		sum += math.Min(100, ratio*200)
	}
	return sum / float64(len(files))
}

func countLines(f SourceFile) (comments, code int) {
	syntax, ok := commentSyntaxes[f.Language]
	if !ok {
		syntax = slashSyntax
	}

	inBlock := false
	for _, raw := range strings.Split(f.Content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if inBlock {
			comments++
			if syntax.blockEnd != "" && strings.Contains(line, syntax.blockEnd) {
				inBlock = false
			}
			continue
		}

		if syntax.blockStart != "" && strings.HasPrefix(line, syntax.blockStart) {
			comments++
			rest := line[len(syntax.blockStart):]
			if !strings.Contains(rest, syntax.blockEnd) {
				inBlock = true
			}
			continue
		}

		if hasLineComment(line, syntax.line) {
			comments++
			continue
		}

		code++
	}
	return comments, code
}

func hasLineComment(line string, markers []string) bool {
	for _, marker := range markers {
		if strings.HasPrefix(line, marker) {
			return true
		}
	}
	return false
}
