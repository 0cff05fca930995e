package sampler

import (
	"path"
	"strings"
)

// extLanguages is the fixed allow-list of analyzable file extensions mapped
// to the language they report as. Paths outside this table are never sampled.
var extLanguages = map[string]string{
	".go":     "Go",
	".py":     "Python",
	".js":     "JavaScript",
	".jsx":    "JavaScript",
	".mjs":    "JavaScript",
	".ts":     "TypeScript",
	".tsx":    "TypeScript",
	".java":   "Java",
	".c":      "C",
	".h":      "C",
	".cpp":    "C++",
	".cc":     "C++",
	".hpp":    "C++",
	".cs":     "C#",
	".rb":     "Ruby",
	".php":    "PHP",
	".swift":  "Swift",
	".kt":     "Kotlin",
	".kts":    "Kotlin",
	".rs":     "Rust",
	".scala":  "Scala",
	".dart":   "Dart",
	".m":      "Objective-C",
	".ex":     "Elixir",
	".exs":    "Elixir",
	".erl":    "Erlang",
	".hs":     "Haskell",
	".lua":    "Lua",
	".pl":     "Perl",
	".r":      "R",
	".sh":     "Shell",
	".sql":    "SQL",
	".html":   "HTML",
	".vue":    "Vue",
	".svelte": "Svelte",
	".css":    "CSS",
	".scss":   "SCSS",
	".sass":   "SCSS",
	".less":   "Less",
}

// ignoredPathSegments are dependency caches, build output and editor/vcs
// internals. A path containing any of these segments is never sampled.
var ignoredPathSegments = map[string]struct{}{
	"node_modules":       {},
	"bower_components":   {},
	"vendor":             {},
	"dist":               {},
	"build":              {},
	"out":                {},
	"target":             {},
	"bin":                {},
	"obj":                {},
	"coverage":           {},
	"__pycache__":        {},
	".git":               {},
	".svn":               {},
	".hg":                {},
	".idea":              {},
	".vscode":            {},
	".next":              {},
	".nuxt":              {},
	".cache":             {},
	"venv":               {},
	".venv":              {},
	"site-packages":      {},
	"migrations":         {},
	".terraform":         {},
	"Pods":               {},
	"DerivedData":        {},
	"cmake-build-debug":  {},
}

// ignoredFilenames are lock and tool-config files that carry no authored code.
var ignoredFilenames = map[string]struct{}{
	"package-lock.json":  {},
	"yarn.lock":          {},
	"pnpm-lock.yaml":     {},
	"go.sum":             {},
	"Cargo.lock":         {},
	"poetry.lock":        {},
	"Pipfile.lock":       {},
	"Gemfile.lock":       {},
	"composer.lock":      {},
	"packages.lock.json": {},
	".gitignore":         {},
	".gitattributes":     {},
	".editorconfig":      {},
	".prettierrc":        {},
	".eslintrc":          {},
	".babelrc":           {},
	".npmrc":             {},
}

// LanguageForPath maps a file path to its language via the extension
// allow-list. The second return is false when the file is not analyzable.
func LanguageForPath(p string) (string, bool) {
	ext := strings.ToLower(path.Ext(p))
	lang, ok := extLanguages[ext]
	return lang, ok
}

// Excluded reports whether a path is filtered out by the ignore tables.
func Excluded(p string) bool {
	if _, ok := ignoredFilenames[path.Base(p)]; ok {
		return true
	}
	for _, segment := range strings.Split(p, "/") {
		if _, ok := ignoredPathSegments[segment]; ok {
			return true
		}
	}
	return false
}
