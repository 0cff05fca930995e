// Package skills detects technology tags in repository text. The catalog is
// a fixed keyword table per category; detection is substring-based and
// case-insensitive, optimized for breadth across ecosystems.
package skills

import (
	"sort"
	"strings"
)

var catalog = map[string][]string{
	"frontend": {
		"react", "vue", "angular", "svelte", "frontend", "html", "css",
		"javascript", "typescript", "sass", "scss", "next.js", "nuxt",
		"webpack", "vite", "tailwind", "bootstrap", "redux", "jquery",
	},
	"backend": {
		"django", "flask", "fastapi", "express", "nestjs", "spring",
		"backend", "api", "server", "node.js", "nodejs", "laravel", "rails",
		"asp.net", "dotnet", "gin", "echo", "fiber", "actix", "axum", "php",
	},
	"mobile": {
		"android", "ios", "react-native", "flutter", "swift", "kotlin",
		"mobile", "xamarin", "ionic", "expo", "swiftui", "jetpack-compose",
	},
	"ml": {
		"machine-learning", "tensorflow", "pytorch", "scikit-learn",
		"deep-learning", "data-science", "pandas", "numpy", "jupyter",
		"keras", "opencv", "computer-vision", "nlp", "transformers", "llm",
		"langchain", "huggingface", "xgboost",
	},
	"devops": {
		"docker", "kubernetes", "k8s", "aws", "gcp", "azure", "terraform",
		"ansible", "jenkins", "ci/cd", "github-actions", "helm",
		"prometheus", "grafana", "nginx", "microservices", "serverless",
	},
	"database": {
		"mongodb", "postgresql", "postgres", "mysql", "sqlite", "redis",
		"elasticsearch", "database", "sql", "nosql", "cassandra", "dynamodb",
		"firebase", "supabase", "prisma", "sequelize", "clickhouse",
	},
	"testing": {
		"jest", "mocha", "cypress", "selenium", "playwright", "puppeteer",
		"testing", "unit-test", "e2e", "tdd", "pytest", "rspec",
	},
	"tools": {
		"git", "github", "gitlab", "bitbucket", "grpc", "graphql",
		"websocket", "kafka", "rabbitmq",
	},
}

// languageImplied maps a repository's primary language to technologies it
// implies even when nothing in the text mentions them.
var languageImplied = map[string][]string{
	"JavaScript": {"javascript", "frontend"},
	"TypeScript": {"typescript", "javascript", "frontend"},
	"Python":     {"python", "backend"},
	"Java":       {"java", "backend"},
	"Swift":      {"swift", "ios", "mobile"},
	"Kotlin":     {"kotlin", "android", "mobile"},
	"Go":         {"go", "backend", "microservices"},
	"Rust":       {"rust", "backend"},
	"C++":        {"cpp"},
	"C#":         {"csharp", "dotnet", "backend"},
	"PHP":        {"php", "backend"},
	"Ruby":       {"ruby", "backend", "rails"},
	"Dart":       {"dart", "flutter", "mobile"},
	"HTML":       {"html", "frontend"},
	"CSS":        {"css", "frontend"},
}

// Detect returns the deduplicated, sorted tags found in the text.
func Detect(text string) []string {
	if text == "" {
		return nil
	}

	lower := strings.ToLower(text)
	found := make(map[string]struct{})
	for _, keywords := range catalog {
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				found[keyword] = struct{}{}
			}
		}
	}
	return sorted(found)
}

// DetectForRepo combines text detection over name, description, README and
// topics with language-implied technologies.
func DetectForRepo(language, name, description, readme string, topics []string) []string {
	found := make(map[string]struct{})

	text := strings.Join(append([]string{name, description, readme}, topics...), " ")
	for _, tag := range Detect(text) {
		found[tag] = struct{}{}
	}
	for _, tag := range languageImplied[language] {
		found[tag] = struct{}{}
	}
	return sorted(found)
}

func sorted(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
