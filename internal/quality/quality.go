// Package quality scores a repository's sampled source files on security,
// complexity, readability, documentation and testing signals. All checks are
// textual heuristics over many languages; there is no parser and precision is
// deliberately traded for breadth.
package quality

import "math"

// SourceFile is one sampled file's content. Instances live only for the
// duration of a single Analyze call.
type SourceFile struct {
	Path      string
	Language  string
	Content   string
	SizeBytes int
}

// Report is the per-repository analysis output. Scores are integers in
// [0,100]; missing data maps to zero, never to an absent field.
type Report struct {
	OverallScore       int      `json:"overall_score"`
	ComplexityScore    int      `json:"complexity_score"`
	ReadabilityScore   int      `json:"readability_score"`
	SecurityScore      int      `json:"security_score"`
	DocumentationScore int      `json:"documentation_score"`
	TestingScore       int      `json:"testing_score"`
	Issues             []string `json:"issues"`
	Strengths          []string `json:"strengths"`
}

// Weights is the overall-score blend. The values encode a product decision
// and are overridable via configuration.
type Weights struct {
	Complexity    float64 `mapstructure:"complexity"`
	Readability   float64 `mapstructure:"readability"`
	Security      float64 `mapstructure:"security"`
	Documentation float64 `mapstructure:"documentation"`
	Testing       float64 `mapstructure:"testing"`
}

func DefaultWeights() Weights {
	return Weights{
		Complexity:    0.25,
		Readability:   0.25,
		Security:      0.25,
		Documentation: 0.15,
		Testing:       0.10,
	}
}

type Analyzer struct {
	weights Weights
}

func NewAnalyzer(weights Weights) *Analyzer {
	return &Analyzer{weights: weights}
}

// Analyze produces the quality report for one repository's files. A
// repository with zero analyzable files yields an all-zero report.
func (a *Analyzer) Analyze(files []SourceFile) *Report {
	report := &Report{
		Issues:    []string{},
		Strengths: []string{},
	}
	if len(files) == 0 {
		return report
	}

	security, securityIssues := analyzeSecurity(files)
	complexity := analyzeComplexity(files)
	readability := analyzeReadability(files)
	documentation := analyzeDocumentation(files)
	testing := analyzeTesting(files)

	report.SecurityScore = roundScore(security)
	report.ComplexityScore = roundScore(complexity)
	report.ReadabilityScore = roundScore(readability)
	report.DocumentationScore = roundScore(documentation)
	report.TestingScore = roundScore(testing)

	report.Issues = append(report.Issues, securityIssues...)
	report.Issues = append(report.Issues, structuralIssues(files)...)

	strengths, practiceIssues := practiceFindings(files)
	report.Strengths = append(report.Strengths, strengths...)
	report.Issues = append(report.Issues, practiceIssues...)

	report.OverallScore = roundScore(
		a.weights.Complexity*complexity +
			a.weights.Readability*readability +
			a.weights.Security*security +
			a.weights.Documentation*documentation +
			a.weights.Testing*testing,
	)

	return report
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func roundScore(v float64) int {
	return int(math.Round(clampScore(v)))
}
