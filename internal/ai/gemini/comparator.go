package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/gitscout/gitscout/internal/ai"
	"github.com/gitscout/gitscout/internal/utils"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type Comparator struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200

	// README bodies are truncated before prompting so one enormous file
	// cannot dominate the token budget.
	maxReadmeChars = 4000
)

func NewComparator(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Comparator {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Comparator{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Compare asks the model how closely one repository matches the job
// description and parses the structured verdict.
func (c *Comparator) Compare(ctx context.Context, repoName, readme, jobDescription string) (*ai.SimilarityReport, error) {
	if strings.TrimSpace(repoName) == "" {
		return nil, fmt.Errorf("repository name is required")
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, fmt.Errorf("job description is required")
	}

	if utf8.RuneCountInString(readme) > maxReadmeChars {
		readme = string([]rune(readme)[:maxReadmeChars])
	}

	prompt := buildPrompt(repoName, readme, jobDescription)

	c.logger.Debug("gemini compare request",
		zap.String("repository", repoName),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, c.maxLogLen)),
	)

	raw, err := c.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("gemini compare response",
		zap.String("repository", repoName),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, c.maxLogLen)),
	)

	report, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	report.RepositoryName = repoName
	report.Raw = raw
	return report, nil
}

func buildPrompt(repoName, readme, jobDescription string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Repository: {{REPOSITORY}}\n\nREADME:\n{{README}}\n\nJob description:\n{{JOB_DESCRIPTION}}\n\nJSON Response:"
	}
	prompt := strings.ReplaceAll(template, "{{REPOSITORY}}", repoName)
	prompt = strings.ReplaceAll(prompt, "{{README}}", readme)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", jobDescription)
	return prompt
}

func parseResponse(raw string) (*ai.SimilarityReport, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	score := coerceFloat(data["similarity_score"])
	if math.IsNaN(score) {
		score = 0
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &ai.SimilarityReport{
		SimilarityScore: int(math.Round(score)),
		Summary:         coerceString(data["summary"]),
		KeyMatches:      coerceStringSlice(data["key_matches"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
