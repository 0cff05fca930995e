package ai

import "context"

// SimilarityReport is a model-produced judgement of how closely one
// repository matches a job description.
type SimilarityReport struct {
	RepositoryName  string   `json:"repository_name"`
	SimilarityScore int      `json:"similarity_score"`
	Summary         string   `json:"summary"`
	KeyMatches      []string `json:"key_matches"`
	Raw             string   `json:"-"`
}

type Comparator interface {
	Compare(ctx context.Context, repoName, readme, jobDescription string) (*SimilarityReport, error)
}
