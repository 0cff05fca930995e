package engine

import (
	"time"

	"github.com/gitscout/gitscout/internal/ai"
	"github.com/gitscout/gitscout/internal/githost"
	"github.com/gitscout/gitscout/internal/proficiency"
	"github.com/gitscout/gitscout/internal/quality"
	"github.com/gitscout/gitscout/internal/scoring"
)

// RepositoryAnalysis is the per-repository slice of a profile analysis.
type RepositoryAnalysis struct {
	Name           string               `json:"name"`
	Description    string               `json:"description,omitempty"`
	Language       string               `json:"language,omitempty"`
	Stars          int                  `json:"stars"`
	Forks          int                  `json:"forks"`
	PushedAt       time.Time            `json:"pushed_at,omitempty"`
	FilesAnalyzed  int                  `json:"files_analyzed"`
	LinesOfCode    int                  `json:"lines_of_code"`
	CommitCount    int                  `json:"commit_count"`
	Quality        *quality.Report      `json:"quality"`
	Skills         []string             `json:"skills"`
	RelevanceScore int                  `json:"relevance_score"`
	MatchedSkills  []string             `json:"matched_skills"`
	Similarity     *ai.SimilarityReport `json:"similarity,omitempty"`

	// retained for the similarity pass and proficiency folding
	readme     string
	searchText string
}

// SkippedRepository records a repository that was listed but not analyzed,
// with the reason it was passed over.
type SkippedRepository struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Insights are coarse human-readable labels derived from profile totals.
type Insights struct {
	PrimaryLanguage string `json:"primary_language,omitempty"`
	ActivityLevel   string `json:"activity_level"`
	PopularityLevel string `json:"popularity_level"`
}

// ProfileAnalysis is the complete result for one candidate. It is
// self-contained; analyses of different candidates share no state.
type ProfileAnalysis struct {
	Handle               string                 `json:"handle"`
	Profile              githost.Profile        `json:"profile"`
	Scores               scoring.ProfileScores  `json:"scores"`
	Languages            []proficiency.Language `json:"languages"`
	LanguageDistribution map[string]int         `json:"language_distribution"`
	Skills               []proficiency.Skill    `json:"skills"`
	SkillsMatch          []string               `json:"skills_match"`
	Repositories         []*RepositoryAnalysis  `json:"repositories"`
	Skipped              []SkippedRepository    `json:"skipped_repositories,omitempty"`
	TotalCommits         int                    `json:"total_commits"`
	TotalStars           int                    `json:"total_stars"`
	TotalLinesOfCode     int                    `json:"total_lines_of_code"`
	Insights             Insights               `json:"insights"`
	AnalyzedAt           time.Time              `json:"analyzed_at"`
}

const (
	activityHighCommits   = 500
	activityMediumCommits = 100

	popularityHighStars   = 100
	popularityMediumStars = 20
)

func activityLevel(totalCommits int) string {
	switch {
	case totalCommits >= activityHighCommits:
		return "High"
	case totalCommits >= activityMediumCommits:
		return "Medium"
	default:
		return "Low"
	}
}

func popularityLevel(totalStars int) string {
	switch {
	case totalStars >= popularityHighStars:
		return "High"
	case totalStars >= popularityMediumStars:
		return "Medium"
	default:
		return "Low"
	}
}
