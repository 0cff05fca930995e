// Package scoring computes the profile-level sub-scores from aggregated
// repository and account signals. The weights encode product decisions and
// are overridable via configuration.
package scoring

import "math"

type Weights struct {
	TechnicalQuality    float64 `mapstructure:"technical-quality"`
	TechnicalComplexity float64 `mapstructure:"technical-complexity"`
	TechnicalBreadth    float64 `mapstructure:"technical-breadth"`

	RelevanceLocal      float64 `mapstructure:"relevance-local"`
	RelevanceSkills     float64 `mapstructure:"relevance-skills"`
	RelevanceSimilarity float64 `mapstructure:"relevance-similarity"`

	ActivityRepos     float64 `mapstructure:"activity-repos"`
	ActivityRecent    float64 `mapstructure:"activity-recent"`
	ActivityFollowers float64 `mapstructure:"activity-followers"`
	ActivityAge       float64 `mapstructure:"activity-age"`

	// SkillNormalization fixes the matched-skill denominator at a typical
	// job's skill count instead of deriving it from the actual list. Jobs
	// with more required skills can overshoot, so the blend is clamped.
	SkillNormalization float64 `mapstructure:"skill-normalization"`
}

func DefaultWeights() Weights {
	return Weights{
		TechnicalQuality:    0.4,
		TechnicalComplexity: 0.3,
		TechnicalBreadth:    0.3,

		RelevanceLocal:      0.4,
		RelevanceSkills:     0.4,
		RelevanceSimilarity: 0.2,

		ActivityRepos:     0.3,
		ActivityRecent:    0.4,
		ActivityFollowers: 0.2,
		ActivityAge:       0.1,

		SkillNormalization: 10,
	}
}

// ProfileInputs are the aggregated signals a profile's sub-scores derive from.
type ProfileInputs struct {
	AvgCodeQuality   float64
	AvgComplexity    float64
	LanguageCount    int
	AvgRelevance     float64
	MatchedSkills    int
	AvgSimilarity    float64
	PublicRepos      int
	RecentActivity   int
	Followers        int
	AccountAgeYears  float64
}

// ProfileScores are the five top-level integers in [0,100].
type ProfileScores struct {
	Profile     int `json:"profile_score"`
	Technical   int `json:"technical_score"`
	Relevance   int `json:"relevance_score"`
	CodeQuality int `json:"code_quality_score"`
	Activity    int `json:"activity_score"`
}

// Compute blends the inputs into the five sub-scores. A profile with no
// analyzable repositories yields all zeroes.
func (w Weights) Compute(in ProfileInputs) ProfileScores {
	technical := w.TechnicalQuality*in.AvgCodeQuality +
		w.TechnicalComplexity*in.AvgComplexity +
		w.TechnicalBreadth*math.Min(100, float64(in.LanguageCount)*10)

	skillTerm := 0.0
	if w.SkillNormalization > 0 {
		skillTerm = float64(in.MatchedSkills) / w.SkillNormalization * 100
	}
	relevance := w.RelevanceLocal*in.AvgRelevance +
		w.RelevanceSkills*skillTerm +
		w.RelevanceSimilarity*in.AvgSimilarity

	activity := w.ActivityRepos*math.Min(100, float64(in.PublicRepos)*2) +
		w.ActivityRecent*math.Min(100, float64(in.RecentActivity)*5) +
		w.ActivityFollowers*math.Min(100, float64(in.Followers)) +
		w.ActivityAge*math.Min(100, in.AccountAgeYears*10)

	scores := ProfileScores{
		Technical:   clamp(technical),
		Relevance:   clamp(relevance),
		CodeQuality: clamp(in.AvgCodeQuality),
		Activity:    clamp(activity),
	}
	scores.Profile = clamp(float64(scores.Technical+scores.CodeQuality+scores.Activity) / 3)
	return scores
}

func clamp(v float64) int {
	rounded := int(math.Round(v))
	if rounded < 0 {
		return 0
	}
	if rounded > 100 {
		return 100
	}
	return rounded
}
