// Package engine runs the full candidate analysis: it samples a profile's
// repositories, scores their code, matches them against a job posting and
// folds everything into one ProfileAnalysis.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gitscout/gitscout/internal/ai"
	"github.com/gitscout/gitscout/internal/githost"
	"github.com/gitscout/gitscout/internal/logger"
	"github.com/gitscout/gitscout/internal/proficiency"
	"github.com/gitscout/gitscout/internal/quality"
	"github.com/gitscout/gitscout/internal/relevance"
	"github.com/gitscout/gitscout/internal/sampler"
	"github.com/gitscout/gitscout/internal/scoring"
	"github.com/gitscout/gitscout/internal/skills"
)

// replaceable in tests
var now = time.Now

// Repositories pushed within this window count as recent activity.
const recentActivityWindow = 180 * 24 * time.Hour

const DefaultMaxComparisons = 5

// Source is the profile data the engine reads. *githost.Client satisfies it.
type Source interface {
	GetProfile(ctx context.Context, handle string) (*githost.Profile, error)
	ListRecentRepositories(ctx context.Context, handle string, limit int) ([]*githost.Repository, error)
	ListTree(ctx context.Context, handle, repo, branch string) ([]githost.TreeEntry, error)
	GetBlob(ctx context.Context, handle, repo, sha string) ([]byte, error)
	GetReadme(ctx context.Context, handle, repo string) (string, error)
	CountCommits(ctx context.Context, handle, repo string) (int, error)
}

type Config struct {
	MaxRepos       int
	MaxFiles       int
	MaxFileBytes   int
	MaxComparisons int
	Weights        scoring.Weights
	Quality        quality.Weights
}

func DefaultConfig() Config {
	return Config{
		MaxRepos:       sampler.DefaultMaxRepos,
		MaxFiles:       sampler.DefaultMaxFiles,
		MaxFileBytes:   sampler.DefaultMaxFileBytes,
		MaxComparisons: DefaultMaxComparisons,
		Weights:        scoring.DefaultWeights(),
		Quality:        quality.DefaultWeights(),
	}
}

type Engine struct {
	source     Source
	comparator ai.Comparator
	sampler    *sampler.Sampler
	analyzer   *quality.Analyzer
	cfg        Config
	logger     *zap.Logger
}

// New builds an engine. comparator may be nil; similarity reports are then
// omitted and the relevance blend falls back to local signals only.
func New(source Source, comparator ai.Comparator, logger *zap.Logger, cfg Config) *Engine {
	s := sampler.New(source, logger)
	if cfg.MaxRepos > 0 {
		s.MaxRepos = cfg.MaxRepos
	}
	if cfg.MaxFiles > 0 {
		s.MaxFiles = cfg.MaxFiles
	}
	if cfg.MaxFileBytes > 0 {
		s.MaxFileBytes = cfg.MaxFileBytes
	}

	return &Engine{
		source:     source,
		comparator: comparator,
		sampler:    s,
		analyzer:   quality.NewAnalyzer(cfg.Quality),
		cfg:        cfg,
		logger:     logger,
	}
}

// AnalyzeProfile analyzes one candidate against the job. An unknown handle
// returns githost.ErrNotFound; every other upstream failure degrades the
// result instead of aborting it, down to a valid all-zero analysis when no
// data could be fetched at all.
func (e *Engine) AnalyzeProfile(ctx context.Context, handle string, job *JobSpec) (*ProfileAnalysis, error) {
	if job == nil {
		return nil, errors.New("job spec is required")
	}

	analysis := &ProfileAnalysis{
		Handle:               handle,
		Languages:            []proficiency.Language{},
		LanguageDistribution: map[string]int{},
		Skills:               []proficiency.Skill{},
		SkillsMatch:          []string{},
		Repositories:         []*RepositoryAnalysis{},
		AnalyzedAt:           now(),
	}

	profile, err := e.source.GetProfile(ctx, handle)
	if err != nil {
		if errors.Is(err, githost.ErrNotFound) {
			return nil, err
		}
		e.logger.Warn("profile fetch failed, continuing with empty profile",
			zap.String("handle", handle),
			zap.Error(err),
		)
		profile = &githost.Profile{Handle: handle}
	}
	analysis.Profile = *profile

	samples, err := e.sampler.Sample(ctx, handle)
	if err != nil {
		if errors.Is(err, githost.ErrNotFound) {
			return nil, err
		}
		e.logger.Warn("repository listing failed, scoring without repositories",
			zap.String("handle", handle),
			zap.Error(err),
		)
		samples = nil
	}

	outcomes := make([]*RepositoryAnalysis, len(samples))
	skippedAt := make([]*SkippedRepository, len(samples))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.sampler.MaxRepos)
	for i, sample := range samples {
		g.Go(func() error {
			if sample.TreeErr != nil {
				logger.WithRepository(e.logger, sample.Repo.Name).Warn("skipping repository, file tree unavailable",
					zap.Error(sample.TreeErr),
				)
				skippedAt[i] = &SkippedRepository{
					Name:   sample.Repo.Name,
					Reason: "file tree unavailable",
				}
				return nil
			}
			outcomes[i] = e.analyzeRepository(gctx, handle, job, sample)
			return nil
		})
	}
	_ = g.Wait()

	skipped := []SkippedRepository{}
	for i := range samples {
		if outcomes[i] != nil {
			analysis.Repositories = append(analysis.Repositories, outcomes[i])
		}
		if skippedAt[i] != nil {
			skipped = append(skipped, *skippedAt[i])
		}
	}
	analysis.Skipped = skipped

	e.compareSimilarity(ctx, job, analysis.Repositories)
	e.fold(analysis, job, samples)

	return analysis, nil
}

// analyzeRepository fetches one repository's sampled files and scores it.
// Individual blob failures drop that file only.
func (e *Engine) analyzeRepository(ctx context.Context, handle string, job *JobSpec, sample *sampler.RepoSample) *RepositoryAnalysis {
	repo := sample.Repo
	log := logger.WithRepository(e.logger, repo.Name)

	files := make([]quality.SourceFile, 0, len(sample.Files))
	lines := 0
	for _, ref := range sample.Files {
		blob, err := e.source.GetBlob(ctx, handle, repo.Name, ref.SHA)
		if err != nil {
			log.Debug("skipping file, blob fetch failed",
				zap.String("path", ref.Path),
				zap.Error(err),
			)
			continue
		}
		content := string(blob)
		lines += strings.Count(content, "\n")
		files = append(files, quality.SourceFile{
			Path:      ref.Path,
			Language:  ref.Language,
			Content:   content,
			SizeBytes: len(blob),
		})
	}

	readme, err := e.source.GetReadme(ctx, handle, repo.Name)
	if err != nil {
		log.Debug("readme fetch failed", zap.Error(err))
		readme = ""
	}

	commits, err := e.source.CountCommits(ctx, handle, repo.Name)
	if err != nil {
		log.Debug("commit count failed", zap.Error(err))
		commits = 0
	}

	report := e.analyzer.Analyze(files)
	detected := skills.DetectForRepo(repo.Language, repo.Name, repo.Description, readme, repo.Topics)

	searchText := strings.ToLower(strings.Join(append([]string{
		repo.Name,
		repo.Description,
		repo.Language,
		readme,
		strings.Join(repo.Topics, " "),
	}, detected...), " "))

	// local relevance reads only what the candidate wrote about the repo
	localText := strings.ToLower(repo.Description + " " + readme)
	relevanceScore, matched := relevance.Score(job.RequiredSkills, job.Description, localText)

	log.Info("analyzed repository",
		zap.String("handle", handle),
		zap.Int("files", len(files)),
		zap.Int("quality", report.OverallScore),
		zap.Int("relevance", relevanceScore),
	)

	return &RepositoryAnalysis{
		Name:           repo.Name,
		Description:    repo.Description,
		Language:       repo.Language,
		Stars:          repo.Stars,
		Forks:          repo.Forks,
		PushedAt:       repo.PushedAt,
		FilesAnalyzed:  len(files),
		LinesOfCode:    lines,
		CommitCount:    commits,
		Quality:        report,
		Skills:         detected,
		RelevanceScore: relevanceScore,
		MatchedSkills:  matched,
		readme:         readme,
		searchText:     searchText,
	}
}

// compareSimilarity runs the comparator over the most recent repositories,
// sequentially. Failures produce a zero-score placeholder so one bad call
// never cascades.
func (e *Engine) compareSimilarity(ctx context.Context, job *JobSpec, repos []*RepositoryAnalysis) {
	if e.comparator == nil || strings.TrimSpace(job.Description) == "" {
		return
	}

	limit := e.cfg.MaxComparisons
	if limit <= 0 {
		limit = DefaultMaxComparisons
	}

	for i, repo := range repos {
		if i >= limit {
			break
		}
		report, err := e.comparator.Compare(ctx, repo.Name, repo.readme, job.Description)
		if err != nil {
			logger.WithRepository(e.logger, repo.Name).Warn("similarity comparison failed",
				zap.Error(err),
			)
			report = &ai.SimilarityReport{
				RepositoryName:  repo.Name,
				SimilarityScore: 0,
				Summary:         fmt.Sprintf("similarity unavailable: %v", err),
				KeyMatches:      []string{},
			}
		}
		repo.Similarity = report
	}
}

// fold aggregates the per-repository results into profile-level proficiency,
// scores and insights. A profile with zero analyzed repositories keeps
// all-zero scores regardless of account-level signals.
func (e *Engine) fold(analysis *ProfileAnalysis, job *JobSpec, samples []*sampler.RepoSample) {
	repos := analysis.Repositories

	facts := make([]proficiency.RepoFacts, 0, len(repos))
	for _, r := range repos {
		facts = append(facts, proficiency.RepoFacts{
			Language:       r.Language,
			LinesOfCode:    r.LinesOfCode,
			QualityScore:   r.Quality.OverallScore,
			RelevanceScore: r.RelevanceScore,
			SearchText:     r.searchText,
		})
	}

	analysis.Languages = proficiency.Languages(facts)
	analysis.LanguageDistribution = proficiency.Distribution(facts)
	analysis.Skills = proficiency.Skills(job.AllSkills(), facts)
	analysis.SkillsMatch = requiredMatches(job.RequiredSkills, analysis.Skills)

	totalCommits, totalStars, totalLines := 0, 0, 0
	for _, r := range repos {
		totalCommits += r.CommitCount
		totalStars += r.Stars
		totalLines += r.LinesOfCode
	}
	analysis.TotalCommits = totalCommits
	analysis.TotalStars = totalStars
	analysis.TotalLinesOfCode = totalLines
	analysis.Insights = Insights{
		ActivityLevel:   activityLevel(totalCommits),
		PopularityLevel: popularityLevel(totalStars),
	}
	if len(analysis.Languages) > 0 {
		analysis.Insights.PrimaryLanguage = analysis.Languages[0].Name
	}

	if len(repos) == 0 {
		return
	}

	qualitySum, complexitySum, relevanceSum := 0, 0, 0
	similaritySum, similarityCount := 0, 0
	for _, r := range repos {
		qualitySum += r.Quality.OverallScore
		complexitySum += r.Quality.ComplexityScore
		relevanceSum += r.RelevanceScore
		if r.Similarity != nil {
			similaritySum += r.Similarity.SimilarityScore
			similarityCount++
		}
	}

	n := float64(len(repos))
	inputs := scoring.ProfileInputs{
		AvgCodeQuality: float64(qualitySum) / n,
		AvgComplexity:  float64(complexitySum) / n,
		LanguageCount:  len(analysis.Languages),
		AvgRelevance:   float64(relevanceSum) / n,
		MatchedSkills:  len(analysis.SkillsMatch),
		PublicRepos:    analysis.Profile.PublicRepoCount,
		Followers:      analysis.Profile.Followers,
		RecentActivity: recentActivity(samples),
	}
	if similarityCount > 0 {
		inputs.AvgSimilarity = float64(similaritySum) / float64(similarityCount)
	}
	if !analysis.Profile.CreatedAt.IsZero() {
		inputs.AccountAgeYears = now().Sub(analysis.Profile.CreatedAt).Hours() / 24 / 365.25
	}

	analysis.Scores = e.cfg.Weights.Compute(inputs)
}

// requiredMatches narrows the matched skills to the required set, so a
// nice-to-have hit never inflates the skills match or its score term.
func requiredMatches(requiredSkills []string, skills []proficiency.Skill) []string {
	required := make(map[string]struct{}, len(requiredSkills))
	for _, s := range requiredSkills {
		required[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	matched := []string{}
	for _, name := range proficiency.Matched(skills) {
		if _, ok := required[name]; ok {
			matched = append(matched, name)
		}
	}
	return matched
}

func recentActivity(samples []*sampler.RepoSample) int {
	cutoff := now().Add(-recentActivityWindow)
	count := 0
	for _, s := range samples {
		if s.Repo.PushedAt.After(cutoff) {
			count++
		}
	}
	return count
}
