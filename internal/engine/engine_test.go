package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gitscout/gitscout/internal/ai"
	"github.com/gitscout/gitscout/internal/githost"
)

type stubSource struct {
	profile    *githost.Profile
	profileErr error
	repos      []*githost.Repository
	reposErr   error
	trees      map[string][]githost.TreeEntry
	treeErrs   map[string]error
	blobs      map[string]string
	blobErrs   map[string]error
	readmes    map[string]string
	commits    map[string]int
}

func (s *stubSource) GetProfile(ctx context.Context, handle string) (*githost.Profile, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return s.profile, nil
}

func (s *stubSource) ListRecentRepositories(ctx context.Context, handle string, limit int) ([]*githost.Repository, error) {
	if s.reposErr != nil {
		return nil, s.reposErr
	}
	if len(s.repos) > limit {
		return s.repos[:limit], nil
	}
	return s.repos, nil
}

func (s *stubSource) ListTree(ctx context.Context, handle, repo, branch string) ([]githost.TreeEntry, error) {
	if err := s.treeErrs[repo]; err != nil {
		return nil, err
	}
	return s.trees[repo], nil
}

func (s *stubSource) GetBlob(ctx context.Context, handle, repo, sha string) ([]byte, error) {
	key := repo + "/" + sha
	if err := s.blobErrs[key]; err != nil {
		return nil, err
	}
	blob, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("no blob %s", key)
	}
	return []byte(blob), nil
}

func (s *stubSource) GetReadme(ctx context.Context, handle, repo string) (string, error) {
	return s.readmes[repo], nil
}

func (s *stubSource) CountCommits(ctx context.Context, handle, repo string) (int, error) {
	return s.commits[repo], nil
}

type stubComparator struct {
	reports map[string]*ai.SimilarityReport
	err     error
	calls   []string
}

func (s *stubComparator) Compare(ctx context.Context, repoName, readme, jobDescription string) (*ai.SimilarityReport, error) {
	s.calls = append(s.calls, repoName)
	if s.err != nil {
		return nil, s.err
	}
	if report, ok := s.reports[repoName]; ok {
		return report, nil
	}
	return &ai.SimilarityReport{RepositoryName: repoName, SimilarityScore: 50}, nil
}

var testTime = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func fixNow(t *testing.T) {
	original := now
	now = func() time.Time { return testTime }
	t.Cleanup(func() { now = original })
}

func testJob() *JobSpec {
	return &JobSpec{
		Title:          "Backend Engineer",
		Description:    "Build scalable backend services in Python and Go",
		RequiredSkills: []string{"Python", "Go"},
	}
}

// twoRepoSource builds the canonical fixture: one Python repository with an
// uncommented 200-line file holding a hardcoded secret, one Go repository
// with a commented 40-line file and a 10-line test file.
func twoRepoSource() *stubSource {
	pythonBody := strings.Repeat("value = compute(1)\n", 199) + `password = "hunter2"` + "\n"

	goBody := strings.Repeat("// add returns the sum\nfunc add(a, b int) int { return a + b }\n", 20)
	goTest := "package toolkit\n\nimport \"testing\"\n\nfunc TestAdd(t *testing.T) {\n\tif add(1, 2) != 3 {\n\t\tt.Fatal(\"wrong sum\")\n\t}\n}\n\n"

	return &stubSource{
		profile: &githost.Profile{
			Handle:          "octocat",
			PublicRepoCount: 12,
			Followers:       40,
			CreatedAt:       testTime.AddDate(-4, 0, 0),
		},
		repos: []*githost.Repository{
			{Name: "scraper", Language: "Python", Description: "web scraping utility", DefaultBranch: "main", PushedAt: testTime.AddDate(0, -1, 0)},
			{Name: "toolkit", Language: "Go", Description: "small helpers", Stars: 25, DefaultBranch: "main", PushedAt: testTime.AddDate(-1, 0, 0)},
		},
		trees: map[string][]githost.TreeEntry{
			"scraper": {{Path: "main.py", SHA: "p1", Size: len(pythonBody)}},
			"toolkit": {
				{Path: "lib.go", SHA: "g1", Size: len(goBody)},
				{Path: "lib_test.go", SHA: "g2", Size: len(goTest)},
			},
		},
		blobs: map[string]string{
			"scraper/p1": pythonBody,
			"toolkit/g1": goBody,
			"toolkit/g2": goTest,
		},
		readmes: map[string]string{"toolkit": "Helpers written in Go."},
		commits: map[string]int{"scraper": 120, "toolkit": 30},
	}
}

func newTestEngine(source Source, comparator ai.Comparator) *Engine {
	return New(source, comparator, zap.NewNop(), DefaultConfig())
}

func TestAnalyzeProfileNotFound(t *testing.T) {
	source := &stubSource{profileErr: fmt.Errorf("%w: ghost", githost.ErrNotFound)}
	e := newTestEngine(source, nil)

	_, err := e.AnalyzeProfile(context.Background(), "ghost", testJob())
	require.ErrorIs(t, err, githost.ErrNotFound)
}

func TestAnalyzeProfileRequiresJob(t *testing.T) {
	e := newTestEngine(&stubSource{}, nil)
	_, err := e.AnalyzeProfile(context.Background(), "octocat", nil)
	require.Error(t, err)
}

func TestAnalyzeProfileZeroRepositories(t *testing.T) {
	fixNow(t)

	source := &stubSource{
		profile: &githost.Profile{Handle: "octocat", PublicRepoCount: 3, Followers: 100, CreatedAt: testTime.AddDate(-5, 0, 0)},
	}
	e := newTestEngine(source, nil)

	analysis, err := e.AnalyzeProfile(context.Background(), "octocat", testJob())
	require.NoError(t, err)

	assert.Equal(t, 0, analysis.Scores.Profile)
	assert.Equal(t, 0, analysis.Scores.Technical)
	assert.Equal(t, 0, analysis.Scores.Relevance)
	assert.Equal(t, 0, analysis.Scores.CodeQuality)
	assert.Equal(t, 0, analysis.Scores.Activity)
	assert.Empty(t, analysis.Repositories)
	assert.NotNil(t, analysis.Repositories)
	assert.NotNil(t, analysis.SkillsMatch)
	assert.Equal(t, "Low", analysis.Insights.ActivityLevel)
}

func TestAnalyzeProfileDegradesOnListingFailure(t *testing.T) {
	fixNow(t)

	source := &stubSource{
		profile:  &githost.Profile{Handle: "octocat"},
		reposErr: errors.New("rate limited"),
	}
	e := newTestEngine(source, nil)

	analysis, err := e.AnalyzeProfile(context.Background(), "octocat", testJob())
	require.NoError(t, err)
	assert.Equal(t, 0, analysis.Scores.Profile)
	assert.Empty(t, analysis.Repositories)
}

func TestAnalyzeProfileEndToEnd(t *testing.T) {
	fixNow(t)

	source := twoRepoSource()
	e := newTestEngine(source, &stubComparator{})

	analysis, err := e.AnalyzeProfile(context.Background(), "octocat", testJob())
	require.NoError(t, err)
	require.Len(t, analysis.Repositories, 2)

	scraper, toolkit := analysis.Repositories[0], analysis.Repositories[1]
	require.Equal(t, "scraper", scraper.Name)
	require.Equal(t, "toolkit", toolkit.Name)

	assert.LessOrEqual(t, scraper.Quality.SecurityScore, 80)
	assert.Contains(t, scraper.Quality.Issues, "main.py: hardcoded credential")
	assert.LessOrEqual(t, scraper.Quality.DocumentationScore, 5)

	assert.Positive(t, toolkit.Quality.TestingScore)

	assert.Equal(t, 80, analysis.LanguageDistribution["Python"])
	assert.Equal(t, 20, analysis.LanguageDistribution["Go"])
	assert.Equal(t, "Python", analysis.Insights.PrimaryLanguage)
	assert.Equal(t, 150, analysis.TotalCommits)
	assert.Equal(t, 25, analysis.TotalStars)
	assert.Equal(t, "Medium", analysis.Insights.ActivityLevel)
	assert.Equal(t, "Medium", analysis.Insights.PopularityLevel)

	assert.Equal(t, 250, analysis.TotalLinesOfCode)

	assert.ElementsMatch(t, []string{"python", "go"}, analysis.SkillsMatch)
	assert.Empty(t, scraper.MatchedSkills)
	assert.Equal(t, []string{"go"}, toolkit.MatchedSkills)
	assert.Equal(t, 15, toolkit.RelevanceScore)

	for name, score := range map[string]int{
		"profile":      analysis.Scores.Profile,
		"technical":    analysis.Scores.Technical,
		"relevance":    analysis.Scores.Relevance,
		"code_quality": analysis.Scores.CodeQuality,
		"activity":     analysis.Scores.Activity,
	} {
		assert.GreaterOrEqual(t, score, 0, name)
		assert.LessOrEqual(t, score, 100, name)
	}
	assert.Positive(t, analysis.Scores.Activity)
}

func TestAnalyzeProfileIdempotent(t *testing.T) {
	fixNow(t)

	comparator := &stubComparator{reports: map[string]*ai.SimilarityReport{
		"scraper": {RepositoryName: "scraper", SimilarityScore: 70, Summary: "scraping overlap"},
		"toolkit": {RepositoryName: "toolkit", SimilarityScore: 40, Summary: "some overlap"},
	}}
	e := newTestEngine(twoRepoSource(), comparator)

	first, err := e.AnalyzeProfile(context.Background(), "octocat", testJob())
	require.NoError(t, err)
	second, err := e.AnalyzeProfile(context.Background(), "octocat", testJob())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAnalyzeProfileComparatorFailureDegrades(t *testing.T) {
	fixNow(t)

	comparator := &stubComparator{err: errors.New("deadline exceeded")}
	e := newTestEngine(twoRepoSource(), comparator)

	analysis, err := e.AnalyzeProfile(context.Background(), "octocat", testJob())
	require.NoError(t, err)

	for _, repo := range analysis.Repositories {
		require.NotNil(t, repo.Similarity)
		assert.Zero(t, repo.Similarity.SimilarityScore)
		assert.Contains(t, repo.Similarity.Summary, "similarity unavailable")
	}
	assert.Positive(t, analysis.Scores.Relevance)
}

func TestAnalyzeProfileSimilarityCappedByMaxComparisons(t *testing.T) {
	fixNow(t)

	source := twoRepoSource()
	comparator := &stubComparator{}

	cfg := DefaultConfig()
	cfg.MaxComparisons = 1
	e := New(source, comparator, zap.NewNop(), cfg)

	analysis, err := e.AnalyzeProfile(context.Background(), "octocat", testJob())
	require.NoError(t, err)

	assert.Equal(t, []string{"scraper"}, comparator.calls)
	assert.NotNil(t, analysis.Repositories[0].Similarity)
	assert.Nil(t, analysis.Repositories[1].Similarity)
}

func TestAnalyzeProfileNoSkillMentions(t *testing.T) {
	fixNow(t)

	source := twoRepoSource()
	source.repos = source.repos[:1]
	e := newTestEngine(source, nil)

	job := &JobSpec{
		Description:    "Operate container fleets",
		RequiredSkills: []string{"Kubernetes", "Terraform"},
	}

	analysis, err := e.AnalyzeProfile(context.Background(), "octocat", job)
	require.NoError(t, err)

	assert.Empty(t, analysis.SkillsMatch)
	for _, skill := range analysis.Skills {
		assert.False(t, skill.Matched)
	}
}

func TestAnalyzeProfileRelevanceReadsDescriptionAndReadmeOnly(t *testing.T) {
	fixNow(t)

	source := &stubSource{
		profile: &githost.Profile{Handle: "octocat"},
		repos: []*githost.Repository{
			{Name: "toolkit", Language: "Go", Description: "small helpers", DefaultBranch: "main", PushedAt: testTime.AddDate(0, -1, 0)},
		},
		trees: map[string][]githost.TreeEntry{
			"toolkit": {{Path: "lib.go", SHA: "g1", Size: 40}},
		},
		blobs:   map[string]string{"toolkit/g1": "func add(a, b int) int { return a + b }\n"},
		readmes: map[string]string{"toolkit": "Utility library."},
	}
	e := newTestEngine(source, nil)

	job := &JobSpec{
		Description:    "Ship reliable automation",
		RequiredSkills: []string{"Go"},
	}

	analysis, err := e.AnalyzeProfile(context.Background(), "octocat", job)
	require.NoError(t, err)
	require.Len(t, analysis.Repositories, 1)

	// neither the description nor the README mentions the skill, so the
	// repository language must not earn relevance points on its own
	repo := analysis.Repositories[0]
	assert.Equal(t, 0, repo.RelevanceScore)
	assert.Empty(t, repo.MatchedSkills)

	// the proficiency fold still reads language and technology tags
	assert.Equal(t, []string{"go"}, analysis.SkillsMatch)
}

func TestAnalyzeProfileNiceToHaveSkillsScoredNotMatched(t *testing.T) {
	fixNow(t)

	source := twoRepoSource()
	e := newTestEngine(source, nil)

	job := &JobSpec{
		Description:    "Build scraping pipelines",
		RequiredSkills: []string{"Python"},
		NiceToHave:     []string{"Go"},
	}

	analysis, err := e.AnalyzeProfile(context.Background(), "octocat", job)
	require.NoError(t, err)

	require.Len(t, analysis.Skills, 2)
	assert.Equal(t, "python", analysis.Skills[0].Name)
	assert.Equal(t, "go", analysis.Skills[1].Name)
	assert.True(t, analysis.Skills[1].Matched)
	assert.Positive(t, analysis.Skills[1].Proficiency)

	assert.Equal(t, []string{"python"}, analysis.SkillsMatch)
}

func TestAnalyzeProfileSkipsRepoOnTreeError(t *testing.T) {
	fixNow(t)

	source := twoRepoSource()
	source.treeErrs = map[string]error{"scraper": errors.New("tree truncated")}
	e := newTestEngine(source, nil)

	analysis, err := e.AnalyzeProfile(context.Background(), "octocat", testJob())
	require.NoError(t, err)

	require.Len(t, analysis.Repositories, 1)
	assert.Equal(t, "toolkit", analysis.Repositories[0].Name)
	require.Len(t, analysis.Skipped, 1)
	assert.Equal(t, "scraper", analysis.Skipped[0].Name)
	assert.Equal(t, "file tree unavailable", analysis.Skipped[0].Reason)
}

func TestAnalyzeProfileSkipsFileOnBlobError(t *testing.T) {
	fixNow(t)

	source := twoRepoSource()
	source.blobErrs = map[string]error{"toolkit/g2": errors.New("blob too large")}
	e := newTestEngine(source, nil)

	analysis, err := e.AnalyzeProfile(context.Background(), "octocat", testJob())
	require.NoError(t, err)

	require.Len(t, analysis.Repositories, 2)
	toolkit := analysis.Repositories[1]
	assert.Equal(t, 1, toolkit.FilesAnalyzed)
}

func TestJobSpecFromMap(t *testing.T) {
	spec, err := JobSpecFromMap(map[string]any{
		"title":           "SRE",
		"description":     "keep the lights on",
		"required-skills": []string{"kubernetes"},
	})
	require.NoError(t, err)
	assert.Equal(t, "SRE", spec.Title)
	assert.Equal(t, []string{"kubernetes"}, spec.RequiredSkills)
}

func TestJobSpecFromMapRejectsUnknownKeys(t *testing.T) {
	_, err := JobSpecFromMap(map[string]any{
		"description": "x",
		"skils":       []string{"typo"},
	})
	require.Error(t, err)
}

func TestJobSpecValidate(t *testing.T) {
	err := (&JobSpec{Title: "Engineer"}).Validate()
	require.Error(t, err)

	require.NoError(t, (&JobSpec{Description: "build things"}).Validate())
	require.NoError(t, (&JobSpec{RequiredSkills: []string{"go"}}).Validate())
}
