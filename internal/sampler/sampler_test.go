package sampler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gitscout/gitscout/internal/githost"
)

type stubHost struct {
	repos   []*githost.Repository
	trees   map[string][]githost.TreeEntry
	treeErr map[string]error
}

func (s *stubHost) ListRecentRepositories(_ context.Context, _ string, limit int) ([]*githost.Repository, error) {
	if len(s.repos) > limit {
		return s.repos[:limit], nil
	}
	return s.repos, nil
}

func (s *stubHost) ListTree(_ context.Context, _, repo, _ string) ([]githost.TreeEntry, error) {
	if err := s.treeErr[repo]; err != nil {
		return nil, err
	}
	return s.trees[repo], nil
}

func TestLanguageForPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		lang string
		ok   bool
	}{
		{"cmd/main.go", "Go", true},
		{"src/App.TSX", "TypeScript", true},
		{"styles/site.scss", "SCSS", true},
		{"README.md", "", false},
		{"Makefile", "", false},
	}

	for _, tt := range tests {
		lang, ok := LanguageForPath(tt.path)
		assert.Equal(t, tt.ok, ok, tt.path)
		assert.Equal(t, tt.lang, lang, tt.path)
	}
}

func TestExcluded(t *testing.T) {
	t.Parallel()

	assert.True(t, Excluded("node_modules/lodash/index.js"))
	assert.True(t, Excluded("web/dist/bundle.js"))
	assert.True(t, Excluded("package-lock.json"))
	assert.True(t, Excluded("api/vendor/github.com/pkg/errors/errors.go"))
	assert.False(t, Excluded("internal/server/server.go"))
	assert.False(t, Excluded("distributed/tracker.py"))
}

func TestSampleCapsFilesInListingOrder(t *testing.T) {
	t.Parallel()

	entries := make([]githost.TreeEntry, 0, 60)
	for i := 0; i < 60; i++ {
		entries = append(entries, githost.TreeEntry{
			Path: fmt.Sprintf("pkg/file%02d.go", i),
			SHA:  fmt.Sprintf("sha%02d", i),
			Size: 100,
		})
	}

	host := &stubHost{
		repos: []*githost.Repository{{Name: "svc", DefaultBranch: "main"}},
		trees: map[string][]githost.TreeEntry{"svc": entries},
	}

	s := New(host, zap.NewNop())
	samples, err := s.Sample(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, samples, 1)
	require.Len(t, samples[0].Files, DefaultMaxFiles)
	assert.Equal(t, "pkg/file00.go", samples[0].Files[0].Path)
	assert.Equal(t, "pkg/file49.go", samples[0].Files[49].Path)
}

func TestSampleFiltersAndOversizedFiles(t *testing.T) {
	t.Parallel()

	host := &stubHost{
		repos: []*githost.Repository{{Name: "web", DefaultBranch: "main"}},
		trees: map[string][]githost.TreeEntry{
			"web": {
				{Path: "src/index.ts", SHA: "a", Size: 500},
				{Path: "node_modules/react/index.js", SHA: "b", Size: 500},
				{Path: "yarn.lock", SHA: "c", Size: 500},
				{Path: "assets/logo.png", SHA: "d", Size: 500},
				{Path: "src/generated.js", SHA: "e", Size: DefaultMaxFileBytes + 1},
			},
		},
	}

	s := New(host, zap.NewNop())
	samples, err := s.Sample(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, samples[0].Files, 1)
	assert.Equal(t, "src/index.ts", samples[0].Files[0].Path)
	assert.Equal(t, "TypeScript", samples[0].Files[0].Language)
}

func TestSampleKeepsRepoWithTreeError(t *testing.T) {
	t.Parallel()

	host := &stubHost{
		repos: []*githost.Repository{
			{Name: "broken", DefaultBranch: "main"},
			{Name: "fine", DefaultBranch: "main"},
		},
		trees: map[string][]githost.TreeEntry{
			"fine": {{Path: "main.go", SHA: "a", Size: 10}},
		},
		treeErr: map[string]error{"broken": errors.New("boom")},
	}

	s := New(host, zap.NewNop())
	samples, err := s.Sample(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.Error(t, samples[0].TreeErr)
	assert.NoError(t, samples[1].TreeErr)
	assert.Len(t, samples[1].Files, 1)
}
