// Package sampler bounds how much of a profile is examined. It selects the
// most recently updated repositories and, per repository, a capped list of
// analyzable files from the tree listing.
package sampler

import (
	"context"

	"go.uber.org/zap"

	"github.com/gitscout/gitscout/internal/githost"
)

const (
	DefaultMaxRepos = 10
	DefaultMaxFiles = 50

	// Blobs beyond this size are skipped: generated bundles and data dumps
	// dominate above it and drown the heuristics.
	DefaultMaxFileBytes = 100 * 1024
)

// Host is the subset of the data source the sampler needs.
type Host interface {
	ListRecentRepositories(ctx context.Context, handle string, limit int) ([]*githost.Repository, error)
	ListTree(ctx context.Context, handle, repo, branch string) ([]githost.TreeEntry, error)
}

// FileRef is a selected file before its content is fetched.
type FileRef struct {
	Path     string
	SHA      string
	Size     int
	Language string
}

// RepoSample is one selected repository plus its selected files. TreeErr is
// set when the file tree could not be listed; the repository is then reported
// as skipped rather than silently analyzed as empty.
type RepoSample struct {
	Repo    *githost.Repository
	Files   []FileRef
	TreeErr error
}

type Sampler struct {
	MaxRepos     int
	MaxFiles     int
	MaxFileBytes int

	host   Host
	logger *zap.Logger
}

func New(host Host, logger *zap.Logger) *Sampler {
	return &Sampler{
		MaxRepos:     DefaultMaxRepos,
		MaxFiles:     DefaultMaxFiles,
		MaxFileBytes: DefaultMaxFileBytes,
		host:         host,
		logger:       logger,
	}
}

// Sample selects up to MaxRepos repositories, most recently pushed first, and
// up to MaxFiles qualifying files each. When more than MaxFiles files
// qualify, the first MaxFiles in listing order are kept; this trades
// precision for bounded fetch cost, it is not a ranking.
func (s *Sampler) Sample(ctx context.Context, handle string) ([]*RepoSample, error) {
	repos, err := s.host.ListRecentRepositories(ctx, handle, s.MaxRepos)
	if err != nil {
		return nil, err
	}

	samples := make([]*RepoSample, 0, len(repos))
	for _, repo := range repos {
		sample := &RepoSample{Repo: repo}

		entries, err := s.host.ListTree(ctx, handle, repo.Name, repo.DefaultBranch)
		if err != nil {
			sample.TreeErr = err
			samples = append(samples, sample)
			continue
		}

		sample.Files = s.selectFiles(entries)
		s.logger.Debug("sampled repository",
			zap.String("repo", repo.Name),
			zap.Int("tree_entries", len(entries)),
			zap.Int("selected_files", len(sample.Files)),
		)
		samples = append(samples, sample)
	}

	return samples, nil
}

func (s *Sampler) selectFiles(entries []githost.TreeEntry) []FileRef {
	files := make([]FileRef, 0, s.MaxFiles)
	for _, e := range entries {
		if len(files) >= s.MaxFiles {
			break
		}
		lang, ok := LanguageForPath(e.Path)
		if !ok || Excluded(e.Path) {
			continue
		}
		if s.MaxFileBytes > 0 && e.Size > s.MaxFileBytes {
			continue
		}
		files = append(files, FileRef{
			Path:     e.Path,
			SHA:      e.SHA,
			Size:     e.Size,
			Language: lang,
		})
	}
	return files
}
