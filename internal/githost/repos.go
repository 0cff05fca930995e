package githost

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"
)

// Repository holds the metadata the engine needs about one repository.
type Repository struct {
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Language      string    `json:"language,omitempty"`
	Stars         int       `json:"stars"`
	Forks         int       `json:"forks"`
	SizeKB        int       `json:"size_kb"`
	Topics        []string  `json:"topics,omitempty"`
	Fork          bool      `json:"fork,omitempty"`
	DefaultBranch string    `json:"default_branch,omitempty"`
	PushedAt      time.Time `json:"pushed_at,omitempty"`
}

// ListRecentRepositories returns up to limit non-fork repositories of the
// handle, most recently pushed first.
func (c *Client) ListRecentRepositories(ctx context.Context, handle string, limit int) ([]*Repository, error) {
	opts := &github.RepositoryListByUserOptions{
		Type:      "owner",
		Sort:      "pushed",
		Direction: "desc",
		ListOptions: github.ListOptions{
			PerPage: 100,
		},
	}

	repos := make([]*Repository, 0, limit)
	for {
		page, resp, err := c.gh.Repositories.ListByUser(ctx, handle, opts)
		if err != nil {
			if notFound(err) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, handle)
			}
			return nil, fmt.Errorf("list repositories for %s: %w", handle, err)
		}

		for _, r := range page {
			if r.GetFork() {
				continue
			}
			repos = append(repos, &Repository{
				Name:          r.GetName(),
				Description:   r.GetDescription(),
				Language:      r.GetLanguage(),
				Stars:         r.GetStargazersCount(),
				Forks:         r.GetForksCount(),
				SizeKB:        r.GetSize(),
				Topics:        r.Topics,
				Fork:          r.GetFork(),
				DefaultBranch: r.GetDefaultBranch(),
				PushedAt:      r.GetPushedAt().Time,
			})
			if len(repos) >= limit {
				break
			}
		}

		if len(repos) >= limit || resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	c.logger.Debug("listed repositories",
		zap.String("handle", handle),
		zap.Int("count", len(repos)),
	)

	return repos, nil
}

// CountCommits returns the number of commits authored by the handle in the
// repository, using the Link header of a single-item page to avoid paging
// through history.
func (c *Client) CountCommits(ctx context.Context, handle, repo string) (int, error) {
	opts := &github.CommitsListOptions{
		Author:      handle,
		ListOptions: github.ListOptions{PerPage: 1},
	}

	commits, resp, err := c.gh.Repositories.ListCommits(ctx, handle, repo, opts)
	if err != nil {
		return 0, fmt.Errorf("count commits for %s/%s: %w", handle, repo, err)
	}

	if resp.LastPage > 0 {
		return resp.LastPage, nil
	}
	return len(commits), nil
}
