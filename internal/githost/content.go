package githost

import (
	"context"
	"fmt"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"
)

// TreeEntry is one blob in a repository's file tree.
type TreeEntry struct {
	Path string
	SHA  string
	Size int
}

// ListTree returns all blobs of the branch tree, in listing order.
func (c *Client) ListTree(ctx context.Context, handle, repo, branch string) ([]TreeEntry, error) {
	if branch == "" {
		branch = "HEAD"
	}

	tree, _, err := c.gh.Git.GetTree(ctx, handle, repo, branch, true)
	if err != nil {
		return nil, fmt.Errorf("get tree for %s/%s: %w", handle, repo, err)
	}

	entries := make([]TreeEntry, 0, len(tree.Entries))
	for _, e := range tree.Entries {
		if e.GetType() != "blob" {
			continue
		}
		entries = append(entries, TreeEntry{
			Path: e.GetPath(),
			SHA:  e.GetSHA(),
			Size: e.GetSize(),
		})
	}

	if tree.GetTruncated() {
		c.logger.Debug("tree listing truncated by upstream",
			zap.String("repo", repo),
			zap.Int("entries", len(entries)),
		)
	}

	return entries, nil
}

// GetBlob returns the raw content of a single blob.
func (c *Client) GetBlob(ctx context.Context, handle, repo, sha string) ([]byte, error) {
	content, _, err := c.gh.Git.GetBlobRaw(ctx, handle, repo, sha)
	if err != nil {
		return nil, fmt.Errorf("get blob %s from %s/%s: %w", sha, handle, repo, err)
	}
	return content, nil
}

// GetReadme returns the decoded README text, or an empty string when the
// repository has none.
func (c *Client) GetReadme(ctx context.Context, handle, repo string) (string, error) {
	readme, _, err := c.gh.Repositories.GetReadme(ctx, handle, repo, &github.RepositoryContentGetOptions{})
	if err != nil {
		if notFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("get readme for %s/%s: %w", handle, repo, err)
	}

	text, err := readme.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode readme for %s/%s: %w", handle, repo, err)
	}
	return text, nil
}
