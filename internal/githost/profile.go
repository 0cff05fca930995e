package githost

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Profile is the account metadata fetched once per analysis run.
type Profile struct {
	Handle          string    `json:"handle"`
	PublicRepoCount int       `json:"public_repo_count"`
	Followers       int       `json:"followers"`
	CreatedAt       time.Time `json:"created_at"`
}

func (c *Client) GetProfile(ctx context.Context, handle string) (*Profile, error) {
	user, _, err := c.gh.Users.Get(ctx, handle)
	if err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, handle)
		}
		return nil, fmt.Errorf("get profile %s: %w", handle, err)
	}

	profile := &Profile{
		Handle:          user.GetLogin(),
		PublicRepoCount: user.GetPublicRepos(),
		Followers:       user.GetFollowers(),
		CreatedAt:       user.GetCreatedAt().Time,
	}

	c.logger.Debug("fetched profile",
		zap.String("handle", profile.Handle),
		zap.Int("public_repos", profile.PublicRepoCount),
		zap.Int("followers", profile.Followers),
	)

	return profile, nil
}
