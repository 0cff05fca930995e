package githost

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"
)

const userAgent = "gitscout/candidate-analyzer"

// ErrNotFound is returned when the requested profile does not exist. It is
// the only upstream failure that aborts a whole analysis run.
var ErrNotFound = errors.New("profile not found")

type Client struct {
	gh     *github.Client
	logger *zap.Logger
}

// New creates a GitHub-backed data source client. An empty token is allowed;
// requests are then unauthenticated and subject to much stricter rate limits.
func New(logger *zap.Logger, token string) *Client {
	gh := github.NewClient(&http.Client{
		Timeout: 30 * time.Second,
	})
	if token != "" {
		gh = gh.WithAuthToken(token)
	}
	gh.UserAgent = userAgent

	return &Client{
		gh:     gh,
		logger: logger,
	}
}

// SetUserAgent overrides the User-Agent header sent with every request.
func (c *Client) SetUserAgent(ua string) {
	if ua != "" {
		c.gh.UserAgent = ua
	}
}

// notFound reports whether the error is an upstream 404.
func notFound(err error) bool {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
