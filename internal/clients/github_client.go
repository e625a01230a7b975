package clients

//go:generate mockgen -source=github_client.go -destination=../mocks/github_client_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"symphony/internal/models"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

var ErrInvalidRepoFormat = errors.New("invalid repository format, expected owner/repo")

type GitHubClient interface {
	FetchPullRequests(ctx context.Context, accessToken, repo string) (Result[models.PullRequest], error)
	FetchCommits(ctx context.Context, accessToken, repo string) (Result[models.Commit], error)
}

type GitHubConfig struct {
	// APIURL overrides https://api.github.com/ when set.
	APIURL  string
	PerPage int
	Timeout time.Duration
}

type githubClient struct {
	baseURL   *url.URL
	perPage   int
	timeout   time.Duration
	transport http.RoundTripper
	log       *zap.SugaredLogger
}

func NewGitHubClient(config GitHubConfig, log *zap.SugaredLogger) (GitHubClient, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(time.Minute, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	c := &githubClient{
		perPage:   config.PerPage,
		timeout:   config.Timeout,
		transport: rateLimitWaiter,
		log:       log,
	}
	if c.perPage <= 0 {
		c.perPage = 10
	}
	if config.APIURL != "" {
		raw := config.APIURL
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		c.baseURL, err = url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse github api url: %w", err)
		}
	}
	return c, nil
}

// client builds a REST client authenticated with the organization's token.
func (c *githubClient) client(accessToken string) *github.Client {
	httpClient := &http.Client{
		Timeout: c.timeout,
		Transport: &oauth2.Transport{
			Base:   c.transport,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken}),
		},
	}
	gh := github.NewClient(httpClient)
	if c.baseURL != nil {
		gh.BaseURL = c.baseURL
	}
	return gh
}

func (c *githubClient) FetchPullRequests(ctx context.Context, accessToken, repo string) (Result[models.PullRequest], error) {
	owner, name, err := ParseRepo(repo)
	if err != nil {
		return classify[models.PullRequest](c.log, "pulls", repo, err)
	}

	opts := &github.PullRequestListOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: c.perPage},
	}
	pulls, _, err := c.client(accessToken).PullRequests.List(ctx, owner, name, opts)
	if err != nil {
		return classify[models.PullRequest](c.log, "pulls", repo, err)
	}

	records := make([]models.PullRequest, 0, len(pulls))
	for _, pr := range pulls {
		records = append(records, models.PullRequest{
			ID:     pr.GetID(),
			Number: pr.GetNumber(),
			Title:  pr.GetTitle(),
			State:  pr.GetState(),
			User: models.PullRequestUser{
				Login:  pr.GetUser().GetLogin(),
				Avatar: pr.GetUser().GetAvatarURL(),
			},
			CreatedAt: pr.GetCreatedAt().Time,
			UpdatedAt: pr.GetUpdatedAt().Time,
			URL:       pr.GetHTMLURL(),
		})
	}
	return OK(records), nil
}

func (c *githubClient) FetchCommits(ctx context.Context, accessToken, repo string) (Result[models.Commit], error) {
	owner, name, err := ParseRepo(repo)
	if err != nil {
		return classify[models.Commit](c.log, "commits", repo, err)
	}

	opts := &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: c.perPage},
	}
	commits, _, err := c.client(accessToken).Repositories.ListCommits(ctx, owner, name, opts)
	if err != nil {
		return classify[models.Commit](c.log, "commits", repo, err)
	}

	records := make([]models.Commit, 0, len(commits))
	for _, rc := range commits {
		records = append(records, models.Commit{
			SHA:     rc.GetSHA(),
			Message: rc.GetCommit().GetMessage(),
			Author: models.CommitAuthor{
				Name:   rc.GetCommit().GetAuthor().GetName(),
				Avatar: rc.GetAuthor().GetAvatarURL(),
			},
			Date: rc.GetCommit().GetAuthor().GetDate().Time,
			URL:  rc.GetHTMLURL(),
		})
	}
	return OK(records), nil
}

// ParseRepo splits an "owner/repo" identifier.
func ParseRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(strings.TrimSpace(repo), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepoFormat, repo)
	}
	return parts[0], parts[1], nil
}

// classify turns an upstream failure into a Failed result and passes every other error through.
func classify[T any](log *zap.SugaredLogger, resource, target string, err error) (Result[T], error) {
	if isUpstreamFailure(err) {
		log.Warnw("upstream request failed", "resource", resource, "target", target, "error", err)
		return Failed[T](err), nil
	}
	return Result[T]{}, fmt.Errorf("fetch %s for %s: %w", resource, target, err)
}
