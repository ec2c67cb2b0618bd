package github

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	gogithub "github.com/google/go-github/v69/github"

	"scout/internal/capability"
	"scout/internal/tools"
	"scout/pkg/logging"
)

// Provider is the repositories provider for one GitHub repository,
// backed by the go-github SDK. The SDK client is created lazily.
type Provider struct {
	target  tools.Target
	owner   string
	repo    string
	timeout time.Duration

	once     sync.Once
	sdk      *gogithub.Client
	buildErr error
}

// NewProvider builds a provider for target. Construction performs no I/O.
// The repository to serve comes from target options "owner" and "repo".
func NewProvider(target tools.Target, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Provider{
		target:  target,
		owner:   target.Options["owner"],
		repo:    target.Options["repo"],
		timeout: timeout,
	}
}

func (p *Provider) Capabilities() []capability.Capability {
	return []capability.Capability{capability.Repositories}
}

func (p *Provider) client() (*gogithub.Client, error) {
	p.once.Do(func() {
		c := gogithub.NewClient(&http.Client{Timeout: p.timeout})
		if token := p.target.Credentials.Token; token != "" {
			c = c.WithAuthToken(token)
		}
		if p.target.URL != "" {
			var err error
			c, err = c.WithEnterpriseURLs(p.target.URL, p.target.URL)
			if err != nil {
				p.buildErr = fmt.Errorf("enterprise base URL %q: %w", p.target.URL, err)
				return
			}
		}
		p.sdk = c
	})
	return p.sdk, p.buildErr
}

// checkRateLimit warns once remaining API calls run low.
func (p *Provider) checkRateLimit(resp *gogithub.Response) {
	if resp != nil && resp.Rate.Remaining < 100 {
		logging.Warn("github", "rate limit low for %s: %d calls remaining until %s",
			p.target.Name, resp.Rate.Remaining, resp.Rate.Reset.Time)
	}
}

func (p *Provider) CheckHealth(ctx context.Context) capability.HealthStatus {
	c, err := p.client()
	if err != nil {
		return capability.Unhealthy(err)
	}
	repo, resp, err := c.Repositories.Get(ctx, p.owner, p.repo)
	if err != nil {
		return capability.Unhealthy(err)
	}
	p.checkRateLimit(resp)
	return capability.HealthStatus{Status: capability.StatusOK, Detail: repo.GetFullName()}
}

func (p *Provider) Close() error { return nil }

// SearchCode searches code in the configured repository.
func (p *Provider) SearchCode(ctx context.Context, query string, limit int) ([]capability.CodeMatch, error) {
	if limit <= 0 {
		limit = 30
	}
	c, err := p.client()
	if err != nil {
		return nil, err
	}

	qualified := fmt.Sprintf("%s repo:%s/%s", query, p.owner, p.repo)
	opts := &gogithub.SearchOptions{
		TextMatch:   true,
		ListOptions: gogithub.ListOptions{PerPage: limit},
	}
	result, resp, err := c.Search.Code(ctx, qualified, opts)
	if err != nil {
		return nil, fmt.Errorf("search code: %w", err)
	}
	p.checkRateLimit(resp)

	matches := make([]capability.CodeMatch, 0, len(result.CodeResults))
	for _, item := range result.CodeResults {
		m := capability.CodeMatch{
			Repository: item.GetRepository().GetFullName(),
			Path:       item.GetPath(),
			URL:        item.GetHTMLURL(),
		}
		if len(item.TextMatches) > 0 {
			m.Fragment = item.TextMatches[0].GetFragment()
		}
		matches = append(matches, m)
		if len(matches) == limit {
			break
		}
	}
	return matches, nil
}

// GetFileContents fetches one file at ref; empty ref means the default branch.
func (p *Provider) GetFileContents(ctx context.Context, path, ref string) (string, error) {
	c, err := p.client()
	if err != nil {
		return "", err
	}

	var opts *gogithub.RepositoryContentGetOptions
	if ref != "" {
		opts = &gogithub.RepositoryContentGetOptions{Ref: ref}
	}
	file, _, resp, err := c.Repositories.GetContents(ctx, p.owner, p.repo, path, opts)
	if err != nil {
		return "", fmt.Errorf("get contents %s: %w", path, err)
	}
	p.checkRateLimit(resp)
	if file == nil {
		return "", fmt.Errorf("%s is a directory, not a file", path)
	}
	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode contents %s: %w", path, err)
	}
	return content, nil
}

// ListRecentCommits returns the most recent commits on the default branch.
func (p *Provider) ListRecentCommits(ctx context.Context, limit int) ([]capability.Commit, error) {
	if limit <= 0 {
		limit = 20
	}
	c, err := p.client()
	if err != nil {
		return nil, err
	}

	opts := &gogithub.CommitsListOptions{ListOptions: gogithub.ListOptions{PerPage: limit}}
	results, resp, err := c.Repositories.ListCommits(ctx, p.owner, p.repo, opts)
	if err != nil {
		return nil, fmt.Errorf("list commits: %w", err)
	}
	p.checkRateLimit(resp)

	commits := make([]capability.Commit, 0, len(results))
	for _, r := range results {
		commit := capability.Commit{
			SHA:     r.GetSHA(),
			Message: r.GetCommit().GetMessage(),
		}
		if author := r.GetCommit().GetAuthor(); author != nil {
			commit.Author = author.GetName()
			commit.Date = author.GetDate().Time
		}
		commits = append(commits, commit)
	}
	return commits, nil
}
