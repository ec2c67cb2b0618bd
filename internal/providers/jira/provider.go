package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"scout/internal/capability"
	"scout/internal/tools"
)

// Provider is the tickets provider for one Jira Cloud/Server instance.
type Provider struct {
	target  tools.Target
	timeout time.Duration

	once       sync.Once
	httpClient *http.Client
}

// NewProvider builds a provider for target. Construction performs no I/O.
func NewProvider(target tools.Target, timeout time.Duration) *Provider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Provider{target: target, timeout: timeout}
}

func (p *Provider) Capabilities() []capability.Capability {
	return []capability.Capability{capability.Tickets}
}

func (p *Provider) client() *http.Client {
	p.once.Do(func() {
		p.httpClient = &http.Client{Timeout: p.timeout}
	})
	return p.httpClient
}

func (p *Provider) CheckHealth(ctx context.Context) capability.HealthStatus {
	var info struct {
		Version string `json:"version"`
	}
	if err := p.do(ctx, http.MethodGet, "/rest/api/2/serverInfo", nil, &info); err != nil {
		return capability.Unhealthy(err)
	}
	return capability.HealthStatus{Status: capability.StatusOK, Detail: "version " + info.Version}
}

func (p *Provider) Close() error { return nil }

func (p *Provider) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.target.URL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	switch {
	case p.target.Credentials.Token != "" && p.target.Credentials.Username != "":
		// Jira Cloud: email + API token via basic auth.
		req.SetBasicAuth(p.target.Credentials.Username, p.target.Credentials.Token)
	case p.target.Credentials.Token != "":
		req.Header.Set("Authorization", "Bearer "+p.target.Credentials.Token)
	case p.target.Credentials.Username != "":
		req.SetBasicAuth(p.target.Credentials.Username, p.target.Credentials.Password)
	}

	resp, err := p.client().Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, string(msg))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// jiraIssue is the subset of the issue document scout consumes.
type jiraIssue struct {
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
		Status  struct {
			Name string `json:"name"`
		} `json:"status"`
		Assignee *struct {
			DisplayName string `json:"displayName"`
		} `json:"assignee"`
		Updated string `json:"updated"`
	} `json:"fields"`
}

// jiraTimeLayout is Jira's REST timestamp format.
const jiraTimeLayout = "2006-01-02T15:04:05.000-0700"

func (p *Provider) convert(raw jiraIssue) capability.Issue {
	issue := capability.Issue{
		Key:     raw.Key,
		Summary: raw.Fields.Summary,
		Status:  raw.Fields.Status.Name,
		URL:     p.target.URL + "/browse/" + raw.Key,
	}
	if raw.Fields.Assignee != nil {
		issue.Assignee = raw.Fields.Assignee.DisplayName
	}
	if ts, err := time.Parse(jiraTimeLayout, raw.Fields.Updated); err == nil {
		issue.Updated = ts
	}
	return issue
}

// SearchIssues runs a JQL query, returning at most limit issues.
func (p *Provider) SearchIssues(ctx context.Context, query string, limit int) ([]capability.Issue, error) {
	if limit <= 0 {
		limit = 25
	}
	var result struct {
		Issues []jiraIssue `json:"issues"`
	}
	body := map[string]interface{}{
		"jql":        query,
		"maxResults": limit,
		"fields":     []string{"summary", "status", "assignee", "updated"},
	}
	if err := p.do(ctx, http.MethodPost, "/rest/api/2/search", body, &result); err != nil {
		return nil, err
	}

	issues := make([]capability.Issue, 0, len(result.Issues))
	for _, raw := range result.Issues {
		issues = append(issues, p.convert(raw))
	}
	return issues, nil
}

// GetIssue fetches one issue by its key.
func (p *Provider) GetIssue(ctx context.Context, key string) (*capability.Issue, error) {
	var raw jiraIssue
	path := "/rest/api/2/issue/" + url.PathEscape(key) + "?fields=summary,status,assignee,updated"
	if err := p.do(ctx, http.MethodGet, path, nil, &raw); err != nil {
		return nil, err
	}
	issue := p.convert(raw)
	return &issue, nil
}
