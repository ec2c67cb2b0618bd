package loki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"scout/internal/capability"
	"scout/internal/tools"
)

// Provider is the logs provider for one Loki-compatible HTTP API.
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
	return []capability.Capability{capability.Logs}
}

func (p *Provider) client() *http.Client {
	p.once.Do(func() {
		p.httpClient = &http.Client{Timeout: p.timeout}
	})
	return p.httpClient
}

func (p *Provider) CheckHealth(ctx context.Context) capability.HealthStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.target.URL+"/ready", nil)
	if err != nil {
		return capability.Unhealthy(err)
	}
	resp, err := p.client().Do(req)
	if err != nil {
		return capability.Unhealthy(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return capability.Unhealthy(fmt.Errorf("ready endpoint returned %d", resp.StatusCode))
	}
	return capability.Healthy()
}

func (p *Provider) Close() error { return nil }

func (p *Provider) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	u := p.target.URL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if p.target.Credentials.Username != "" {
		req.SetBasicAuth(p.target.Credentials.Username, p.target.Credentials.Password)
	}
	if tenant := p.target.Options["tenant"]; tenant != "" {
		req.Header.Set("X-Scope-OrgID", tenant)
	}

	resp, err := p.client().Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// queryRangeResponse mirrors /loki/api/v1/query_range for stream results.
type queryRangeResponse struct {
	Status string `json:"status"`
	Data   struct {
		Result []struct {
			Stream map[string]string `json:"stream"`
			Values [][2]string       `json:"values"`
		} `json:"result"`
	} `json:"data"`
}

// SearchLogs runs a LogQL query over [start, end] and returns at most
// limit entries, newest first across all matched streams.
func (p *Provider) SearchLogs(ctx context.Context, query string, start, end time.Time, limit int) ([]capability.LogEntry, error) {
	if limit <= 0 {
		limit = 100
	}
	params := url.Values{
		"query":     {query},
		"start":     {strconv.FormatInt(start.UnixNano(), 10)},
		"end":       {strconv.FormatInt(end.UnixNano(), 10)},
		"limit":     {strconv.Itoa(limit)},
		"direction": {"backward"},
	}

	var data queryRangeResponse
	if err := p.get(ctx, "/loki/api/v1/query_range", params, &data); err != nil {
		return nil, err
	}
	if data.Status != "success" {
		return nil, fmt.Errorf("log query failed with status %q", data.Status)
	}

	var entries []capability.LogEntry
	for _, stream := range data.Data.Result {
		for _, v := range stream.Values {
			nanos, err := strconv.ParseInt(v[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("parse log timestamp %q: %w", v[0], err)
			}
			entries = append(entries, capability.LogEntry{
				Timestamp: time.Unix(0, nanos),
				Line:      v[1],
				Labels:    stream.Stream,
			})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Timestamp.After(entries[j].Timestamp) })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// ListLogGroups returns the values of the label that identifies streams,
// "job" unless the target overrides it.
func (p *Provider) ListLogGroups(ctx context.Context) ([]string, error) {
	label := p.target.Options["group_label"]
	if label == "" {
		label = "job"
	}

	var data struct {
		Status string   `json:"status"`
		Data   []string `json:"data"`
	}
	if err := p.get(ctx, "/loki/api/v1/label/"+url.PathEscape(label)+"/values", nil, &data); err != nil {
		return nil, err
	}
	if data.Status != "success" {
		return nil, fmt.Errorf("label values query failed with status %q", data.Status)
	}
	sort.Strings(data.Data)
	return data.Data, nil
}
