package tempo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"scout/internal/capability"
	"scout/internal/tools"
)

// Provider is the traces provider for one Tempo-compatible HTTP API.
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
	return []capability.Capability{capability.Traces}
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
	if p.target.Credentials.Token != "" {
		req.Header.Set("Authorization", "Bearer "+p.target.Credentials.Token)
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

// searchResponse mirrors /api/search.
type searchResponse struct {
	Traces []struct {
		TraceID           string `json:"traceID"`
		RootServiceName   string `json:"rootServiceName"`
		RootTraceName     string `json:"rootTraceName"`
		StartTimeUnixNano string `json:"startTimeUnixNano"`
		DurationMs        int64  `json:"durationMs"`
	} `json:"traces"`
}

// SearchTraces finds recent traces for service, optionally filtered by a
// minimum duration, newest first as returned by the backend.
func (p *Provider) SearchTraces(ctx context.Context, service string, minDuration time.Duration, limit int) ([]capability.TraceSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	params := url.Values{"limit": {strconv.Itoa(limit)}}
	if service != "" {
		params.Set("tags", "service.name="+service)
	}
	if minDuration > 0 {
		params.Set("minDuration", minDuration.String())
	}

	var data searchResponse
	if err := p.get(ctx, "/api/search", params, &data); err != nil {
		return nil, err
	}

	out := make([]capability.TraceSummary, 0, len(data.Traces))
	for _, tr := range data.Traces {
		summary := capability.TraceSummary{
			TraceID:       tr.TraceID,
			RootService:   tr.RootServiceName,
			RootOperation: tr.RootTraceName,
			Duration:      time.Duration(tr.DurationMs) * time.Millisecond,
		}
		if nanos, err := strconv.ParseInt(tr.StartTimeUnixNano, 10, 64); err == nil {
			summary.Start = time.Unix(0, nanos)
		}
		out = append(out, summary)
	}
	return out, nil
}

// GetTrace fetches the raw trace document by ID.
func (p *Provider) GetTrace(ctx context.Context, traceID string) (map[string]interface{}, error) {
	if traceID == "" {
		return nil, fmt.Errorf("trace ID must not be empty")
	}
	var doc map[string]interface{}
	if err := p.get(ctx, "/api/traces/"+url.PathEscape(traceID), nil, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
