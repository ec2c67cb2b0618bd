package prometheus

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

// Provider is the metrics provider for one Prometheus-compatible
// HTTP API. The underlying http.Client is created lazily.
type Provider struct {
	target  tools.Target
	timeout time.Duration

	// rangeQueries is false for backends that only serve instant
	// queries; QueryRange then reports ErrUnsupported.
	rangeQueries bool

	once       sync.Once
	httpClient *http.Client
}

// NewProvider builds a provider for target. Construction performs no I/O.
func NewProvider(target tools.Target, timeout time.Duration, rangeQueries bool) *Provider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Provider{target: target, timeout: timeout, rangeQueries: rangeQueries}
}

func (p *Provider) Capabilities() []capability.Capability {
	return []capability.Capability{capability.Metrics}
}

func (p *Provider) client() *http.Client {
	p.once.Do(func() {
		p.httpClient = &http.Client{Timeout: p.timeout}
	})
	return p.httpClient
}

func (p *Provider) CheckHealth(ctx context.Context) capability.HealthStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.target.URL+"/-/healthy", nil)
	if err != nil {
		return capability.Unhealthy(err)
	}
	resp, err := p.client().Do(req)
	if err != nil {
		return capability.Unhealthy(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return capability.Unhealthy(fmt.Errorf("health endpoint returned %d", resp.StatusCode))
	}
	return capability.Healthy()
}

func (p *Provider) Close() error { return nil }

// apiResponse is the envelope every Prometheus API endpoint returns.
type apiResponse struct {
	Status string          `json:"status"`
	Error  string          `json:"error,omitempty"`
	Data   json.RawMessage `json:"data"`
}

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

	resp, err := p.client().Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, string(body))
	}

	var envelope apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	if envelope.Status != "success" {
		return fmt.Errorf("%s query failed: %s", path, envelope.Error)
	}
	return json.Unmarshal(envelope.Data, out)
}

// ListMetrics returns the metric names the backend knows.
func (p *Provider) ListMetrics(ctx context.Context) ([]string, error) {
	var names []string
	if err := p.get(ctx, "/api/v1/label/__name__/values", nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// instantResult mirrors the vector result of /api/v1/query.
type instantResult struct {
	Result []struct {
		Metric map[string]string `json:"metric"`
		Value  [2]interface{}    `json:"value"`
	} `json:"result"`
}

// CurrentValue evaluates query at the current instant.
func (p *Provider) CurrentValue(ctx context.Context, query string) ([]capability.InstantValue, error) {
	params := url.Values{"query": {query}}
	var data instantResult
	if err := p.get(ctx, "/api/v1/query", params, &data); err != nil {
		return nil, err
	}

	out := make([]capability.InstantValue, 0, len(data.Result))
	for _, r := range data.Result {
		ts, value, err := parsePoint(r.Value)
		if err != nil {
			return nil, fmt.Errorf("parse sample: %w", err)
		}
		out = append(out, capability.InstantValue{Labels: r.Metric, Value: value, Timestamp: ts})
	}
	return out, nil
}

// rangeResult mirrors the matrix result of /api/v1/query_range.
type rangeResult struct {
	Result []struct {
		Metric map[string]string `json:"metric"`
		Values [][2]interface{}  `json:"values"`
	} `json:"result"`
}

// QueryRange evaluates query over [start, end] at the given step.
func (p *Provider) QueryRange(ctx context.Context, query string, start, end time.Time, step time.Duration) ([]capability.MetricSeries, error) {
	if !p.rangeQueries {
		return nil, fmt.Errorf("range queries: %w", capability.ErrUnsupported)
	}

	params := url.Values{
		"query": {query},
		"start": {strconv.FormatInt(start.Unix(), 10)},
		"end":   {strconv.FormatInt(end.Unix(), 10)},
		"step":  {strconv.FormatInt(int64(step.Seconds()), 10)},
	}
	var data rangeResult
	if err := p.get(ctx, "/api/v1/query_range", params, &data); err != nil {
		return nil, err
	}

	out := make([]capability.MetricSeries, 0, len(data.Result))
	for _, r := range data.Result {
		series := capability.MetricSeries{Labels: r.Metric, Points: make([]capability.MetricPoint, 0, len(r.Values))}
		for _, v := range r.Values {
			ts, value, err := parsePoint(v)
			if err != nil {
				return nil, fmt.Errorf("parse sample: %w", err)
			}
			series.Points = append(series.Points, capability.MetricPoint{Timestamp: ts, Value: value})
		}
		out = append(out, series)
	}
	return out, nil
}

// parsePoint decodes the [unix_seconds, "value"] pair format.
func parsePoint(pair [2]interface{}) (time.Time, float64, error) {
	secs, ok := pair[0].(float64)
	if !ok {
		return time.Time{}, 0, fmt.Errorf("unexpected timestamp %v", pair[0])
	}
	raw, ok := pair[1].(string)
	if !ok {
		return time.Time{}, 0, fmt.Errorf("unexpected value %v", pair[1])
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("parse value %q: %w", raw, err)
	}
	return time.Unix(int64(secs), int64((secs-float64(int64(secs)))*1e9)), value, nil
}
