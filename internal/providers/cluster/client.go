package cluster

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PendingOp is the older nested per-shard operation shape, keyed by
// shard ID in the action summary.
type PendingOp struct {
	OpName            string `json:"op_name"`
	StatusDescription string `json:"status_description"`
}

// ShardOp is the newer nested per-shard operation shape, carried as a
// list in the action summary.
type ShardOp struct {
	Operation   string `json:"operation"`
	Description string `json:"description"`
}

// Action is one cluster action record. Only the fields feeding
// rebalance classification are modeled; the backend's full shape is an
// opaque collaborator.
type Action struct {
	UID          string               `json:"action_uid"`
	Name         string               `json:"name"`
	Status       string               `json:"status"`
	CreationTime string               `json:"creation_time,omitempty"`
	ObjectName   string               `json:"object_name,omitempty"` // e.g. "bdb:3"
	PendingOps   map[string]PendingOp `json:"pending_ops,omitempty"`
	ShardOps     []ShardOp            `json:"shard_ops,omitempty"`
}

// Database is one managed database, enough to resolve names to IDs.
type Database struct {
	UID  int    `json:"uid"`
	Name string `json:"name"`
}

// AdminClient is the narrow cluster-admin REST surface the provider
// depends on.
type AdminClient interface {
	// ListActions returns current and recent cluster actions.
	ListActions(ctx context.Context) ([]Action, error)

	// GetAction fetches one action's full detail by UID.
	GetAction(ctx context.Context, uid string) (*Action, error)

	// ListDatabases returns the managed databases.
	ListDatabases(ctx context.Context) ([]Database, error)

	// ClusterInfo returns the raw cluster document.
	ClusterInfo(ctx context.Context) (map[string]interface{}, error)
}

// httpAdminClient talks to the cluster-admin REST API with basic auth.
// Admin endpoints commonly sit behind self-signed certificates, so TLS
// verification is optional.
type httpAdminClient struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

// NewAdminClient builds an AdminClient for baseURL.
func NewAdminClient(baseURL, username, password string, timeout time.Duration, insecureTLS bool) AdminClient {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	transport := http.DefaultTransport
	if insecureTLS {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &httpAdminClient{
		baseURL:  baseURL,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (c *httpAdminClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *httpAdminClient) ListActions(ctx context.Context) ([]Action, error) {
	var actions []Action
	if err := c.get(ctx, "/v1/actions", &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

func (c *httpAdminClient) GetAction(ctx context.Context, uid string) (*Action, error) {
	var action Action
	if err := c.get(ctx, "/v1/actions/"+uid, &action); err != nil {
		return nil, err
	}
	return &action, nil
}

func (c *httpAdminClient) ListDatabases(ctx context.Context) ([]Database, error) {
	var dbs []Database
	if err := c.get(ctx, "/v1/bdbs", &dbs); err != nil {
		return nil, err
	}
	return dbs, nil
}

func (c *httpAdminClient) ClusterInfo(ctx context.Context) (map[string]interface{}, error) {
	var info map[string]interface{}
	if err := c.get(ctx, "/v1/cluster", &info); err != nil {
		return nil, err
	}
	return info, nil
}
