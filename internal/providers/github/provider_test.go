package github

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scout/internal/tools"
)

// newTestProvider points the SDK at a local fake via enterprise URLs,
// so all API calls land under /api/v3/.
func newTestProvider(t *testing.T, mux *http.ServeMux) *Provider {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return NewProvider(tools.Target{
		Name:        "runbooks",
		URL:         srv.URL,
		Credentials: tools.Credentials{Token: "test-token"},
		Options:     map[string]string{"owner": "acme", "repo": "runbooks"},
	}, time.Second)
}

func TestListRecentCommits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/acme/runbooks/commits", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("per_page"))
		w.Write([]byte(`[
			{"sha":"abc123","commit":{"message":"fix replica lag alert","author":{"name":"Kim Ada","date":"2026-08-20T10:00:00Z"}}},
			{"sha":"def456","commit":{"message":"add shard runbook","author":{"name":"Lee Park","date":"2026-08-19T09:00:00Z"}}}]`))
	})

	p := newTestProvider(t, mux)
	commits, err := p.ListRecentCommits(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "abc123", commits[0].SHA)
	assert.Equal(t, "fix replica lag alert", commits[0].Message)
	assert.Equal(t, "Kim Ada", commits[0].Author)
	assert.Equal(t, 2026, commits[0].Date.Year())
}

func TestGetFileContents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/acme/runbooks/contents/docs/failover.md", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "main", r.URL.Query().Get("ref"))
		encoded := base64.StdEncoding.EncodeToString([]byte("# Failover\nsteps here\n"))
		w.Write([]byte(`{"type":"file","encoding":"base64","name":"failover.md","path":"docs/failover.md","content":"` + encoded + `"}`))
	})

	p := newTestProvider(t, mux)
	content, err := p.GetFileContents(context.Background(), "docs/failover.md", "main")
	require.NoError(t, err)
	assert.Equal(t, "# Failover\nsteps here\n", content)
}

func TestSearchCodeScopesToRepository(t *testing.T) {
	var gotQuery string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/search/code", func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		w.Write([]byte(`{"total_count":1,"items":[
			{"path":"docs/failover.md",
			 "html_url":"https://github.example.com/acme/runbooks/blob/main/docs/failover.md",
			 "repository":{"full_name":"acme/runbooks"},
			 "text_matches":[{"fragment":"promote the replica"}]}]}`))
	})

	p := newTestProvider(t, mux)
	matches, err := p.SearchCode(context.Background(), "promote replica", 10)
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "repo:acme/runbooks")
	require.Len(t, matches, 1)
	assert.Equal(t, "acme/runbooks", matches[0].Repository)
	assert.Equal(t, "docs/failover.md", matches[0].Path)
	assert.Equal(t, "promote the replica", matches[0].Fragment)
}

func TestCheckHealth(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v3/repos/acme/runbooks", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"full_name":"acme/runbooks"}`))
	})

	p := newTestProvider(t, mux)
	status := p.CheckHealth(context.Background())
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "acme/runbooks", status.Detail)
}

func TestMaterializeRequiresRepository(t *testing.T) {
	typ := &Type{}
	_, err := typ.Materialize(tools.Target{Name: "runbooks"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "owner and repo")
}

func TestMaterializeToolNames(t *testing.T) {
	typ := &Type{}
	mat, err := typ.Materialize(tools.Target{
		Name:    "runbooks",
		Options: map[string]string{"owner": "acme", "repo": "runbooks"},
	})
	require.NoError(t, err)

	var names []string
	for _, d := range mat.Tools {
		names = append(names, d.Name)
	}
	assert.ElementsMatch(t, []string{
		"repo_runbooks_search_code",
		"repo_runbooks_file",
		"repo_runbooks_recent_commits",
	}, names)
}
