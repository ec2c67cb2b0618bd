package tempo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scout/internal/tools"
)

func TestSearchTraces(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "service.name=checkout", q.Get("tags"))
		assert.Equal(t, "500ms", q.Get("minDuration"))
		assert.Equal(t, "5", q.Get("limit"))
		w.Write([]byte(`{"traces":[
			{"traceID":"1a2b3c","rootServiceName":"checkout","rootTraceName":"POST /pay",
			 "startTimeUnixNano":"1700000000000000000","durationMs":750}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewProvider(tools.Target{Name: "tracing", URL: srv.URL}, time.Second)
	traces, err := p.SearchTraces(context.Background(), "checkout", 500*time.Millisecond, 5)
	require.NoError(t, err)
	require.Len(t, traces, 1)
	assert.Equal(t, "1a2b3c", traces[0].TraceID)
	assert.Equal(t, "checkout", traces[0].RootService)
	assert.Equal(t, "POST /pay", traces[0].RootOperation)
	assert.Equal(t, 750*time.Millisecond, traces[0].Duration)
	assert.Equal(t, int64(1700000000), traces[0].Start.Unix())
}

func TestGetTrace(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/traces/1a2b3c", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"batches":[{"resource":{}}]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewProvider(tools.Target{Name: "tracing", URL: srv.URL}, time.Second)
	doc, err := p.GetTrace(context.Background(), "1a2b3c")
	require.NoError(t, err)
	assert.Contains(t, doc, "batches")
}

func TestGetTraceEmptyID(t *testing.T) {
	p := NewProvider(tools.Target{Name: "tracing", URL: "http://unused.invalid"}, time.Second)
	_, err := p.GetTrace(context.Background(), "")
	require.Error(t, err)
}

func TestSearchTracesBackendFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/search", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := NewProvider(tools.Target{Name: "tracing", URL: srv.URL}, time.Second)
	_, err := p.SearchTraces(context.Background(), "checkout", 0, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestMaterializeToolNames(t *testing.T) {
	typ := &Type{}
	mat, err := typ.Materialize(tools.Target{Name: "tracing", URL: "http://tempo:3200"})
	require.NoError(t, err)

	var names []string
	for _, d := range mat.Tools {
		names = append(names, d.Name)
	}
	assert.ElementsMatch(t, []string{"traces_tracing_search", "traces_tracing_get"}, names)
}
