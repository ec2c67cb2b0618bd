package capability

import (
	"context"
	"time"
)

// MetricsCapability is the operation contract for metrics backends.
type MetricsCapability interface {
	Provider

	// ListMetrics returns the metric names known to the backend.
	ListMetrics(ctx context.Context) ([]string, error)

	// CurrentValue evaluates a query at the current instant.
	CurrentValue(ctx context.Context, query string) ([]InstantValue, error)

	// QueryRange evaluates a query over [start, end] at the given step.
	// Backends without range support return ErrUnsupported.
	QueryRange(ctx context.Context, query string, start, end time.Time, step time.Duration) ([]MetricSeries, error)
}

// LogsCapability is the operation contract for log backends.
type LogsCapability interface {
	Provider

	// SearchLogs runs a log query over the given window, newest first,
	// returning at most limit entries.
	SearchLogs(ctx context.Context, query string, start, end time.Time, limit int) ([]LogEntry, error)

	// ListLogGroups returns the log streams/groups available for search.
	ListLogGroups(ctx context.Context) ([]string, error)
}

// TicketsCapability is the operation contract for issue trackers.
type TicketsCapability interface {
	Provider

	// SearchIssues runs a tracker-native query, returning at most limit issues.
	SearchIssues(ctx context.Context, query string, limit int) ([]Issue, error)

	// GetIssue fetches one issue by key.
	GetIssue(ctx context.Context, key string) (*Issue, error)
}

// RepositoriesCapability is the operation contract for code hosting backends.
type RepositoriesCapability interface {
	Provider

	// SearchCode searches code in the configured repository.
	SearchCode(ctx context.Context, query string, limit int) ([]CodeMatch, error)

	// GetFileContents fetches one file at the given ref ("" = default branch).
	GetFileContents(ctx context.Context, path, ref string) (string, error)

	// ListRecentCommits returns the most recent commits on the default branch.
	ListRecentCommits(ctx context.Context, limit int) ([]Commit, error)
}

// TracesCapability is the operation contract for distributed tracing backends.
type TracesCapability interface {
	Provider

	// SearchTraces finds traces matching the given service filter.
	SearchTraces(ctx context.Context, service string, minDuration time.Duration, limit int) ([]TraceSummary, error)

	// GetTrace fetches the raw trace document by ID.
	GetTrace(ctx context.Context, traceID string) (map[string]interface{}, error)
}

// DiagnosticsCapability is the operation contract for deep instance
// diagnostics: key sampling, rebalance detection, and raw instance info.
type DiagnosticsCapability interface {
	Provider

	// SampleKeys collects a bounded, deduplicated random sample of keys.
	SampleKeys(ctx context.Context, requested int) (*KeySampleResult, error)

	// ListRebalanceActions classifies cluster actions into rebalance
	// operations per the query's filters.
	ListRebalanceActions(ctx context.Context, query RebalanceQuery) (*RebalanceReport, error)

	// InstanceInfo returns raw backend info sections keyed by section name.
	InstanceInfo(ctx context.Context, sections []string) (map[string]string, error)
}

// KnowledgeCapability is the operation contract for the agent's runbook memory.
type KnowledgeCapability interface {
	Provider

	// SearchNotes returns notes whose topic or body matches the query.
	SearchNotes(ctx context.Context, query string, limit int) ([]Note, error)

	// SaveNote stores a note and returns it with its assigned ID.
	SaveNote(ctx context.Context, topic, body string) (*Note, error)
}

// UtilitiesCapability is the operation contract for backend-free helpers.
type UtilitiesCapability interface {
	Provider

	// CurrentTime returns the current time in the given IANA zone ("" = UTC).
	CurrentTime(ctx context.Context, zone string) (*TimeInfo, error)

	// ParseDuration normalizes a human duration string.
	ParseDuration(ctx context.Context, value string) (time.Duration, error)
}
