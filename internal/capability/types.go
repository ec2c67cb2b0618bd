package capability

import "time"

// InstantValue is one sample from an instant metric query.
type InstantValue struct {
	Labels    map[string]string `json:"labels"`
	Value     float64           `json:"value"`
	Timestamp time.Time         `json:"timestamp"`
}

// MetricPoint is one (timestamp, value) pair of a range query result.
type MetricPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// MetricSeries is one labeled series from a range query.
type MetricSeries struct {
	Labels map[string]string `json:"labels"`
	Points []MetricPoint     `json:"points"`
}

// LogEntry is one log line with its stream labels.
type LogEntry struct {
	Timestamp time.Time         `json:"timestamp"`
	Line      string            `json:"line"`
	Labels    map[string]string `json:"labels,omitempty"`
}

// Issue is a tracker issue in backend-neutral form.
type Issue struct {
	Key      string    `json:"key"`
	Summary  string    `json:"summary"`
	Status   string    `json:"status"`
	Assignee string    `json:"assignee,omitempty"`
	Updated  time.Time `json:"updated"`
	URL      string    `json:"url,omitempty"`
}

// CodeMatch is one code search hit.
type CodeMatch struct {
	Repository string `json:"repository"`
	Path       string `json:"path"`
	Fragment   string `json:"fragment,omitempty"`
	URL        string `json:"url,omitempty"`
}

// Commit is one repository commit.
type Commit struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
}

// TraceSummary is one trace search hit.
type TraceSummary struct {
	TraceID       string        `json:"traceID"`
	RootService   string        `json:"rootService"`
	RootOperation string        `json:"rootOperation,omitempty"`
	Duration      time.Duration `json:"duration"`
	Start         time.Time     `json:"start"`
}

// KeySample is one sampled key with its backend-reported type.
type KeySample struct {
	Key  string `json:"key"`
	Type string `json:"type"`
}

// KeySampleResult is the outcome of a bounded random key sampling run.
// LimitApplied distinguishes "keyspace exhausted" from "ran out of
// budget": it is true whenever the request was capped or the time
// budget cut the run short of its target.
type KeySampleResult struct {
	Samples      []KeySample    `json:"samples"`
	TypeCounts   map[string]int `json:"typeCounts"`
	Requested    int            `json:"requested"`
	Attempts     int            `json:"attempts"`
	LimitApplied bool           `json:"limitApplied"`
}

// RebalanceQuery filters rebalance-action classification.
type RebalanceQuery struct {
	// Database restricts results to actions touching this database,
	// given as numeric ID or database name.
	Database string `json:"database,omitempty"`

	// RecentWindow bounds the "recently completed" bucket. Zero or
	// negative disables the bucket entirely.
	RecentWindow time.Duration `json:"recentWindow,omitempty"`
}

// RebalanceAction is one cluster action classified as a rebalance.
type RebalanceAction struct {
	UID     string    `json:"uid"`
	Name    string    `json:"name"`
	Status  string    `json:"status"`
	Reason  string    `json:"reason"`
	Created time.Time `json:"created,omitempty"`
}

// RebalanceReport buckets classified actions. RecentlyCompleted is nil
// when the query disabled the recent bucket.
type RebalanceReport struct {
	Active            []RebalanceAction `json:"active"`
	RecentlyCompleted []RebalanceAction `json:"recentlyCompleted,omitempty"`
}

// Note is one runbook note from the knowledge store.
type Note struct {
	ID        string    `json:"id"`
	Topic     string    `json:"topic"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// TimeInfo is the result of the current-time utility.
type TimeInfo struct {
	RFC3339 string `json:"rfc3339"`
	Unix    int64  `json:"unix"`
	Zone    string `json:"zone"`
}
