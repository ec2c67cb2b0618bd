package cluster

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"scout/internal/capability"
	"scout/pkg/logging"
)

// ClassifierConfig is the keyword knowledge the classifier runs on.
// The sets are backend-version-dependent and reverse-engineered from
// observed action logs, so they are configuration rather than
// constants; defaults cover the versions seen so far.
type ClassifierConfig struct {
	// Keywords mark an action as a rebalance when its name contains
	// one of them.
	Keywords []string

	// AmbiguousLabels are generic action names whose true nature is
	// only visible in the nested per-shard detail.
	AmbiguousLabels []string

	// ActiveStatuses is the in-progress status set for bucketing.
	ActiveStatuses []string
}

// DefaultClassifierConfig returns the observed keyword sets.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		Keywords:        []string{"rebalance", "reshard", "migrate_shard"},
		AmbiguousLabels: []string{"smupdatebdb"},
		ActiveStatuses:  []string{"queued", "starting", "running", "proceeding", "active"},
	}
}

// Classifier determines which cluster actions represent a data
// rebalance, escalating to full action detail only for entries that
// stay ambiguous after inspecting the summary.
type Classifier struct {
	client AdminClient
	cfg    ClassifierConfig

	// now is the clock; tests replace it.
	now func() time.Time
}

// NewClassifier builds a classifier over client.
func NewClassifier(client AdminClient, cfg ClassifierConfig) *Classifier {
	if len(cfg.Keywords) == 0 {
		cfg = DefaultClassifierConfig()
	}
	return &Classifier{client: client, cfg: cfg, now: time.Now}
}

// verdict is one classified action before bucketing.
type verdict struct {
	rebalance bool
	reason    string
}

// Classify lists cluster actions, classifies each, and buckets the
// rebalances into active vs recently completed per the query.
func (c *Classifier) Classify(ctx context.Context, query capability.RebalanceQuery) (*capability.RebalanceReport, error) {
	actions, err := c.client.ListActions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}

	if query.Database != "" {
		dbID, err := c.resolveDatabaseID(ctx, query.Database)
		if err != nil {
			return nil, err
		}
		actions = filterByDatabase(actions, dbID)
	}

	report := &capability.RebalanceReport{Active: []capability.RebalanceAction{}}
	includeRecent := query.RecentWindow > 0
	if includeRecent {
		report.RecentlyCompleted = []capability.RebalanceAction{}
	}

	now := c.now()
	for _, action := range actions {
		v, err := c.classifyOne(ctx, action)
		if err != nil {
			return nil, err
		}
		if !v.rebalance {
			continue
		}

		classified := capability.RebalanceAction{
			UID:    action.UID,
			Name:   action.Name,
			Status: action.Status,
			Reason: v.reason,
		}
		if created, ok := parseCreationTime(action.CreationTime); ok {
			classified.Created = created
		}

		status := strings.ToLower(action.Status)
		switch {
		case c.isActiveStatus(status):
			report.Active = append(report.Active, classified)
		case includeRecent && status == "completed":
			// Malformed creation timestamps are silently excluded
			// from the recent bucket, never raised.
			if classified.Created.IsZero() {
				logging.Debug("Classifier", "action %s has unparseable creation time %q, excluded from recent bucket",
					action.UID, action.CreationTime)
				continue
			}
			if now.Sub(classified.Created) <= query.RecentWindow {
				report.RecentlyCompleted = append(report.RecentlyCompleted, classified)
			}
		}
	}

	return report, nil
}

// classifyOne runs the ordered rule list against one action.
func (c *Classifier) classifyOne(ctx context.Context, action Action) (verdict, error) {
	// Rule 1: direct keyword in the action name.
	if kw, ok := c.matchKeyword(action.Name); ok {
		return verdict{rebalance: true, reason: fmt.Sprintf("name matched keyword %q", kw)}, nil
	}

	// Rule 2: ambiguous label, inspect nested per-shard operations.
	if !c.isAmbiguousLabel(action.Name) {
		return verdict{}, nil
	}
	if v, resolved := c.inspectNested(action); resolved {
		return v, nil
	}

	// Rule 3: summary carries no nested data; fetch the full detail
	// and re-run the inspection on it. This is the only point that
	// issues extra backend calls, and only for still-ambiguous entries.
	detail, err := c.client.GetAction(ctx, action.UID)
	if err != nil {
		return verdict{}, fmt.Errorf("fetch detail for action %s: %w", action.UID, err)
	}
	if kw, ok := c.matchKeyword(detail.Name); ok {
		return verdict{rebalance: true, reason: fmt.Sprintf("detail name matched keyword %q", kw)}, nil
	}
	if v, resolved := c.inspectNested(*detail); resolved {
		v.reason += " (from action detail)"
		return v, nil
	}
	return verdict{}, nil
}

// inspectNested checks both historical nested-operation shapes for
// keyword substrings. The second return reports whether any nested data
// was present to inspect at all.
func (c *Classifier) inspectNested(action Action) (verdict, bool) {
	if len(action.PendingOps) == 0 && len(action.ShardOps) == 0 {
		return verdict{}, false
	}

	for shard, op := range action.PendingOps {
		if kw, ok := c.matchKeyword(op.OpName); ok {
			return verdict{
				rebalance: true,
				reason:    fmt.Sprintf("pending_ops[%s].op_name matched keyword %q", shard, kw),
			}, true
		}
		if kw, ok := c.matchKeyword(op.StatusDescription); ok {
			return verdict{
				rebalance: true,
				reason:    fmt.Sprintf("pending_ops[%s].status_description matched keyword %q", shard, kw),
			}, true
		}
	}
	for i, op := range action.ShardOps {
		if kw, ok := c.matchKeyword(op.Operation); ok {
			return verdict{
				rebalance: true,
				reason:    fmt.Sprintf("shard_ops[%d].operation matched keyword %q", i, kw),
			}, true
		}
		if kw, ok := c.matchKeyword(op.Description); ok {
			return verdict{
				rebalance: true,
				reason:    fmt.Sprintf("shard_ops[%d].description matched keyword %q", i, kw),
			}, true
		}
	}
	return verdict{}, true
}

// matchKeyword scans s for the configured keywords, case-insensitive.
// Keywords are matched as substrings so "migrate_shard" also catches
// "migrate" prefixed operations in nested fields.
func (c *Classifier) matchKeyword(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	lower := strings.ToLower(s)
	for _, kw := range c.cfg.Keywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
		// Nested op names abbreviate: "migrate" alone marks a shard
		// migration even when the full "migrate_shard" token is absent.
		if head, _, found := strings.Cut(kw, "_"); found && strings.Contains(lower, head) {
			return head, true
		}
	}
	return "", false
}

func (c *Classifier) isAmbiguousLabel(name string) bool {
	lower := strings.ToLower(name)
	for _, label := range c.cfg.AmbiguousLabels {
		if strings.Contains(lower, label) {
			return true
		}
	}
	return false
}

func (c *Classifier) isActiveStatus(status string) bool {
	for _, s := range c.cfg.ActiveStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// resolveDatabaseID turns a numeric ID or database name into the ID
// used in action object references.
func (c *Classifier) resolveDatabaseID(ctx context.Context, database string) (int, error) {
	if id, err := strconv.Atoi(database); err == nil {
		return id, nil
	}
	dbs, err := c.client.ListDatabases(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolve database %q: %w", database, err)
	}
	for _, db := range dbs {
		if strings.EqualFold(db.Name, database) {
			return db.UID, nil
		}
	}
	return 0, fmt.Errorf("database %q not found", database)
}

// filterByDatabase keeps actions whose object reference matches
// "bdb:<id>".
func filterByDatabase(actions []Action, dbID int) []Action {
	want := fmt.Sprintf("bdb:%d", dbID)
	var out []Action
	for _, action := range actions {
		if action.ObjectName == want {
			out = append(out, action)
		}
	}
	return out
}

// parseCreationTime accepts the two observed timestamp encodings:
// RFC3339 and unix seconds (number rendered as string). Anything else
// is reported unparseable.
func parseCreationTime(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0), true
	}
	return time.Time{}, false
}
