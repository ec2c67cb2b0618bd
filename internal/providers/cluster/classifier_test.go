package cluster

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"scout/internal/capability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAdmin is a scripted AdminClient that counts detail fetches.
type fakeAdmin struct {
	actions    []Action
	details    map[string]*Action
	databases  []Database
	listErr    error
	detailErr  error
	detailHits int
}

func (f *fakeAdmin) ListActions(ctx context.Context) ([]Action, error) {
	return f.actions, f.listErr
}

func (f *fakeAdmin) GetAction(ctx context.Context, uid string) (*Action, error) {
	f.detailHits++
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	if d, ok := f.details[uid]; ok {
		return d, nil
	}
	// Detail endpoints echo the summary when nothing richer exists.
	for i := range f.actions {
		if f.actions[i].UID == uid {
			return &f.actions[i], nil
		}
	}
	return nil, fmt.Errorf("action %s not found", uid)
}

func (f *fakeAdmin) ListDatabases(ctx context.Context) ([]Database, error) {
	return f.databases, nil
}

func (f *fakeAdmin) ClusterInfo(ctx context.Context) (map[string]interface{}, error) {
	return map[string]interface{}{"name": "test-cluster"}, nil
}

func newTestClassifier(admin AdminClient) *Classifier {
	return NewClassifier(admin, DefaultClassifierConfig())
}

func recentQuery() capability.RebalanceQuery {
	return capability.RebalanceQuery{RecentWindow: time.Hour}
}

func TestDirectKeywordMatch(t *testing.T) {
	admin := &fakeAdmin{actions: []Action{
		{UID: "1", Name: "reshard_db", Status: "running"},
		{UID: "2", Name: "RebalanceCluster", Status: "queued"},
		{UID: "3", Name: "backup_db", Status: "running"},
	}}

	report, err := newTestClassifier(admin).Classify(context.Background(), recentQuery())
	require.NoError(t, err)

	require.Len(t, report.Active, 2)
	assert.Equal(t, "reshard_db", report.Active[0].Name)
	assert.Contains(t, report.Active[0].Reason, `"reshard"`)
	assert.Contains(t, report.Active[1].Reason, `"rebalance"`)
	assert.Zero(t, admin.detailHits, "direct matches never escalate")
}

func TestAmbiguousLabelWithNestedMigrate(t *testing.T) {
	admin := &fakeAdmin{actions: []Action{
		{
			UID: "1", Name: "SMUpdateBDB", Status: "running",
			PendingOps: map[string]PendingOp{
				"shard:7": {OpName: "migrate_shard", StatusDescription: "moving slots"},
			},
		},
	}}

	report, err := newTestClassifier(admin).Classify(context.Background(), recentQuery())
	require.NoError(t, err)

	require.Len(t, report.Active, 1)
	assert.Contains(t, report.Active[0].Reason, "pending_ops[shard:7].op_name",
		"reason cites the nested field that matched")
	assert.Zero(t, admin.detailHits, "nested summary data resolves without escalation")
}

func TestAmbiguousLabelSecondFieldShape(t *testing.T) {
	admin := &fakeAdmin{actions: []Action{
		{
			UID: "1", Name: "SMUpdateBDB", Status: "running",
			ShardOps: []ShardOp{{Operation: "noop"}, {Operation: "migrate", Description: ""}},
		},
	}}

	report, err := newTestClassifier(admin).Classify(context.Background(), recentQuery())
	require.NoError(t, err)

	require.Len(t, report.Active, 1)
	assert.Contains(t, report.Active[0].Reason, "shard_ops[1].operation")
}

func TestEscalationConfirmsRebalance(t *testing.T) {
	admin := &fakeAdmin{
		actions: []Action{{UID: "1", Name: "SMUpdateBDB", Status: "running"}},
		details: map[string]*Action{
			"1": {
				UID: "1", Name: "SMUpdateBDB", Status: "running",
				PendingOps: map[string]PendingOp{
					"shard:2": {StatusDescription: "rebalance in progress"},
				},
			},
		},
	}

	report, err := newTestClassifier(admin).Classify(context.Background(), recentQuery())
	require.NoError(t, err)

	require.Len(t, report.Active, 1)
	assert.Contains(t, report.Active[0].Reason, "status_description")
	assert.Contains(t, report.Active[0].Reason, "(from action detail)")
	assert.Equal(t, 1, admin.detailHits)
}

func TestEscalationUnconfirmedIsNotRebalance(t *testing.T) {
	admin := &fakeAdmin{
		actions: []Action{{UID: "1", Name: "SMUpdateBDB", Status: "running"}},
		details: map[string]*Action{
			"1": {UID: "1", Name: "SMUpdateBDB", Status: "running"},
		},
	}

	report, err := newTestClassifier(admin).Classify(context.Background(), recentQuery())
	require.NoError(t, err)

	assert.Empty(t, report.Active, "generic name with unconfirmed detail is not a rebalance")
	assert.Equal(t, 1, admin.detailHits)
}

func TestEscalationBoundedToAmbiguousEntries(t *testing.T) {
	admin := &fakeAdmin{actions: []Action{
		{UID: "1", Name: "reshard_db", Status: "running"},
		{UID: "2", Name: "backup_db", Status: "running"},
		{
			UID: "3", Name: "SMUpdateBDB", Status: "running",
			PendingOps: map[string]PendingOp{"s": {OpName: "update_config"}},
		},
		{UID: "4", Name: "SMUpdateBDB", Status: "running"},
	}}

	_, err := newTestClassifier(admin).Classify(context.Background(), recentQuery())
	require.NoError(t, err)

	assert.Equal(t, 1, admin.detailHits,
		"only the entry with neither keyword nor nested summary escalates")
}

func TestBucketingActiveVsRecent(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	admin := &fakeAdmin{actions: []Action{
		{UID: "1", Name: "reshard_db", Status: "running"},
		{UID: "2", Name: "reshard_db", Status: "completed", CreationTime: now.Add(-30 * time.Minute).Format(time.RFC3339)},
		{UID: "3", Name: "reshard_db", Status: "completed", CreationTime: now.Add(-3 * time.Hour).Format(time.RFC3339)},
		{UID: "4", Name: "reshard_db", Status: "completed", CreationTime: "yesterday-ish"},
	}}

	c := newTestClassifier(admin)
	c.now = func() time.Time { return now }

	report, err := c.Classify(context.Background(), recentQuery())
	require.NoError(t, err)

	require.Len(t, report.Active, 1)
	require.Len(t, report.RecentlyCompleted, 1, "stale and malformed-timestamp completions excluded")
	assert.Equal(t, "2", report.RecentlyCompleted[0].UID)
}

func TestRecentBucketDisabled(t *testing.T) {
	admin := &fakeAdmin{actions: []Action{
		{UID: "1", Name: "reshard_db", Status: "completed", CreationTime: time.Now().Format(time.RFC3339)},
	}}

	report, err := newTestClassifier(admin).Classify(context.Background(), capability.RebalanceQuery{})
	require.NoError(t, err)

	assert.Nil(t, report.RecentlyCompleted, "bucket omitted entirely when disabled")
	assert.Empty(t, report.Active)
}

func TestUnixSecondsCreationTime(t *testing.T) {
	now := time.Now()
	admin := &fakeAdmin{actions: []Action{
		{UID: "1", Name: "reshard_db", Status: "completed",
			CreationTime: strconv.FormatInt(now.Add(-10*time.Minute).Unix(), 10)},
	}}

	report, err := newTestClassifier(admin).Classify(context.Background(), recentQuery())
	require.NoError(t, err)
	require.Len(t, report.RecentlyCompleted, 1)
}

func TestDatabaseFilterByNameAndID(t *testing.T) {
	admin := &fakeAdmin{
		actions: []Action{
			{UID: "1", Name: "reshard_db", Status: "running", ObjectName: "bdb:3"},
			{UID: "2", Name: "reshard_db", Status: "running", ObjectName: "bdb:7"},
		},
		databases: []Database{{UID: 3, Name: "orders"}, {UID: 7, Name: "sessions"}},
	}

	// By name.
	report, err := newTestClassifier(admin).Classify(context.Background(),
		capability.RebalanceQuery{Database: "orders", RecentWindow: time.Hour})
	require.NoError(t, err)
	require.Len(t, report.Active, 1)
	assert.Equal(t, "1", report.Active[0].UID)

	// By numeric ID.
	report, err = newTestClassifier(admin).Classify(context.Background(),
		capability.RebalanceQuery{Database: "7", RecentWindow: time.Hour})
	require.NoError(t, err)
	require.Len(t, report.Active, 1)
	assert.Equal(t, "2", report.Active[0].UID)
}

func TestUnknownDatabase(t *testing.T) {
	admin := &fakeAdmin{databases: []Database{{UID: 3, Name: "orders"}}}

	_, err := newTestClassifier(admin).Classify(context.Background(),
		capability.RebalanceQuery{Database: "nope"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestListFailureSurfaces(t *testing.T) {
	admin := &fakeAdmin{listErr: errors.New("503 service unavailable")}

	_, err := newTestClassifier(admin).Classify(context.Background(), recentQuery())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list actions")
}
