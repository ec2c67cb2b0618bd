package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn serves RANDOMKEY draws from a fixed pool (cycling, so draws
// repeat like real random sampling does) and TYPE lookups from a map.
type fakeConn struct {
	pool     []string
	idx      int
	types    map[string]string
	drawErr  error
	typeErr  error
	rounds   int
	onRound  func()
	closed   bool
	doReply  string
	doErr    error
}

func (f *fakeConn) Do(ctx context.Context, cmd string, args ...string) (string, error) {
	if f.doErr != nil {
		return "", f.doErr
	}
	return f.doReply, nil
}

func (f *fakeConn) Pipeline(ctx context.Context, cmds []Command) ([]string, error) {
	f.rounds++
	if f.onRound != nil {
		f.onRound()
	}

	replies := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		switch cmd.Name {
		case "RANDOMKEY":
			if f.drawErr != nil {
				return nil, f.drawErr
			}
			if len(f.pool) == 0 {
				replies = append(replies, "")
				continue
			}
			replies = append(replies, f.pool[f.idx%len(f.pool)])
			f.idx++
		case "TYPE":
			if f.typeErr != nil {
				return nil, f.typeErr
			}
			t, ok := f.types[cmd.Args[0]]
			if !ok {
				t = "string"
			}
			replies = append(replies, t)
		default:
			return nil, fmt.Errorf("unexpected command %s", cmd.Name)
		}
	}
	return replies, nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func pool(n int) []string {
	keys := make([]string, n)
	for i := range keys {
		keys[i] = fmt.Sprintf("key:%03d", i)
	}
	return keys
}

func newTestSampler(conn Conn) *Sampler {
	return NewSampler(conn, DefaultSamplerConfig())
}

func TestSamplerDeduplicatesSmallKeyspace(t *testing.T) {
	conn := &fakeConn{
		pool:  pool(5),
		types: map[string]string{"key:000": "hash", "key:001": "list"},
	}
	s := newTestSampler(conn)

	result, err := s.Sample(context.Background(), 10)
	require.NoError(t, err)

	// Only 5 distinct keys exist; draws repeat but the sample must not.
	assert.Len(t, result.Samples, 5)
	seen := map[string]bool{}
	for _, sample := range result.Samples {
		assert.False(t, seen[sample.Key], "duplicate key %s", sample.Key)
		seen[sample.Key] = true
	}

	assert.Equal(t, 2, result.TypeCounts["hash"]+result.TypeCounts["list"])
	assert.Equal(t, 3, result.TypeCounts["string"])

	// Keyspace exhaustion is not a budget cut.
	assert.False(t, result.LimitApplied)
	assert.LessOrEqual(t, result.Attempts, 50, "attempt budget for target 10 is max(50, 50)")
}

func TestSamplerHardCap(t *testing.T) {
	conn := &fakeConn{pool: pool(400)}
	s := newTestSampler(conn)

	result, err := s.Sample(context.Background(), 500)
	require.NoError(t, err)

	assert.Len(t, result.Samples, 200, "server-enforced cap")
	assert.True(t, result.LimitApplied, "requested > maxCount sets limitApplied")
}

func TestSamplerRespectsRequestedCount(t *testing.T) {
	conn := &fakeConn{pool: pool(400)}
	s := newTestSampler(conn)

	result, err := s.Sample(context.Background(), 25)
	require.NoError(t, err)
	assert.Len(t, result.Samples, 25)
	assert.False(t, result.LimitApplied)
}

func TestSamplerTimeBudget(t *testing.T) {
	// 20 distinct keys against a target of 50: one full round cannot
	// finish, and the clock jumps past the deadline during that round.
	conn := &fakeConn{pool: pool(20)}

	current := time.Unix(1724900000, 0)
	conn.onRound = func() { current = current.Add(2 * time.Second) }

	s := newTestSampler(conn)
	s.now = func() time.Time { return current }

	result, err := s.Sample(context.Background(), 50)
	require.NoError(t, err)

	assert.True(t, result.LimitApplied, "time budget expiry sets limitApplied")
	assert.NotEmpty(t, result.Samples, "soft budget exhaustion keeps partial results")
	assert.LessOrEqual(t, len(result.Samples), 50)
}

func TestSamplerEmptyKeyspace(t *testing.T) {
	conn := &fakeConn{pool: nil}
	s := newTestSampler(conn)

	result, err := s.Sample(context.Background(), 10)
	require.NoError(t, err)

	assert.Empty(t, result.Samples)
	assert.False(t, result.LimitApplied)
	assert.Equal(t, 50, result.Attempts, "attempt budget fully spent on empty draws")
}

func TestSamplerAbortsOnBackendError(t *testing.T) {
	conn := &fakeConn{pool: pool(10), typeErr: errors.New("connection reset")}
	s := newTestSampler(conn)

	result, err := s.Sample(context.Background(), 10)
	require.Error(t, err, "hard failure yields no partial result")
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "classify key types")
}

func TestSamplerRejectsNonPositiveCount(t *testing.T) {
	s := newTestSampler(&fakeConn{})
	_, err := s.Sample(context.Background(), 0)
	assert.Error(t, err)
}
