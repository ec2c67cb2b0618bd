package redis

import (
	"context"
	"fmt"
	"time"

	"scout/internal/capability"
	"scout/pkg/logging"
)

// SamplerConfig bounds a key sampling run. The zero value is unusable;
// use DefaultSamplerConfig.
type SamplerConfig struct {
	// MaxCount is the server-enforced hard cap on returned keys.
	MaxCount int

	// TimeLimit is the wall-clock budget for the whole run.
	TimeLimit time.Duration

	// BatchAttemptsMax caps random draws per round.
	BatchAttemptsMax int

	// OversampleFactor inflates each round's draw count to offset
	// in-round duplicates.
	OversampleFactor int
}

// DefaultSamplerConfig returns the production sampling bounds.
func DefaultSamplerConfig() SamplerConfig {
	return SamplerConfig{
		MaxCount:         200,
		TimeLimit:        time.Second,
		BatchAttemptsMax: 100,
		OversampleFactor: 3,
	}
}

// Sampler collects a bounded, deduplicated, representative key sample
// from a huge keyspace using only random-draw primitives, under a hard
// wall-clock budget. It never scans the keyspace.
type Sampler struct {
	conn Conn
	cfg  SamplerConfig

	// now is the clock; tests replace it.
	now func() time.Time
}

// NewSampler builds a sampler over conn with the given bounds.
func NewSampler(conn Conn, cfg SamplerConfig) *Sampler {
	return &Sampler{conn: conn, cfg: cfg, now: time.Now}
}

// Sample runs the bounded randomized collection loop. Results are best
// effort: reaching the target is not guaranteed, and LimitApplied tells
// the caller whether a budget (count cap or time) cut the run short.
// Any backend error aborts the run; partial results are returned only
// on soft budget exhaustion, never on hard failure.
func (s *Sampler) Sample(ctx context.Context, requested int) (*capability.KeySampleResult, error) {
	if requested <= 0 {
		return nil, fmt.Errorf("requested key count must be positive, got %d", requested)
	}

	target := requested
	limitApplied := false
	if target > s.cfg.MaxCount {
		target = s.cfg.MaxCount
		limitApplied = true
	}

	attemptsMax := 50
	if target*5 > attemptsMax {
		attemptsMax = target * 5
	}

	start := s.now()
	deadline := start.Add(s.cfg.TimeLimit)

	seen := make(map[string]bool, target)
	samples := make([]capability.KeySample, 0, target)
	typeCounts := make(map[string]int)
	attempts := 0
	timedOut := false

	for len(samples) < target && attempts < attemptsMax {
		if !s.now().Before(deadline) {
			timedOut = true
			break
		}

		remaining := target - len(samples)
		toAttempt := remaining * s.cfg.OversampleFactor
		if toAttempt < 10 {
			toAttempt = 10
		}
		if toAttempt > s.cfg.BatchAttemptsMax {
			toAttempt = s.cfg.BatchAttemptsMax
		}
		if toAttempt > attemptsMax-attempts {
			toAttempt = attemptsMax - attempts
		}

		draws := make([]Command, toAttempt)
		for i := range draws {
			draws[i] = Command{Name: "RANDOMKEY"}
		}
		keys, err := s.conn.Pipeline(ctx, draws)
		if err != nil {
			return nil, fmt.Errorf("random key draw: %w", err)
		}
		attempts += toAttempt

		// Dedup within the round and against everything sampled so
		// far; empty replies mean an empty keyspace draw.
		fresh := make([]string, 0, remaining)
		for _, key := range keys {
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			if len(fresh) < remaining {
				fresh = append(fresh, key)
			}
		}
		if len(fresh) == 0 {
			continue
		}

		typeCmds := make([]Command, len(fresh))
		for i, key := range fresh {
			typeCmds[i] = Command{Name: "TYPE", Args: []string{key}}
		}
		types, err := s.conn.Pipeline(ctx, typeCmds)
		if err != nil {
			return nil, fmt.Errorf("classify key types: %w", err)
		}

		for i, key := range fresh {
			samples = append(samples, capability.KeySample{Key: key, Type: types[i]})
			typeCounts[types[i]]++
		}
	}

	if timedOut && len(samples) < target {
		limitApplied = true
	}

	logging.Debug("Sampler", "sampled %d/%d keys in %d attempts (limitApplied=%v)",
		len(samples), target, attempts, limitApplied)

	return &capability.KeySampleResult{
		Samples:      samples,
		TypeCounts:   typeCounts,
		Requested:    requested,
		Attempts:     attempts,
		LimitApplied: limitApplied,
	}, nil
}
