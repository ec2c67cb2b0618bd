package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"scout/internal/capability"
	"scout/pkg/logging"

	"golang.org/x/sync/errgroup"
)

// RangeQueryOutcome is one provider's contribution to a cross-provider
// range query. Exactly one of Series, Unsupported, or Error is
// meaningful: providers without range support are marked unsupported
// rather than failed, and backend failures are captured per provider so
// the fan-out still yields partial results.
type RangeQueryOutcome struct {
	Series      []capability.MetricSeries `json:"series,omitempty"`
	Unsupported bool                      `json:"unsupported,omitempty"`
	Error       string                    `json:"error,omitempty"`
}

// QueryRangeAll fans a range query out to every provider declaring the
// metrics capability and collects one outcome per provider. Each
// sub-call runs independently; a broken or slow provider never blocks
// or corrupts another provider's result.
func (r *Registry) QueryRangeAll(ctx context.Context, query string, start, end time.Time, step time.Duration) map[string]RangeQueryOutcome {
	names := r.ProvidersFor(capability.Metrics)

	results := make(map[string]RangeQueryOutcome, len(names))
	var resultsMu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, name := range names {
		g.Go(func() error {
			outcome := r.queryRangeOne(ctx, name, query, start, end, step)
			resultsMu.Lock()
			results[name] = outcome
			resultsMu.Unlock()
			return nil
		})
	}
	// Sub-calls never return errors; failures are folded into outcomes.
	_ = g.Wait()

	return results
}

func (r *Registry) queryRangeOne(ctx context.Context, name, query string, start, end time.Time, step time.Duration) (outcome RangeQueryOutcome) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.Error("Registry", nil, "range query panicked for %s: %v", name, rec)
			outcome = RangeQueryOutcome{Error: fmt.Sprintf("provider panicked: %v", rec)}
		}
	}()

	p, ok := r.Get(name)
	if !ok {
		// Unregistered between listing and dispatch.
		return RangeQueryOutcome{Error: fmt.Sprintf("provider %s no longer registered", name)}
	}
	m, ok := p.(capability.MetricsCapability)
	if !ok {
		return RangeQueryOutcome{Error: fmt.Sprintf("provider %s does not implement metrics", name)}
	}

	series, err := m.QueryRange(ctx, query, start, end, step)
	if err != nil {
		if capability.IsUnsupported(err) {
			return RangeQueryOutcome{Unsupported: true}
		}
		return RangeQueryOutcome{Error: err.Error()}
	}
	return RangeQueryOutcome{Series: series}
}
