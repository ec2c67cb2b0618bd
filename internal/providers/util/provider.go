package util

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"scout/internal/capability"
)

// Provider implements the backend-free utility helpers. It holds no
// connections and is always healthy.
type Provider struct {
	// now is swappable for tests.
	now func() time.Time
}

// NewProvider builds the utilities provider.
func NewProvider() *Provider {
	return &Provider{now: time.Now}
}

func (p *Provider) Capabilities() []capability.Capability {
	return []capability.Capability{capability.Utilities}
}

func (p *Provider) CheckHealth(ctx context.Context) capability.HealthStatus {
	return capability.Healthy()
}

func (p *Provider) Close() error { return nil }

// CurrentTime returns the current time in the given IANA zone ("" = UTC).
func (p *Provider) CurrentTime(ctx context.Context, zone string) (*capability.TimeInfo, error) {
	loc := time.UTC
	if zone != "" {
		var err error
		loc, err = time.LoadLocation(zone)
		if err != nil {
			return nil, fmt.Errorf("unknown time zone %q: %w", zone, err)
		}
	}
	now := p.now().In(loc)
	return &capability.TimeInfo{
		RFC3339: now.Format(time.RFC3339),
		Unix:    now.Unix(),
		Zone:    loc.String(),
	}, nil
}

// dayWeekRe matches the day and week units Go's parser rejects.
var dayWeekRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)([dw])$`)

// ParseDuration normalizes a human duration string. On top of Go's
// syntax it accepts "d" (days) and "w" (weeks) suffixes.
func (p *Provider) ParseDuration(ctx context.Context, value string) (time.Duration, error) {
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	if m := dayWeekRe.FindStringSubmatch(value); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			unit := 24 * time.Hour
			if m[2] == "w" {
				unit = 7 * 24 * time.Hour
			}
			return time.Duration(n * float64(unit)), nil
		}
	}
	return 0, fmt.Errorf("cannot parse duration %q", value)
}
