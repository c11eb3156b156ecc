package compliance

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/dshills/smekit/internal/schema"
	"github.com/dshills/smekit/internal/validate"
)

// Source produces the requirement list for a business.
type Source interface {
	Requirements(ctx context.Context, b schema.BusinessProfile) ([]schema.ComplianceItem, error)
}

// StaticSource serves the built-in checklist after a simulated lookup delay.
type StaticSource struct {
	Delay time.Duration
}

// Requirements waits for s.Delay (or ctx cancellation) and returns Checklist.
func (s StaticSource) Requirements(ctx context.Context, b schema.BusinessProfile) ([]schema.ComplianceItem, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return Checklist(b.HasEmployees), nil
}

// Checker validates a business profile and fetches its checklist.
type Checker struct {
	source Source
	log    *zap.Logger
	group  singleflight.Group
}

// NewChecker returns a Checker backed by src. A nil logger disables logging.
func NewChecker(src Source, log *zap.Logger) *Checker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checker{source: src, log: log}
}

// ValidateBusiness checks the fields the checker cannot run without.
func ValidateBusiness(b schema.BusinessProfile) error {
	return validate.Required(
		validate.Text("business_name", b.BusinessName),
		validate.Text("business_type", b.BusinessType),
		validate.Text("sector", b.Sector),
		validate.Text("region", b.Region),
	)
}

// Check returns a fresh checklist for b. Concurrent checks for the same
// business share one source call; each caller receives its own copy.
func (c *Checker) Check(ctx context.Context, b schema.BusinessProfile) ([]schema.ComplianceItem, error) {
	if err := ValidateBusiness(b); err != nil {
		return nil, err
	}

	key := strings.ToLower(strings.TrimSpace(b.BusinessName)) + "|" + boolKey(b.HasEmployees)
	// The shared lookup outlives any single caller; each caller stops
	// waiting on its own ctx.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		c.log.Debug("fetching compliance requirements",
			zap.String("business", b.BusinessName),
			zap.Bool("has_employees", b.HasEmployees))
		return c.source.Requirements(shared, b)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		c.log.Debug("compliance check shared with in-flight request", zap.String("business", b.BusinessName))
	}

	items := res.Val.([]schema.ComplianceItem)
	out := make([]schema.ComplianceItem, len(items))
	copy(out, items)
	return out, nil
}

func boolKey(b bool) string {
	if b {
		return "employees"
	}
	return "solo"
}
