package scoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/dshills/smekit/internal/profile"
	"github.com/dshills/smekit/internal/schema"
	"github.com/dshills/smekit/internal/scorer"
)

// Builder assembles SME reports from a profile and a scoring backend.
type Builder struct {
	scorer scorer.Scorer
	log    *zap.Logger
	now    func() time.Time
	group  singleflight.Group
}

// NewBuilder returns a Builder that scores through s. A nil logger disables
// logging.
func NewBuilder(s scorer.Scorer, log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{scorer: s, log: log, now: time.Now}
}

// Build validates p, scores it and returns the report. Concurrent builds for
// the same business name share one scorer call.
func (b *Builder) Build(ctx context.Context, p schema.Profile) (*schema.ReportData, error) {
	if err := profile.Validate(p); err != nil {
		return nil, err
	}

	features := profile.MLFeatures(p)
	key := strings.ToLower(strings.TrimSpace(p.BusinessName))
	// The shared scorer call outlives any single caller; each caller stops
	// waiting on its own ctx.
	shared := context.WithoutCancel(ctx)
	ch := b.group.DoChan(key, func() (any, error) {
		b.log.Debug("scoring profile",
			zap.String("business", p.BusinessName),
			zap.Int("ml_features", len(features)))
		return b.scorer.Score(shared, &scorer.Request{ProfileData: p, MLFeatures: features})
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("scoring profile: %w", ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, fmt.Errorf("scoring profile: %w", res.Err)
	}
	if res.Shared {
		b.log.Debug("profile score shared with in-flight request", zap.String("business", p.BusinessName))
	}
	resp := res.Val.(*scorer.Response)

	return &schema.ReportData{
		BusinessName:     p.BusinessName,
		Profile:          p,
		MLFeatures:       features,
		Summary:          Summary(p),
		Suggestions:      Suggestions(p),
		ComplianceScore:  resp.ComplianceScore,
		SectorAverage:    SectorAverage(p.Sector),
		HistoricalScores: HistoricalScores(resp.LatestScore),
		Model:            resp.Model,
		GeneratedAt:      b.now().UTC(),
	}, nil
}
