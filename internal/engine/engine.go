package engine

import (
	"context"
	"fmt"

	"github.com/reelify/reelcut/internal/config"
	"github.com/reelify/reelcut/internal/domain/facts"
	"github.com/reelify/reelcut/internal/domain/highlights"
	"github.com/reelify/reelcut/internal/domain/scoring"
	"github.com/reelify/reelcut/internal/domain/transcript"
	"github.com/reelify/reelcut/internal/ports"
	"github.com/reelify/reelcut/internal/types"
)

type Deps struct {
	Sentiment ports.SentimentAnalyzer
}

type Engine struct{ d Deps }

func New(d Deps) Engine { return Engine{d: d} }

// Report carries the non-fatal signals of a run. Everything here degrades
// gracefully; only a malformed transcript aborts.
type Report struct {
	SpanCount      int
	CandidateCount int

	// DegradedSpans counts spans scored without sentiment because the
	// collaborator failed or timed out.
	DegradedSpans int

	// InsufficientContent is set when fewer than the target number of
	// windows satisfied the constraints even after relaxing diversity. The
	// plan still holds whatever was found.
	InsufficientContent bool
}

// Run executes the full segmentation pass for one transcript: normalize,
// score, select, schedule overlays. Pure aside from sentiment lookups.
func (e Engine) Run(ctx context.Context, tr types.Transcript, pool []types.Fact, cfg *config.Config) (types.Plan, Report, error) {
	if err := cfg.Validate(); err != nil {
		return types.Plan{}, Report{}, fmt.Errorf("config: %w", err)
	}

	spans, err := transcript.Normalize(tr, cfg.PauseBreak())
	if err != nil {
		return types.Plan{}, Report{}, err
	}

	stats := scoring.ComputeStats(spans)
	scorer := scoring.New(e.d.Sentiment, scoring.Weights{
		Sentiment: cfg.Weights.Sentiment,
		Keywords:  cfg.Weights.Keywords,
		Rate:      cfg.Weights.Rate,
	}, cfg.KeywordSet(), cfg.SentimentTimeout(), stats)
	scored, degraded := scorer.ScoreAll(ctx, spans)

	cands := highlights.Generate(scored, cfg.MinDuration(), cfg.MaxDuration(), cfg.PauseBreak(), cfg.Workers)
	windows, insufficient := highlights.Select(cands, scored, highlights.Options{
		K:                cfg.Reels,
		MinGap:           cfg.MinWindowGap(),
		DiversityOverlap: cfg.DiversityOverlap,
		Keywords:         cfg.KeywordSet(),
	})

	plan := types.Plan{
		Language: tr.Language,
		Reels:    facts.Schedule(windows, pool, cfg.MinFactGap()),
	}
	report := Report{
		SpanCount:           len(spans),
		CandidateCount:      len(cands),
		DegradedSpans:       degraded,
		InsufficientContent: insufficient,
	}
	return plan, report, nil
}
