package ports

import (
	"context"

	"github.com/reelify/reelcut/internal/types"
)

// SentimentAnalyzer scores text polarity in [-1, 1]. Implementations may be
// network-backed; callers bound each call with a context deadline and treat
// failure as degraded scoring for that one span.
type SentimentAnalyzer interface {
	Score(ctx context.Context, text string) (float64, error)
}

// TranscriptSource loads a word-timestamped transcript produced by the
// transcription collaborator.
type TranscriptSource interface {
	Load(ctx context.Context, path string) (types.Transcript, error)
}

// FactSource loads the per-run pool of topic-tagged overlay facts.
type FactSource interface {
	Load(ctx context.Context, path string) ([]types.Fact, error)
}
