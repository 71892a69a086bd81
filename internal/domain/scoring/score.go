package scoring

import (
	"context"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/reelify/reelcut/internal/ports"
	"github.com/reelify/reelcut/internal/types"
)

// Weights splits the engagement score between sentiment magnitude, keyword
// density and speech-rate anomaly. Callers validate that they sum to 1.
type Weights struct {
	Sentiment float64
	Keywords  float64
	Rate      float64
}

// Scorer derives a ScoredSpan per span. The sentiment collaborator is the
// only suspension point in the engine; a failed or timed-out lookup degrades
// that one span to keyword/rate-only scoring and is never a run failure.
type Scorer struct {
	analyzer ports.SentimentAnalyzer
	weights  Weights
	keywords map[string]struct{}
	timeout  time.Duration
	stats    Stats
}

var reSuperlative = regexp.MustCompile(`(?i)\b\w{3,}est\b`)

func New(analyzer ports.SentimentAnalyzer, weights Weights, keywords []string, timeout time.Duration, stats Stats) *Scorer {
	kw := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			kw[k] = struct{}{}
		}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Scorer{analyzer: analyzer, weights: weights, keywords: kw, timeout: timeout, stats: stats}
}

// ScoreAll scores every span in order and reports how many were degraded to
// fallback scoring.
func (s *Scorer) ScoreAll(ctx context.Context, spans []types.Span) ([]types.ScoredSpan, int) {
	out := make([]types.ScoredSpan, 0, len(spans))
	degraded := 0
	for _, sp := range spans {
		scored, ok := s.ScoreSpan(ctx, sp)
		if !ok {
			degraded++
		}
		out = append(out, scored)
	}
	return out, degraded
}

// ScoreSpan returns the scored span and whether sentiment was available.
// The input span is never mutated.
func (s *Scorer) ScoreSpan(ctx context.Context, span types.Span) (types.ScoredSpan, bool) {
	sentiment, ok := s.sentiment(ctx, span.Text)

	kd := s.keywordDensity(span)
	ra := s.rateAnomaly(span)

	contribution := s.weights.Sentiment * math.Abs(sentiment)
	if !ok {
		contribution = 0
	}
	engagement := clamp(contribution+s.weights.Keywords*kd+s.weights.Rate*ra, 0, 1)

	return types.ScoredSpan{
		Span:            span,
		SentimentScore:  sentiment,
		EngagementScore: engagement,
	}, ok
}

func (s *Scorer) sentiment(ctx context.Context, text string) (float64, bool) {
	if s.analyzer == nil {
		return 0, false
	}
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	v, err := s.analyzer.Score(callCtx, text)
	if err != nil || v < -1 || v > 1 {
		return 0, false
	}
	return v, true
}

// keywordDensity counts emphasis markers (configured keywords, exclamations,
// superlatives) normalized by word count.
func (s *Scorer) keywordDensity(span types.Span) float64 {
	if len(span.Words) == 0 {
		return 0
	}
	hits := 0
	for _, w := range span.Words {
		if strings.Contains(w.Text, "!") {
			hits++
		}
		tok := normalizeToken(w.Text)
		if tok == "" {
			continue
		}
		if _, ok := s.keywords[tok]; ok {
			hits++
			continue
		}
		if reSuperlative.MatchString(tok) {
			hits++
		}
	}
	return clamp(float64(hits)/float64(len(span.Words)), 0, 1)
}

// rateAnomaly measures deviation of the span's words-per-second from the
// transcript's running average. Pacing changes tend to mark emphasis.
func (s *Scorer) rateAnomaly(span types.Span) float64 {
	mean := s.stats.MeanWordsPerSec
	secs := span.Duration().Seconds()
	if mean <= 0 || secs <= 0 || len(span.Words) == 0 {
		return 0
	}
	wps := float64(len(span.Words)) / secs
	return clamp(math.Abs(wps-mean)/mean, 0, 1)
}

func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	trimRunes := `"'` + "`" + "[](){}.,!?;:"
	return strings.Trim(s, trimRunes)
}

func clamp(x, a, b float64) float64 {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}
