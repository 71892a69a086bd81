package types

import "time"

// Transcript is the whisper-style payload produced by the transcription
// collaborator. Times are float seconds on the wire.
type Transcript struct {
	Language string    `json:"language,omitempty"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

type Word struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Word       string  `json:"word"`
	Confidence float64 `json:"confidence,omitempty"`
}

// TimedWord is a validated word with duration-typed bounds, used everywhere
// past the transcript boundary.
type TimedWord struct {
	Start      time.Duration
	End        time.Duration
	Text       string
	Confidence float64
}

// Span is a sentence-like run of consecutive words with a single time range.
// Spans from one transcript are time-ordered and never overlap; adjacent
// spans may abut.
type Span struct {
	ID    int
	Start time.Duration
	End   time.Duration
	Text  string
	Words []TimedWord
}

func (s Span) Duration() time.Duration { return s.End - s.Start }

// ScoredSpan carries the derived scores for one span. Built once, never
// mutated afterwards.
type ScoredSpan struct {
	Span
	SentimentScore  float64 // [-1, 1]
	EngagementScore float64 // [0, 1]
}

// Window is a candidate or selected reel interval covering a contiguous run
// of scored spans. Score is engagement per second (score density).
type Window struct {
	Start time.Duration
	End   time.Duration
	Score float64
	Spans []ScoredSpan
}

func (w Window) Duration() time.Duration { return w.End - w.Start }

// Fact is a caller-supplied overlay snippet tagged by topic.
type Fact struct {
	Text string   `json:"text" yaml:"text"`
	Tags []string `json:"topic_tags" yaml:"topic_tags"`
}

// FactPlacement anchors a fact at an insertion time inside a window's quiet
// gap.
type FactPlacement struct {
	Fact Fact
	At   time.Duration
}

// Reel pairs one selected window with its scheduled overlays.
type Reel struct {
	Window Window
	Facts  []FactPlacement
}

// Plan is the engine's final output: the time-ordered reels for one video.
// Immutable once emitted.
type Plan struct {
	Language string
	Reels    []Reel
}

// RenderJob is the descriptor handed to the external rendering collaborator.
type RenderJob struct {
	Source       string              `json:"source,omitempty"`
	Language     string              `json:"language,omitempty"`
	Instructions []RenderInstruction `json:"instructions"`
}

type RenderInstruction struct {
	ID          string         `json:"id"`
	SourceStart float64        `json:"source_start_sec"`
	SourceEnd   float64        `json:"source_end_sec"`
	Score       float64        `json:"score"`
	Text        string         `json:"text,omitempty"`
	Overlays    []OverlayEvent `json:"overlay_events"`
}

type OverlayEvent struct {
	At   float64 `json:"insertion_sec"`
	Text string  `json:"text"`
}
