package highlights

import (
	"reflect"
	"testing"
	"time"

	"github.com/reelify/reelcut/internal/types"
)

func scoredSpan(id int, start, end float64, score float64, texts ...string) types.ScoredSpan {
	if len(texts) == 0 {
		texts = []string{"word"}
	}
	ws := make([]types.TimedWord, 0, len(texts))
	step := (end - start) / float64(len(texts))
	for i, txt := range texts {
		ws = append(ws, types.TimedWord{
			Start: dur(start + float64(i)*step),
			End:   dur(start + float64(i+1)*step),
			Text:  txt,
		})
	}
	return types.ScoredSpan{
		Span:            types.Span{ID: id, Start: dur(start), End: dur(end), Words: ws},
		EngagementScore: score,
	}
}

func dur(sec float64) time.Duration { return time.Duration(sec * float64(time.Second)) }

// talkFixture is the 600s / 40-span scenario: a dense high-engagement block
// at spans 5-8 and a long mediocre run at spans 10-29.
func talkFixture() []types.ScoredSpan {
	spans := make([]types.ScoredSpan, 0, 40)
	for i := 0; i < 40; i++ {
		score := 0.1
		switch {
		case i >= 5 && i <= 8:
			score = []float64{0.9, 0.8, 0.85, 0.7}[i-5]
		case i >= 10 && i <= 29:
			score = 0.5
		}
		start := float64(i) * 15
		spans = append(spans, scoredSpan(i, start, start+15, score))
	}
	return spans
}

func talkOptions() Options {
	return Options{K: 3, MinGap: 30 * time.Second}
}

func TestSelect_DensityBeatsLength(t *testing.T) {
	spans := talkFixture()
	cands := Generate(spans, 15*time.Second, 60*time.Second, time.Second, 1)
	windows, insufficient := Select(cands, spans, talkOptions())
	if insufficient {
		t.Fatalf("expected full selection")
	}
	if len(windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(windows))
	}

	top := windows[0]
	for _, w := range windows[1:] {
		if w.Score > top.Score {
			top = w
		}
	}
	// The top pick must come from the dense 5-8 block, not the long 0.5 run.
	if top.Start < dur(75) || top.End > dur(135) {
		t.Fatalf("top window [%v,%v] not inside the dense block", top.Start, top.End)
	}
}

func TestSelect_WindowProperties(t *testing.T) {
	spans := talkFixture()
	minDur, maxDur := 15*time.Second, 60*time.Second
	cands := Generate(spans, minDur, maxDur, time.Second, 1)
	windows, _ := Select(cands, spans, talkOptions())

	for i, w := range windows {
		if d := w.Duration(); d < minDur || d > maxDur {
			t.Fatalf("window %d duration %v out of bounds", i, d)
		}
		if len(w.Spans) == 0 {
			t.Fatalf("window %d has no spans", i)
		}
		if w.Spans[0].Start != w.Start || w.Spans[len(w.Spans)-1].End != w.End {
			t.Fatalf("window %d spans do not cover its range", i)
		}
		for j := 1; j < len(w.Spans); j++ {
			if w.Spans[j].ID != w.Spans[j-1].ID+1 {
				t.Fatalf("window %d skips spans internally", i)
			}
		}
	}
	for i := 1; i < len(windows); i++ {
		if windows[i].Start < windows[i-1].End+30*time.Second {
			t.Fatalf("windows %d and %d closer than min gap", i-1, i)
		}
	}
}

func TestGenerate_DeterministicAcrossWorkers(t *testing.T) {
	spans := talkFixture()
	base := Generate(spans, 15*time.Second, 60*time.Second, time.Second, 1)
	for _, workers := range []int{2, 4, 7} {
		got := Generate(spans, 15*time.Second, 60*time.Second, time.Second, workers)
		if !reflect.DeepEqual(base, got) {
			t.Fatalf("candidate order differs with %d workers", workers)
		}
	}
}

func TestGenerate_RespectsDurationBounds(t *testing.T) {
	spans := talkFixture()
	minDur, maxDur := 15*time.Second, 60*time.Second
	for _, c := range Generate(spans, minDur, maxDur, time.Second, 1) {
		if d := c.End - c.Start; d < minDur || d > maxDur {
			t.Fatalf("candidate [%v,%v] out of bounds", c.Start, c.End)
		}
	}
}

func TestSortByDensity_TieBreakPrefersEarlierStart(t *testing.T) {
	spans := []types.ScoredSpan{
		scoredSpan(0, 0, 20, 0.6),
		scoredSpan(1, 300, 320, 0.6),
	}
	cands := Generate(spans, 15*time.Second, 25*time.Second, time.Second, 1)
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if cands[0].Start >= cands[1].Start {
		t.Fatalf("tie not broken by earlier start: %v then %v", cands[0].Start, cands[1].Start)
	}
}

func TestSelect_SmallerKIsPrefixOfLarger(t *testing.T) {
	spans := talkFixture()
	cands := Generate(spans, 15*time.Second, 60*time.Second, time.Second, 1)

	opts := talkOptions()
	three, _ := Select(cands, spans, opts)
	opts.K = 2
	two, _ := Select(cands, spans, opts)

	if len(two) != 2 || len(three) != 3 {
		t.Fatalf("unexpected counts: %d and %d", len(two), len(three))
	}
	for _, w := range two {
		found := false
		for _, v := range three {
			if w.Start == v.Start && w.End == v.End {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("K=2 window [%v,%v] not among K=3 windows", w.Start, w.End)
		}
	}
}

func TestSelect_InsufficientContent(t *testing.T) {
	spans := []types.ScoredSpan{
		scoredSpan(0, 0, 5, 0.9),
		scoredSpan(1, 5, 12, 0.8),
	}
	cands := Generate(spans, 15*time.Second, 60*time.Second, time.Second, 1)
	windows, insufficient := Select(cands, spans, Options{K: 3, MinGap: 30 * time.Second})
	if !insufficient {
		t.Fatalf("expected insufficient content signal")
	}
	if len(windows) != 0 {
		t.Fatalf("expected no windows, got %d", len(windows))
	}
}

func TestSelect_DiversityRejectsSameTopic(t *testing.T) {
	spans := []types.ScoredSpan{
		scoredSpan(0, 0, 20, 0.9, "the", "rocket", "launch"),
		scoredSpan(1, 100, 120, 0.8, "another", "rocket", "story"),
		scoredSpan(2, 200, 220, 0.7, "calm", "ocean", "views"),
	}
	cands := Generate(spans, 15*time.Second, 25*time.Second, time.Second, 1)
	windows, insufficient := Select(cands, spans, Options{
		K:                2,
		MinGap:           10 * time.Second,
		DiversityOverlap: 0.5,
		Keywords:         []string{"rocket", "ocean"},
	})
	if insufficient {
		t.Fatalf("expected 2 windows")
	}
	if len(windows) != 2 {
		t.Fatalf("got %d windows", len(windows))
	}
	if windows[0].Start != dur(0) || windows[1].Start != dur(200) {
		t.Fatalf("expected the rocket and ocean windows, got [%v] and [%v]", windows[0].Start, windows[1].Start)
	}
}

func TestSelect_RelaxesDiversityWhenKUnreachable(t *testing.T) {
	spans := []types.ScoredSpan{
		scoredSpan(0, 0, 20, 0.9, "big", "rocket", "day"),
		scoredSpan(1, 100, 120, 0.8, "more", "rocket", "talk"),
	}
	cands := Generate(spans, 15*time.Second, 25*time.Second, time.Second, 1)
	windows, insufficient := Select(cands, spans, Options{
		K:                2,
		MinGap:           10 * time.Second,
		DiversityOverlap: 0.5,
		Keywords:         []string{"rocket"},
	})
	if insufficient {
		t.Fatalf("expected relaxation to reach K")
	}
	if len(windows) != 2 {
		t.Fatalf("got %d windows after relaxation", len(windows))
	}
}
