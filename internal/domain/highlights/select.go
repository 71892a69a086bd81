package highlights

import (
	"sort"
	"strings"
	"time"

	"github.com/reelify/reelcut/internal/types"
)

type Options struct {
	// K is the target window count.
	K int
	// MinGap is the minimum separation between selected windows.
	MinGap time.Duration
	// DiversityOverlap is the keyword-overlap fraction above which a
	// candidate is rejected as covering the same sub-topic as an already
	// selected window.
	DiversityOverlap float64
	// Keywords is the topic vocabulary the diversity check runs over.
	Keywords []string
}

// Select greedily picks up to K windows from density-sorted candidates,
// enforcing spacing and topic diversity. If diversity makes K unreachable it
// is dropped (spacing kept) and selection retried once. Returns the windows
// time-ordered and whether fewer than K were found.
func Select(cands []Candidate, spans []types.ScoredSpan, opts Options) ([]types.Window, bool) {
	if opts.K <= 0 {
		return nil, false
	}
	if len(cands) == 0 {
		return nil, true
	}
	kw := keywordSet(opts.Keywords)

	picked := pick(cands, spans, opts, kw, true)
	if len(picked) < opts.K {
		if relaxed := pick(cands, spans, opts, kw, false); len(relaxed) > len(picked) {
			picked = relaxed
		}
	}

	windows := materialize(picked, spans)
	sort.Slice(windows, func(i, j int) bool { return windows[i].Start < windows[j].Start })
	return windows, len(windows) < opts.K
}

func pick(cands []Candidate, spans []types.ScoredSpan, opts Options, kw map[string]struct{}, diversity bool) []Candidate {
	var sel []Candidate
	var selTopics []map[string]struct{}
	for _, c := range cands {
		if len(sel) >= opts.K {
			break
		}
		if !spaced(sel, c, opts.MinGap) {
			continue
		}
		topics := candidateTopics(spans, c, kw)
		if diversity && tooSimilar(selTopics, topics, opts.DiversityOverlap) {
			continue
		}
		sel = append(sel, c)
		selTopics = append(selTopics, topics)
	}
	return sel
}

// spaced reports whether c keeps at least minGap from every selected window.
func spaced(sel []Candidate, c Candidate, minGap time.Duration) bool {
	for _, e := range sel {
		if c.Start < e.End+minGap && c.End > e.Start-minGap {
			return false
		}
	}
	return true
}

func candidateTopics(spans []types.ScoredSpan, c Candidate, kw map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	for i := c.Lo; i <= c.Hi && i < len(spans); i++ {
		for _, w := range spans[i].Words {
			tok := normalizeToken(w.Text)
			if _, ok := kw[tok]; ok {
				out[tok] = struct{}{}
			}
		}
	}
	return out
}

// tooSimilar checks the fraction of the candidate's topic keywords already
// covered by any one selected window.
func tooSimilar(selected []map[string]struct{}, topics map[string]struct{}, frac float64) bool {
	if len(topics) == 0 {
		return false
	}
	for _, sk := range selected {
		shared := 0
		for t := range topics {
			if _, ok := sk[t]; ok {
				shared++
			}
		}
		if float64(shared)/float64(len(topics)) > frac {
			return true
		}
	}
	return false
}

func materialize(sel []Candidate, spans []types.ScoredSpan) []types.Window {
	out := make([]types.Window, 0, len(sel))
	for _, c := range sel {
		ws := make([]types.ScoredSpan, c.Hi-c.Lo+1)
		copy(ws, spans[c.Lo:c.Hi+1])
		out = append(out, types.Window{Start: c.Start, End: c.End, Score: c.Density, Spans: ws})
	}
	return out
}

func keywordSet(keywords []string) map[string]struct{} {
	out := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out[k] = struct{}{}
		}
	}
	return out
}

func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	trimRunes := `"'` + "`" + "[](){}.,!?;:"
	return strings.Trim(s, trimRunes)
}
