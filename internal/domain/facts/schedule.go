package facts

import (
	"sort"
	"strings"
	"time"

	"github.com/reelify/reelcut/internal/types"
)

// dominantKeywordLimit caps the per-window keyword set used for ranking.
const dominantKeywordLimit = 8

// Schedule places overlay facts into the quiet gaps of each window. Facts
// are ranked by topic-tag overlap with the window's dominant keywords, one
// fact per gap, and a fact is never reused across the plan. A window with no
// gap of at least minGap simply gets no facts.
func Schedule(windows []types.Window, pool []types.Fact, minGap time.Duration) []types.Reel {
	reels := make([]types.Reel, 0, len(windows))
	used := make(map[string]struct{})

	for _, w := range windows {
		gaps := QuietGaps(w, minGap)
		ranked := rank(pool, dominantKeywords(w), used)

		var placements []types.FactPlacement
		for i, at := range gaps {
			if i >= len(ranked) {
				break
			}
			f := ranked[i]
			placements = append(placements, types.FactPlacement{Fact: f, At: at})
			used[f.Text] = struct{}{}
		}
		reels = append(reels, types.Reel{Window: w, Facts: placements})
	}
	return reels
}

// QuietGaps returns the insertion times (gap midpoints) of every inter-word
// silence inside the window that is at least minGap long, in time order.
func QuietGaps(w types.Window, minGap time.Duration) []time.Duration {
	words := windowWords(w)
	var out []time.Duration
	for i := 0; i+1 < len(words); i++ {
		gap := words[i+1].Start - words[i].End
		if gap >= minGap {
			out = append(out, words[i].End+gap/2)
		}
	}
	return out
}

func windowWords(w types.Window) []types.TimedWord {
	var out []types.TimedWord
	for _, sp := range w.Spans {
		out = append(out, sp.Words...)
	}
	return out
}

// dominantKeywords picks the window's most frequent substantive tokens.
// Ties resolve lexicographically so ranking is deterministic.
func dominantKeywords(w types.Window) map[string]struct{} {
	freq := make(map[string]int)
	for _, sp := range w.Spans {
		for _, word := range sp.Words {
			tok := normalizeToken(word.Text)
			if len(tok) < 4 {
				continue
			}
			freq[tok]++
		}
	}

	toks := make([]string, 0, len(freq))
	for t := range freq {
		toks = append(toks, t)
	}
	sort.Slice(toks, func(i, j int) bool {
		if freq[toks[i]] != freq[toks[j]] {
			return freq[toks[i]] > freq[toks[j]]
		}
		return toks[i] < toks[j]
	})
	if len(toks) > dominantKeywordLimit {
		toks = toks[:dominantKeywordLimit]
	}

	out := make(map[string]struct{}, len(toks))
	for _, t := range toks {
		out[t] = struct{}{}
	}
	return out
}

// rank orders unused facts by tag overlap with the dominant keywords,
// preserving pool order among equals. Facts with no overlap still rank, just
// last: an off-topic overlay beats an empty reel.
func rank(pool []types.Fact, dominant map[string]struct{}, used map[string]struct{}) []types.Fact {
	type scored struct {
		fact    types.Fact
		overlap int
	}
	items := make([]scored, 0, len(pool))
	for _, f := range pool {
		if _, ok := used[f.Text]; ok {
			continue
		}
		overlap := 0
		for _, tag := range f.Tags {
			if _, ok := dominant[normalizeToken(tag)]; ok {
				overlap++
			}
		}
		items = append(items, scored{fact: f, overlap: overlap})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].overlap > items[j].overlap })

	out := make([]types.Fact, 0, len(items))
	for _, it := range items {
		out = append(out, it.fact)
	}
	return out
}

func normalizeToken(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	trimRunes := `"'` + "`" + "[](){}.,!?;:"
	return strings.Trim(s, trimRunes)
}
