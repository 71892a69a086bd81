package highlights

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/reelify/reelcut/internal/types"
)

// Candidate is one contiguous run of scored spans whose total duration sits
// within the configured bounds. Lo and Hi are inclusive indices into the
// scored-span slice. Density is total engagement normalized by duration, so
// long windows get no free advantage over short ones.
type Candidate struct {
	Start   time.Duration
	End     time.Duration
	Density float64
	Lo, Hi  int
}

// densityEpsilon is the tolerance under which two densities count as equal
// and the earlier-start rule decides.
const densityEpsilon = 1e-6

// Generate builds every candidate window: from each start span, grow by
// adding contiguous spans while total duration stays within maxDur and no
// internal pause between spans exceeds maxSpanGap, keeping windows of at
// least minDur. Start indices are fanned out across workers; the final sort
// makes the output independent of worker count.
func Generate(spans []types.ScoredSpan, minDur, maxDur, maxSpanGap time.Duration, workers int) []Candidate {
	n := len(spans)
	if n == 0 || maxDur <= 0 || maxDur < minDur {
		return nil
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}

	results := make([][]Candidate, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			var out []Candidate
			for i := w; i < n; i += workers {
				out = grow(out, spans, i, minDur, maxDur, maxSpanGap)
			}
			results[w] = out
		}(w)
	}
	wg.Wait()

	var all []Candidate
	for _, r := range results {
		all = append(all, r...)
	}
	SortByDensity(all)
	return all
}

func grow(out []Candidate, spans []types.ScoredSpan, i int, minDur, maxDur, maxSpanGap time.Duration) []Candidate {
	start := spans[i].Start
	total := 0.0
	for j := i; j < len(spans); j++ {
		// A window may absorb short pauses between sentences, but a real
		// break in speech ends the growth.
		if j > i && spans[j].Start-spans[j-1].End > maxSpanGap {
			break
		}
		end := spans[j].End
		win := end - start
		if win > maxDur {
			break
		}
		total += spans[j].EngagementScore
		if win < minDur {
			continue
		}
		out = append(out, Candidate{
			Start:   start,
			End:     end,
			Density: total / win.Seconds(),
			Lo:      i,
			Hi:      j,
		})
	}
	return out
}

// SortByDensity orders candidates by density descending; within the epsilon
// the earlier start wins, then the earlier end. This is the documented
// tie-break and the reason parallel generation stays reproducible.
func SortByDensity(cands []Candidate) {
	sort.SliceStable(cands, func(a, b int) bool {
		diff := cands[a].Density - cands[b].Density
		if diff > densityEpsilon || diff < -densityEpsilon {
			return diff > 0
		}
		if cands[a].Start != cands[b].Start {
			return cands[a].Start < cands[b].Start
		}
		return cands[a].End < cands[b].End
	})
}
