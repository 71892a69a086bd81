package scoring

import "github.com/reelify/reelcut/internal/types"

// Stats holds full-transcript speech statistics. Computed in one explicit
// pass before scoring begins and passed into the scorer as an immutable
// value, so per-span scoring stays a pure function.
type Stats struct {
	MeanWordsPerSec float64
}

func ComputeStats(spans []types.Span) Stats {
	var words int
	var seconds float64
	for _, s := range spans {
		words += len(s.Words)
		seconds += s.Duration().Seconds()
	}
	if words == 0 || seconds <= 0 {
		return Stats{}
	}
	return Stats{MeanWordsPerSec: float64(words) / seconds}
}
