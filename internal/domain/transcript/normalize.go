package transcript

import (
	"fmt"
	"strings"
	"time"

	"github.com/reelify/reelcut/internal/types"
)

// MalformedTranscriptError reports degenerate or non-monotonic word timing.
// It is the only condition that aborts a run.
type MalformedTranscriptError struct {
	Index  int
	Reason string
}

func (e *MalformedTranscriptError) Error() string {
	return fmt.Sprintf("malformed transcript at word %d: %s", e.Index, e.Reason)
}

// Normalize flattens transcript words and groups them into sentence-like
// spans. A span ends at terminal punctuation or when the pause to the next
// word exceeds pauseBreak, whichever comes first.
//
// Small overlaps between adjacent words (upstream timing jitter) are
// tolerated by trimming a word's start to the previous word's end; a word
// whose start moves backwards past the previous word's start is rejected.
func Normalize(tr types.Transcript, pauseBreak time.Duration) ([]types.Span, error) {
	words, err := collectWords(tr)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, nil
	}

	var spans []types.Span
	cur := make([]types.TimedWord, 0, 16)

	flush := func() {
		if len(cur) == 0 {
			return
		}
		spans = append(spans, buildSpan(len(spans), cur))
		cur = cur[:0]
	}

	for i, w := range words {
		cur = append(cur, w)
		if hasTerminalPunctuation(w.Text) {
			flush()
			continue
		}
		if i+1 < len(words) && words[i+1].Start-w.End > pauseBreak {
			flush()
		}
	}
	flush()

	return spans, nil
}

func collectWords(tr types.Transcript) ([]types.TimedWord, error) {
	var out []types.TimedWord
	idx := 0
	for _, s := range tr.Segments {
		segWords := s.Words
		if len(segWords) == 0 && strings.TrimSpace(s.Text) != "" {
			// Segment-level fallback keeps transcripts without word
			// timestamps usable: the whole segment becomes one word.
			segWords = []types.Word{{Start: s.Start, End: s.End, Word: s.Text}}
		}
		for _, w := range segWords {
			text := strings.TrimSpace(w.Word)
			if text == "" {
				idx++
				continue
			}
			ws := dur(w.Start)
			we := dur(w.End)
			if we <= ws {
				return nil, &MalformedTranscriptError{Index: idx, Reason: fmt.Sprintf("end %v <= start %v", we, ws)}
			}
			if n := len(out); n > 0 {
				prev := out[n-1]
				if ws < prev.Start {
					return nil, &MalformedTranscriptError{Index: idx, Reason: fmt.Sprintf("start %v precedes previous start %v", ws, prev.Start)}
				}
				// Jitter trim: words overlap but remain ordered.
				if ws < prev.End {
					ws = prev.End
					if we <= ws {
						idx++
						continue
					}
				}
			}
			out = append(out, types.TimedWord{Start: ws, End: we, Text: text, Confidence: w.Confidence})
			idx++
		}
	}
	return out, nil
}

func buildSpan(id int, words []types.TimedWord) types.Span {
	copied := make([]types.TimedWord, len(words))
	copy(copied, words)

	parts := make([]string, 0, len(copied))
	for _, w := range copied {
		parts = append(parts, w.Text)
	}
	return types.Span{
		ID:    id,
		Start: copied[0].Start,
		End:   copied[len(copied)-1].End,
		Text:  strings.Join(parts, " "),
		Words: copied,
	}
}

func hasTerminalPunctuation(s string) bool {
	s = strings.TrimSpace(s)
	trimTail := `"'` + "`" + ")]}"
	for len(s) > 0 && strings.ContainsRune(trimTail, rune(s[len(s)-1])) {
		s = s[:len(s)-1]
	}
	if s == "" {
		return false
	}
	last := s[len(s)-1]
	return last == '.' || last == '!' || last == '?'
}

func dur(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
