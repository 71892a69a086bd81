package reelplan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/reelify/reelcut/internal/types"
)

// Build translates a plan into the ordered render instructions consumed by
// the external rendering collaborator. Pure translation: no I/O, no
// mutation of the plan.
func Build(p types.Plan, source string) types.RenderJob {
	job := types.RenderJob{
		Source:       source,
		Language:     p.Language,
		Instructions: make([]types.RenderInstruction, 0, len(p.Reels)),
	}

	for i, r := range p.Reels {
		overlays := make([]types.OverlayEvent, 0, len(r.Facts))
		for _, fp := range r.Facts {
			overlays = append(overlays, types.OverlayEvent{
				At:   fp.At.Seconds(),
				Text: fp.Fact.Text,
			})
		}
		sort.Slice(overlays, func(a, b int) bool { return overlays[a].At < overlays[b].At })

		job.Instructions = append(job.Instructions, types.RenderInstruction{
			ID:          fmt.Sprintf("%03d", i+1),
			SourceStart: r.Window.Start.Seconds(),
			SourceEnd:   r.Window.End.Seconds(),
			Score:       r.Window.Score,
			Text:        windowText(r.Window),
			Overlays:    overlays,
		})
	}
	return job
}

func windowText(w types.Window) string {
	parts := make([]string, 0, len(w.Spans))
	for _, sp := range w.Spans {
		if t := strings.TrimSpace(sp.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
