package project

import (
	"fmt"
	"time"

	"github.com/jimaku-dev/jimaku/internal/subtitle"
)

// Track is the regenerated subtitle track: a pure projection of the
// project's current state. It is recomputed on every call and never
// stored, so edits are always reflected.
type Track struct {
	Cues []subtitle.Cue
}

// Warning flags a cue whose corrected timing is malformed. The cue is
// still emitted; auto-fixing the value would mask the user's error.
type Warning struct {
	Index int
	Start time.Duration
	End   time.Duration
}

func (w Warning) String() string {
	return fmt.Sprintf(
		"cue %d: end %s is not after start %s",
		w.Index+1,
		subtitle.FormatTimestamp(w.End),
		subtitle.FormatTimestamp(w.Start),
	)
}

// Regenerate applies each line's correction to its base timing and
// emits cues numbered 1..N in index order. Cues are not re-sorted
// after offsets are applied and effective starts are not clamped;
// timing nudges are expected to be small and the track preserves the
// original order even if they are not. A warning is returned for
// every cue whose effective end does not come after its effective
// start.
func (p *Project) Regenerate() (*Track, []Warning) {
	cues := make([]subtitle.Cue, len(p.lines))
	var warnings []Warning

	for i, line := range p.lines {
		start := line.Segment.Start + line.Correction.StartOffset
		end := line.Segment.End + line.Correction.EndOffset

		if end <= start {
			warnings = append(warnings, Warning{Index: i, Start: start, End: end})
		}

		cues[i] = subtitle.Cue{
			Sequence: i + 1,
			Start:    start,
			End:      end,
			Text:     line.Translation,
		}
	}

	return &Track{Cues: cues}, warnings
}
