package ingest

import (
	"context"
	"io"

	"github.com/jimaku-dev/jimaku/internal/project"
	"github.com/jimaku-dev/jimaku/internal/subtitle"
)

// SubtitleAdapter ingests a pre-existing subtitle payload. Parse
// failures, including an empty-but-well-formed payload, surface as
// *subtitle.ParseError; payloads that parse but carry cues violating
// the timing invariants surface as *IngestionError. Either way the
// caller can tell a bad upload apart from an internal fault.
type SubtitleAdapter struct {
	Reader io.Reader
}

func NewSubtitleAdapter(r io.Reader) *SubtitleAdapter {
	return &SubtitleAdapter{Reader: r}
}

// subtitle cues are usually complete sentences; neighbor context adds
// nothing
func (a *SubtitleAdapter) ContextAware() bool {
	return false
}

func (a *SubtitleAdapter) Ingest(ctx context.Context) (*project.Project, error) {
	cues, err := subtitle.Parse(a.Reader)
	if err != nil {
		return nil, err
	}

	// sequence numbers in the file are ignored; indices are reassigned
	segments := make([]project.Segment, len(cues))
	for i, cue := range cues {
		segments[i] = project.Segment{
			Start:        cue.Start,
			End:          cue.End,
			OriginalText: cue.Text,
		}
	}

	p, err := project.New(segments)
	if err != nil {
		// parses fine but breaks a timing invariant (end <= start,
		// decreasing starts); still the uploader's problem, not ours
		return nil, &IngestionError{Source: "subtitle payload", Err: err}
	}
	return p, nil
}
