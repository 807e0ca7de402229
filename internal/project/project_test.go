package project

import (
	"testing"
	"time"
)

func sec(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func testSegments() []Segment {
	return []Segment{
		{Start: sec(1), End: sec(3), OriginalText: "first"},
		{Start: sec(4), End: sec(6), OriginalText: "second"},
		{Start: sec(10), End: sec(12), OriginalText: "third"},
	}
}

func mustNew(t *testing.T, segments []Segment) *Project {
	t.Helper()
	p, err := New(segments)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return p
}

func TestNewAssignsIndices(t *testing.T) {
	p := mustNew(t, testSegments())

	for i, line := range p.Lines() {
		if line.Segment.Index != i {
			t.Errorf("line %d: index = %d", i, line.Segment.Index)
		}
		if line.Translation != "" {
			t.Errorf("line %d: translation should start empty, got %q", i, line.Translation)
		}
		if line.Correction != (Correction{}) {
			t.Errorf("line %d: correction should start zero, got %+v", i, line.Correction)
		}
	}
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
	}{
		{"no segments", nil},
		{"end before start", []Segment{{Start: sec(2), End: sec(1), OriginalText: "x"}}},
		{"end equals start", []Segment{{Start: sec(2), End: sec(2), OriginalText: "x"}}},
		{"decreasing starts", []Segment{
			{Start: sec(5), End: sec(6), OriginalText: "a"},
			{Start: sec(1), End: sec(2), OriginalText: "b"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.segments); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestOffsetApplication(t *testing.T) {
	p := mustNew(t, []Segment{
		{Start: sec(10), End: sec(12), OriginalText: "x"},
	})

	if err := p.SetOffsets(0, sec(-1.5), sec(0.5)); err != nil {
		t.Fatalf("SetOffsets error: %v", err)
	}

	track, warnings := p.Regenerate()
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	cue := track.Cues[0]
	if cue.Start != sec(8.5) {
		t.Errorf("effective start = %v, want 8.5s", cue.Start)
	}
	if cue.End != sec(12.5) {
		t.Errorf("effective end = %v, want 12.5s", cue.End)
	}
}

func TestEditsNeverTouchSegments(t *testing.T) {
	segments := testSegments()
	p := mustNew(t, segments)

	if err := p.SetTranslation(1, "translated"); err != nil {
		t.Fatalf("SetTranslation error: %v", err)
	}
	if err := p.SetOffsets(1, sec(2), sec(-1)); err != nil {
		t.Fatalf("SetOffsets error: %v", err)
	}

	for i, line := range p.Lines() {
		if line.Segment.Index != i {
			t.Errorf("line %d: index changed to %d", i, line.Segment.Index)
		}
		if line.Segment.Start != segments[i].Start || line.Segment.End != segments[i].End {
			t.Errorf("line %d: base timing changed", i)
		}
		if line.Segment.OriginalText != segments[i].OriginalText {
			t.Errorf("line %d: original text changed", i)
		}
	}
}

func TestEditIndexOutOfRange(t *testing.T) {
	p := mustNew(t, testSegments())

	for _, i := range []int{-1, 3, 100} {
		if err := p.SetTranslation(i, "x"); err == nil {
			t.Errorf("SetTranslation(%d) should fail", i)
		}
		if err := p.SetOffsets(i, 0, 0); err == nil {
			t.Errorf("SetOffsets(%d) should fail", i)
		}
	}
}

func TestRegenerateSequenceNumbering(t *testing.T) {
	p := mustNew(t, testSegments())

	// offsets that reorder effective times must not change numbering
	if err := p.SetOffsets(0, sec(20), sec(20)); err != nil {
		t.Fatalf("SetOffsets error: %v", err)
	}

	track, _ := p.Regenerate()
	if len(track.Cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(track.Cues))
	}
	for i, cue := range track.Cues {
		if cue.Sequence != i+1 {
			t.Errorf("cue %d: sequence = %d, want %d", i, cue.Sequence, i+1)
		}
	}
}

func TestRegenerateFlagsMalformedCue(t *testing.T) {
	p := mustNew(t, testSegments())

	// push line 1's start past its end
	if err := p.SetOffsets(1, sec(5), sec(0)); err != nil {
		t.Fatalf("SetOffsets error: %v", err)
	}

	track, warnings := p.Regenerate()
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if warnings[0].Index != 1 {
		t.Errorf("warning index = %d, want 1", warnings[0].Index)
	}

	// the malformed cue is still emitted, others are untouched
	if len(track.Cues) != 3 {
		t.Fatalf("expected 3 cues, got %d", len(track.Cues))
	}
	if track.Cues[0].Start != sec(1) || track.Cues[2].Start != sec(10) {
		t.Error("other cues should regenerate normally")
	}
}

func TestRegenerateDoesNotClampNegativeStart(t *testing.T) {
	p := mustNew(t, []Segment{
		{Start: sec(1), End: sec(3), OriginalText: "x"},
	})
	if err := p.SetOffsets(0, sec(-2), 0); err != nil {
		t.Fatalf("SetOffsets error: %v", err)
	}

	track, warnings := p.Regenerate()
	if track.Cues[0].Start != sec(-1) {
		t.Errorf("effective start = %v, want -1s (no clamping)", track.Cues[0].Start)
	}
	if len(warnings) != 0 {
		t.Errorf("negative start alone is not a warning, got %v", warnings)
	}
}

func TestRegenerateIsPureProjection(t *testing.T) {
	p := mustNew(t, testSegments())

	first, _ := p.Regenerate()
	if first.Cues[0].Text != "" {
		t.Fatalf("unexpected initial text %q", first.Cues[0].Text)
	}

	if err := p.SetTranslation(0, "edited"); err != nil {
		t.Fatalf("SetTranslation error: %v", err)
	}

	second, _ := p.Regenerate()
	if second.Cues[0].Text != "edited" {
		t.Error("regeneration did not reflect a later edit")
	}
	if first.Cues[0].Text != "" {
		t.Error("earlier track mutated by later regeneration")
	}
}

func TestWarningStringNamesCue(t *testing.T) {
	w := Warning{Index: 4, Start: sec(10), End: sec(9)}
	got := w.String()
	want := "cue 5: end 00:00:09,000 is not after start 00:00:10,000"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
