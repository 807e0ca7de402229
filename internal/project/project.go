package project

import (
	"fmt"
	"time"
)

// Segment is one transcribed or imported unit of text with its base
// timing. It is immutable after ingestion: edits apply to the line's
// translation and correction, never to the segment itself.
type Segment struct {
	Index        int
	Start        time.Duration
	End          time.Duration
	OriginalText string
}

// Correction holds the user-supplied timing nudges for one line,
// added to the segment's base times at regeneration.
type Correction struct {
	StartOffset time.Duration
	EndOffset   time.Duration
}

// Line ties a segment to its translation and correction.
type Line struct {
	Segment     Segment
	Translation string
	Correction  Correction
}

// Project is the editing aggregate for one ingested source: an
// ordered sequence of lines indexed 0..N-1. One project belongs to
// one editing session and is never merged with another.
type Project struct {
	lines []Line
}

// New builds a project from ingested segments. Indices are assigned
// in order, translations start empty, and corrections start at zero.
func New(segments []Segment) (*Project, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("project requires at least one segment")
	}

	lines := make([]Line, len(segments))
	var prevStart time.Duration
	for i, seg := range segments {
		if seg.End <= seg.Start {
			return nil, fmt.Errorf(
				"segment %d: end %v is not after start %v",
				i, seg.End, seg.Start,
			)
		}
		if seg.Start < prevStart {
			return nil, fmt.Errorf(
				"segment %d: start %v precedes previous start %v",
				i, seg.Start, prevStart,
			)
		}
		prevStart = seg.Start

		seg.Index = i
		lines[i] = Line{Segment: seg}
	}

	return &Project{lines: lines}, nil
}

func (p *Project) Len() int {
	return len(p.lines)
}

func (p *Project) Line(i int) (Line, error) {
	if err := p.checkIndex(i); err != nil {
		return Line{}, err
	}
	return p.lines[i], nil
}

// Lines returns a copy of all lines in index order.
func (p *Project) Lines() []Line {
	out := make([]Line, len(p.lines))
	copy(out, p.lines)
	return out
}

// SetTranslation overwrites the translation text of line i.
func (p *Project) SetTranslation(i int, text string) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	p.lines[i].Translation = text
	return nil
}

// SetOffsets replaces both timing offsets of line i. Offsets may be
// negative and are not bounded here; regeneration validates the
// resulting times.
func (p *Project) SetOffsets(i int, startOffset, endOffset time.Duration) error {
	if err := p.checkIndex(i); err != nil {
		return err
	}
	p.lines[i].Correction = Correction{
		StartOffset: startOffset,
		EndOffset:   endOffset,
	}
	return nil
}

func (p *Project) checkIndex(i int) error {
	if i < 0 || i >= len(p.lines) {
		return fmt.Errorf("line index %d out of range (0-%d)", i, len(p.lines)-1)
	}
	return nil
}
