package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseError reports a structurally invalid or empty subtitle payload.
// An empty-but-well-formed payload is rejected with a ParseError too:
// a track with zero cues is never a usable ingestion result, and the
// caller needs to distinguish it from an I/O failure.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid subtitle payload at line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("invalid subtitle payload: %s", e.Msg)
}

var timestampRegex = regexp.MustCompile(
	`(\d{2}):(\d{2}):(\d{2}),(\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2}),(\d{3})`,
)

// Parse reads SRT text and returns its cues in file order. It returns
// a *ParseError if the payload contains no valid cues.
func Parse(r io.Reader) ([]Cue, error) {
	var cues []Cue
	scanner := bufio.NewScanner(r)

	var current *Cue
	var textLines []string
	haveTimes := false
	lineNum := 0

	// a cue with timestamps but no text is kept with empty text:
	// Compose emits such cues for untranslated lines, and dropping
	// them on re-import would shift the numbering of everything after
	flush := func() {
		if current != nil && haveTimes {
			current.Text = strings.Join(textLines, "\n")
			cues = append(cues, *current)
		}
		current = nil
		textLines = nil
		haveTimes = false
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if current == nil {
			seq, err := strconv.Atoi(strings.TrimSpace(line))
			if err != nil {
				return nil, &ParseError{
					Line: lineNum,
					Msg:  fmt.Sprintf("expected cue sequence number, got %q", line),
				}
			}
			current = &Cue{Sequence: seq}
			continue
		}

		if !haveTimes {
			matches := timestampRegex.FindStringSubmatch(line)
			if len(matches) == 9 {
				start, err := parseTimestamp(matches[1], matches[2], matches[3], matches[4])
				if err != nil {
					return nil, &ParseError{
						Line: lineNum,
						Msg:  fmt.Sprintf("invalid start timestamp: %v", err),
					}
				}
				end, err := parseTimestamp(matches[5], matches[6], matches[7], matches[8])
				if err != nil {
					return nil, &ParseError{
						Line: lineNum,
						Msg:  fmt.Sprintf("invalid end timestamp: %v", err),
					}
				}
				current.Start = start
				current.End = end
				haveTimes = true
				continue
			}
			return nil, &ParseError{
				Line: lineNum,
				Msg:  fmt.Sprintf("expected timestamp line, got %q", line),
			}
		}

		textLines = append(textLines, line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading subtitle payload: %w", err)
	}

	if len(cues) == 0 {
		return nil, &ParseError{Msg: "no cues found"}
	}

	return cues, nil
}

// ParseFile parses the SRT file at path.
func ParseFile(path string) ([]Cue, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open subtitle file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

func parseTimestamp(hours, minutes, seconds, millis string) (time.Duration, error) {
	h, err := strconv.Atoi(hours)
	if err != nil {
		return 0, err
	}
	m, err := strconv.Atoi(minutes)
	if err != nil {
		return 0, err
	}
	s, err := strconv.Atoi(seconds)
	if err != nil {
		return 0, err
	}
	ms, err := strconv.Atoi(millis)
	if err != nil {
		return 0, err
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(ms)*time.Millisecond, nil
}
