package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/jimaku-dev/jimaku/internal/assets"
	"github.com/jimaku-dev/jimaku/internal/media"
	"github.com/jimaku-dev/jimaku/internal/project"
	"github.com/jimaku-dev/jimaku/internal/subtitle"
)

// Exporter turns a project's regenerated track into a persisted SRT
// asset and, for video sources, a burned video.
type Exporter struct {
	// Strict refuses to export a track containing malformed cues
	// instead of passing them through. The lenient default matches
	// the expectation that a player, not the editor, is the judge of
	// marginal timing.
	Strict bool
}

// Result of a subtitle export.
type Result struct {
	Payload  []byte
	Path     string
	Warnings []project.Warning
}

// Export regenerates the track, serializes it, and writes it to a
// named asset in the session's scope.
func (e *Exporter) Export(
	p *project.Project,
	scope *assets.Scope,
	name string,
) (*Result, error) {
	track, warnings := p.Regenerate()

	if e.Strict && len(warnings) > 0 {
		descriptions := make([]string, len(warnings))
		for i, w := range warnings {
			descriptions[i] = w.String()
		}
		return nil, fmt.Errorf(
			"refusing to export malformed track: %s",
			strings.Join(descriptions, "; "),
		)
	}

	payload := []byte(subtitle.Compose(track.Cues))
	path, err := scope.CreateFile(name, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to write subtitle asset: %w", err)
	}

	return &Result{
		Payload:  payload,
		Path:     path,
		Warnings: warnings,
	}, nil
}

// Burn composites the subtitle asset into the source video and
// returns the path of the muxed output inside the scope.
func (e *Exporter) Burn(
	ctx context.Context,
	videoPath, subtitlePath string,
	scope *assets.Scope,
) (string, error) {
	outputPath := scope.Path("subtitled.mp4")
	if err := media.BurnSubtitles(ctx, videoPath, subtitlePath, outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}
