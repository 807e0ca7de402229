package ingest

import (
	"context"
	"fmt"

	"github.com/jimaku-dev/jimaku/internal/assets"
	"github.com/jimaku-dev/jimaku/internal/logging"
	"github.com/jimaku-dev/jimaku/internal/media"
	"github.com/jimaku-dev/jimaku/internal/project"
	"github.com/jimaku-dev/jimaku/internal/transcribe"
)

// MediaAdapter ingests an audio or video file by transcribing it.
// Video sources have their audio extracted into the session's asset
// scope first; audio sources are normalized the same way for the
// transcription provider.
type MediaAdapter struct {
	MediaPath   string
	Scope       *assets.Scope
	Transcriber transcribe.Transcriber
	Logger      *logging.Logger

	// prepareAudio produces the transcription input; swapped out in
	// tests to avoid invoking ffmpeg.
	prepareAudio func(ctx context.Context, inputPath, outputPath string) error
}

func NewMediaAdapter(
	mediaPath string,
	scope *assets.Scope,
	transcriber transcribe.Transcriber,
	logger *logging.Logger,
) *MediaAdapter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &MediaAdapter{
		MediaPath:    mediaPath,
		Scope:        scope,
		Transcriber:  transcriber,
		Logger:       logger,
		prepareAudio: media.ExtractAudio,
	}
}

// transcription output plausibly benefits from neighbor context:
// utterance boundaries are machine-chosen and often mid-sentence
func (a *MediaAdapter) ContextAware() bool {
	return true
}

func (a *MediaAdapter) Ingest(ctx context.Context) (*project.Project, error) {
	if !media.IsMediaFile(a.MediaPath) {
		return nil, &IngestionError{
			Source: a.MediaPath,
			Err:    fmt.Errorf("unsupported media type"),
		}
	}

	audioPath := a.Scope.Path("audio.mp3")
	if media.IsVideoFile(a.MediaPath) {
		a.Logger.Infow("Extracting audio from video", "input", a.MediaPath)
	} else {
		a.Logger.Infow("Normalizing audio for transcription", "input", a.MediaPath)
	}
	if err := a.prepareAudio(ctx, a.MediaPath, audioPath); err != nil {
		return nil, &IngestionError{Source: a.MediaPath, Err: err}
	}

	result, err := a.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, &IngestionError{Source: a.MediaPath, Err: err}
	}
	if len(result.Segments) == 0 {
		return nil, &IngestionError{
			Source: a.MediaPath,
			Err:    fmt.Errorf("transcription yielded no segments"),
		}
	}

	a.Logger.Infow("Transcription complete", "segments", len(result.Segments))

	segments := make([]project.Segment, len(result.Segments))
	for i, seg := range result.Segments {
		segments[i] = project.Segment{
			Start:        seg.Start,
			End:          seg.End,
			OriginalText: seg.Text,
		}
	}

	p, err := project.New(segments)
	if err != nil {
		return nil, &IngestionError{Source: a.MediaPath, Err: err}
	}
	return p, nil
}
