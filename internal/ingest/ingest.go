package ingest

import (
	"context"
	"fmt"

	"github.com/jimaku-dev/jimaku/internal/project"
)

// IngestionError reports a source that could not be turned into a
// project: unreadable media, a failed transcription, or a
// transcription that yielded no segments. The ingestion attempt is
// abandoned; any prior session state is untouched.
type IngestionError struct {
	Source string
	Err    error
}

func (e *IngestionError) Error() string {
	return fmt.Sprintf("failed to ingest %s: %v", e.Source, e.Err)
}

func (e *IngestionError) Unwrap() error {
	return e.Err
}

// Adapter turns one external source into a fresh project with empty
// translations and zero corrections.
type Adapter interface {
	Ingest(ctx context.Context) (*project.Project, error)

	// ContextAware reports whether translation of this source should
	// use neighboring-segment context.
	ContextAware() bool
}
