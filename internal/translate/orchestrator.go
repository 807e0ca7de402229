package translate

import (
	"context"
	"fmt"

	"github.com/jimaku-dev/jimaku/internal/logging"
	"github.com/jimaku-dev/jimaku/internal/project"
)

// LineFailure records a translation call that failed for one line.
type LineFailure struct {
	Index int
	Err   error
}

func (f LineFailure) String() string {
	return fmt.Sprintf("line %d: %v", f.Index, f.Err)
}

// Report summarizes an orchestrator run.
type Report struct {
	Total      int
	Translated int
	Failures   []LineFailure
}

// Orchestrator fills in the translation of every project line, one
// call per line. Failures are isolated: a failed line is left blank
// for manual correction and the run continues. Cancellation stops the
// run between lines without losing completed translations.
type Orchestrator struct {
	translator Translator
	logger     *logging.Logger

	// OnProgress, if set, is called after each line with the number of
	// lines attempted so far and the total.
	OnProgress func(done, total int)
}

func NewOrchestrator(translator Translator, logger *logging.Logger) *Orchestrator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Orchestrator{
		translator: translator,
		logger:     logger,
	}
}

// Run translates every line of p into targetLanguage. When
// contextAware is set, each request carries the previous and next
// segments' original text so short ambiguous utterances translate
// better; subtitle-file imports use context-free requests since cues
// are usually complete sentences already.
func (o *Orchestrator) Run(
	ctx context.Context,
	p *project.Project,
	targetLanguage string,
	contextAware bool,
) (*Report, error) {
	total := p.Len()
	report := &Report{Total: total}
	lines := p.Lines()

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		req := Request{
			Text:           lines[i].Segment.OriginalText,
			TargetLanguage: targetLanguage,
		}
		if contextAware {
			reqCtx := &Context{}
			if i > 0 {
				reqCtx.Previous = lines[i-1].Segment.OriginalText
			}
			if i < total-1 {
				reqCtx.Next = lines[i+1].Segment.OriginalText
			}
			req.Context = reqCtx
		}

		translated, err := o.translator.Translate(ctx, req)
		if err != nil {
			o.logger.Warnw("Translation failed for line, leaving it blank",
				"index", i,
				"error", err,
			)
			report.Failures = append(report.Failures, LineFailure{Index: i, Err: err})
			translated = ""
		} else {
			report.Translated++
		}

		if err := p.SetTranslation(i, translated); err != nil {
			return report, err
		}

		if o.OnProgress != nil {
			o.OnProgress(i+1, total)
		}
	}

	return report, nil
}
