package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jimaku-dev/jimaku/internal/assets"
	"github.com/jimaku-dev/jimaku/internal/config"
	"github.com/jimaku-dev/jimaku/internal/ingest"
	"github.com/jimaku-dev/jimaku/internal/media"
	"github.com/jimaku-dev/jimaku/internal/project"
	"github.com/jimaku-dev/jimaku/internal/subtitle"
	"github.com/jimaku-dev/jimaku/internal/translate"
)

// lineView mirrors the editing table: start/original/end are
// read-only, translation and the offsets are editable.
type lineView struct {
	Index       int     `json:"index"`
	Start       float64 `json:"start"`
	Original    string  `json:"original"`
	Translation string  `json:"translation"`
	End         float64 `json:"end"`
	StartOffset float64 `json:"start_offset"`
	EndOffset   float64 `json:"end_offset"`
}

type sessionView struct {
	ID                  string     `json:"id"`
	SourceName          string     `json:"source_name"`
	IsVideo             bool       `json:"is_video"`
	TargetLanguage      string     `json:"target_language"`
	Lines               []lineView `json:"lines"`
	TranslationFailures []int      `json:"translation_failures,omitempty"`
}

type warningView struct {
	Index   int    `json:"index"`
	Message string `json:"message"`
}

func jsonResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, message string, status int) {
	jsonResponse(w, status, map[string]string{"error": message})
}

func makeSessionView(sess *project.Session, failures []int) sessionView {
	lines := sess.Project.Lines()
	views := make([]lineView, len(lines))
	for i, line := range lines {
		views[i] = lineView{
			Index:       line.Segment.Index,
			Start:       line.Segment.Start.Seconds(),
			Original:    line.Segment.OriginalText,
			Translation: line.Translation,
			End:         line.Segment.End.Seconds(),
			StartOffset: line.Correction.StartOffset.Seconds(),
			EndOffset:   line.Correction.EndOffset.Seconds(),
		}
	}
	return sessionView{
		ID:                  sess.ID,
		SourceName:          sess.SourceName,
		IsVideo:             sess.IsVideo,
		TargetLanguage:      sess.TargetLanguage,
		Lines:               views,
		TranslationFailures: failures,
	}
}

func (s *Server) Languages(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, config.TargetLanguages)
}

// CreateSession ingests an uploaded source (media file or SRT),
// translates every line, and registers the new editing session.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(s.cfg.Server.MaxUploadSize); err != nil {
		jsonError(w, "invalid multipart request", http.StatusBadRequest)
		return
	}

	targetLang := r.FormValue("target_language")
	if !config.IsTargetLanguage(targetLang) {
		jsonError(w, fmt.Sprintf("unsupported target language %q", targetLang), http.StatusBadRequest)
		return
	}

	upload, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "missing file upload", http.StatusBadRequest)
		return
	}
	defer upload.Close()

	scope, err := assets.NewScopeIn(s.cfg.TempDir, "jimaku")
	if err != nil {
		jsonError(w, "failed to allocate session storage", http.StatusInternalServerError)
		return
	}

	sess, failures, err := s.buildSession(ctx, scope, upload, header.Filename, targetLang)
	if err != nil {
		scope.Close()

		var parseErr *subtitle.ParseError
		var ingErr *ingest.IngestionError
		switch {
		case errors.As(err, &parseErr):
			jsonError(w, parseErr.Error(), http.StatusBadRequest)
		case errors.As(err, &ingErr):
			jsonError(w, ingErr.Error(), http.StatusUnprocessableEntity)
		default:
			s.logger.Errorw("Session creation failed", "error", err)
			jsonError(w, "session creation failed", http.StatusInternalServerError)
		}
		return
	}

	s.store.Add(sess)
	s.logger.Infow("Session created",
		"id", sess.ID,
		"source", sess.SourceName,
		"lines", sess.Project.Len(),
		"translation_failures", len(failures),
	)

	jsonResponse(w, http.StatusCreated, makeSessionView(sess, failures))
}

func (s *Server) buildSession(
	ctx context.Context,
	scope *assets.Scope,
	upload io.Reader,
	filename, targetLang string,
) (*project.Session, []int, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	sourcePath := scope.Path("source" + ext)

	out, err := os.Create(sourcePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to store upload: %w", err)
	}
	if _, err := io.Copy(out, upload); err != nil {
		out.Close()
		return nil, nil, fmt.Errorf("failed to store upload: %w", err)
	}
	out.Close()

	var adapter ingest.Adapter
	if ext == ".srt" {
		file, err := os.Open(sourcePath)
		if err != nil {
			return nil, nil, err
		}
		defer file.Close()
		adapter = ingest.NewSubtitleAdapter(file)
	} else {
		transcriber, err := s.newTranscriber(ctx)
		if err != nil {
			return nil, nil, err
		}
		adapter = ingest.NewMediaAdapter(sourcePath, scope, transcriber, s.logger)
	}

	p, err := adapter.Ingest(ctx)
	if err != nil {
		return nil, nil, err
	}

	translator, err := s.newTranslator(ctx)
	if err != nil {
		return nil, nil, err
	}

	orchestrator := translate.NewOrchestrator(translator, s.logger)
	report, err := orchestrator.Run(ctx, p, targetLang, adapter.ContextAware())
	if err != nil {
		return nil, nil, err
	}

	failures := make([]int, 0, len(report.Failures))
	for _, f := range report.Failures {
		failures = append(failures, f.Index)
	}

	return &project.Session{
		Project:        p,
		Scope:          scope,
		SourceName:     filename,
		SourcePath:     sourcePath,
		IsVideo:        media.IsVideoFile(filename),
		TargetLanguage: targetLang,
	}, failures, nil
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (*project.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, ok := s.store.Get(id)
	if !ok {
		jsonError(w, "session not found", http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sess.Lock()
	view := makeSessionView(sess, nil)
	sess.Unlock()

	jsonResponse(w, http.StatusOK, view)
}

func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Evict(id); err != nil {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type updateLineRequest struct {
	Translation *string  `json:"translation"`
	StartOffset *float64 `json:"start_offset"`
	EndOffset   *float64 `json:"end_offset"`
}

// UpdateLine applies cell edits to one line. Absent fields are left
// unchanged.
func (s *Server) UpdateLine(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		jsonError(w, "invalid line index", http.StatusBadRequest)
		return
	}

	var req updateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	sess.Lock()
	defer sess.Unlock()

	line, err := sess.Project.Line(index)
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}

	if req.Translation != nil {
		if err := sess.Project.SetTranslation(index, *req.Translation); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if req.StartOffset != nil || req.EndOffset != nil {
		startOffset := line.Correction.StartOffset
		endOffset := line.Correction.EndOffset
		if req.StartOffset != nil {
			startOffset = secondsToDuration(*req.StartOffset)
		}
		if req.EndOffset != nil {
			endOffset = secondsToDuration(*req.EndOffset)
		}
		if err := sess.Project.SetOffsets(index, startOffset, endOffset); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	updated, _ := sess.Project.Line(index)
	jsonResponse(w, http.StatusOK, lineView{
		Index:       updated.Segment.Index,
		Start:       updated.Segment.Start.Seconds(),
		Original:    updated.Segment.OriginalText,
		Translation: updated.Translation,
		End:         updated.Segment.End.Seconds(),
		StartOffset: updated.Correction.StartOffset.Seconds(),
		EndOffset:   updated.Correction.EndOffset.Seconds(),
	})
}

type regenerateResponse struct {
	Subtitle string        `json:"subtitle"`
	Warnings []warningView `json:"warnings"`
}

// Regenerate recomputes the track from current state and persists it
// as the session's subtitle asset.
func (s *Server) Regenerate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sess.Lock()
	defer sess.Unlock()

	result, err := s.exporter.Export(sess.Project, sess.Scope, "track.srt")
	if err != nil {
		jsonError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	sess.SubtitlePath = result.Path

	warnings := make([]warningView, 0, len(result.Warnings))
	for _, warning := range result.Warnings {
		warnings = append(warnings, warningView{
			Index:   warning.Index,
			Message: warning.String(),
		})
	}

	jsonResponse(w, http.StatusOK, regenerateResponse{
		Subtitle: string(result.Payload),
		Warnings: warnings,
	})
}

// DownloadSubtitle serves the most recently regenerated track as an
// SRT file.
func (s *Server) DownloadSubtitle(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sess.Lock()
	path := sess.SubtitlePath
	sess.Unlock()

	if path == "" {
		jsonError(w, "no regenerated track: call regenerate first", http.StatusConflict)
		return
	}

	w.Header().Set("Content-Type", "application/x-subrip")
	w.Header().Set("Content-Disposition", `attachment; filename="translated_subtitles.srt"`)
	http.ServeFile(w, r, path)
}

// Burn composites the regenerated track into the uploaded video and
// serves the result.
func (s *Server) Burn(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r)
	if !ok {
		return
	}

	sess.Lock()
	defer sess.Unlock()

	if !sess.IsVideo {
		jsonError(w, "source is not a video", http.StatusConflict)
		return
	}
	if sess.SubtitlePath == "" {
		jsonError(w, "no regenerated track: call regenerate first", http.StatusConflict)
		return
	}

	outputPath, err := s.exporter.Burn(r.Context(), sess.SourcePath, sess.SubtitlePath, sess.Scope)
	if err != nil {
		var burnErr *media.BurnError
		if errors.As(err, &burnErr) {
			s.logger.Errorw("Burn failed", "session", sess.ID, "error", err)
			jsonError(w, burnErr.Error(), http.StatusBadGateway)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Disposition", `attachment; filename="subtitled_video.mp4"`)
	http.ServeFile(w, r, outputPath)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
