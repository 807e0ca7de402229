package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/jimaku-dev/jimaku/internal/config"
	"github.com/jimaku-dev/jimaku/internal/export"
	"github.com/jimaku-dev/jimaku/internal/logging"
	"github.com/jimaku-dev/jimaku/internal/project"
	"github.com/jimaku-dev/jimaku/internal/transcribe"
	"github.com/jimaku-dev/jimaku/internal/translate"
)

// Server exposes the editing surface over HTTP: upload a source,
// edit translations and offsets cell by cell, regenerate the track,
// and burn it into the video.
type Server struct {
	cfg      *config.Config
	logger   *logging.Logger
	store    *project.Store
	exporter *export.Exporter

	// capability factories, replaced by fakes in tests
	newTranscriber func(ctx context.Context) (transcribe.Transcriber, error)
	newTranslator  func(ctx context.Context) (translate.Translator, error)
}

func New(cfg *config.Config, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}

	s := &Server{
		cfg:      cfg,
		logger:   logger,
		store:    project.NewStore(),
		exporter: &export.Exporter{Strict: cfg.Export.Strict},
	}

	s.newTranscriber = func(ctx context.Context) (transcribe.Transcriber, error) {
		provider := transcribe.Provider(cfg.Transcribe.Provider)
		return transcribe.Factory(ctx, provider, cfg.APIKeyFor(cfg.Transcribe.Provider), transcribe.Options{
			Model: cfg.Transcribe.Model,
		})
	}
	s.newTranslator = func(ctx context.Context) (translate.Translator, error) {
		provider := translate.Provider(cfg.Translate.Provider)
		return translate.Factory(ctx, provider, cfg.APIKeyFor(cfg.Translate.Provider), translate.Options{
			Model: cfg.Translate.Model,
		})
	}

	return s
}

func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/languages", s.Languages)

		r.Post("/sessions", s.CreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Patch("/lines/{index}", s.UpdateLine)
			r.Post("/regenerate", s.Regenerate)
			r.Get("/subtitle", s.DownloadSubtitle)
			r.Post("/burn", s.Burn)
		})
	})

	return r
}

// ListenAndServe runs the server until ctx is cancelled, then evicts
// every session so temp assets are released.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Server.ListenAddr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.logger.Infow("HTTP server listening", "addr", s.cfg.Server.ListenAddr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
		s.store.Close()
		return nil
	case err := <-errCh:
		s.store.Close()
		return err
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debugw("request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start).String(),
		)
	})
}
