package project

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jimaku-dev/jimaku/internal/assets"
)

// Session owns one project and the temp assets created for it. The
// project is mutated by one editing session at a time; handlers must
// hold the session lock across reads and edits.
type Session struct {
	ID             string
	Project        *Project
	Scope          *assets.Scope
	SourceName     string
	SourcePath     string
	IsVideo        bool
	TargetLanguage string
	CreatedAt      time.Time

	// SubtitlePath is the most recently regenerated subtitle asset,
	// empty until the first regeneration.
	SubtitlePath string

	mu sync.Mutex
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Store tracks active sessions by an opaque identifier. Sessions are
// fully independent; the store only guards the map itself.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Add registers the session under a fresh identifier and returns it.
func (s *Store) Add(sess *Session) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess.ID = uuid.NewString()
	sess.CreatedAt = time.Now()
	s.sessions[sess.ID] = sess
	return sess.ID
}

func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	return sess, ok
}

// Evict removes the session and releases its asset scope.
func (s *Store) Evict(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	if sess.Scope != nil {
		return sess.Scope.Close()
	}
	return nil
}

// Close evicts every session. Called at process shutdown so no temp
// assets are leaked.
func (s *Store) Close() {
	s.mu.Lock()
	sessions := s.sessions
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, sess := range sessions {
		if sess.Scope != nil {
			sess.Scope.Close()
		}
	}
}
