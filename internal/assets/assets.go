package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Scope owns a temporary directory and every asset created inside it.
// Closing the scope removes the directory and all assets at once, so
// intermediate audio, subtitle, and video files never outlive the
// session that created them.
type Scope struct {
	dir string

	mu     sync.Mutex
	closed bool
}

func NewScope(prefix string) (*Scope, error) {
	dir, err := os.MkdirTemp("", prefix+"-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create asset scope: %w", err)
	}
	return &Scope{dir: dir}, nil
}

// NewScopeIn creates the scope under root instead of the system temp dir.
func NewScopeIn(root, prefix string) (*Scope, error) {
	if root == "" {
		return NewScope(prefix)
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create asset root: %w", err)
	}
	dir, err := os.MkdirTemp(root, prefix+"-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create asset scope: %w", err)
	}
	return &Scope{dir: dir}, nil
}

func (s *Scope) Dir() string {
	return s.dir
}

// Path returns the location for a named asset inside the scope. The
// file is not created.
func (s *Scope) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// CreateFile writes data to a named asset and returns its path.
func (s *Scope) CreateFile(name string, data []byte) (string, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return "", fmt.Errorf("asset scope is closed")
	}

	path := s.Path(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write asset %s: %w", name, err)
	}
	return path, nil
}

// Close removes the scope directory and everything in it. Safe to call
// more than once.
func (s *Scope) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return os.RemoveAll(s.dir)
}
