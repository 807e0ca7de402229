package assets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScopeCreateAndClose(t *testing.T) {
	scope, err := NewScope("jimaku-test")
	if err != nil {
		t.Fatalf("NewScope error: %v", err)
	}

	path, err := scope.CreateFile("track.srt", []byte("1\n"))
	if err != nil {
		t.Fatalf("CreateFile error: %v", err)
	}
	if filepath.Dir(path) != scope.Dir() {
		t.Errorf("asset %s created outside scope %s", path, scope.Dir())
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("asset not on disk: %v", err)
	}

	if err := scope.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if _, err := os.Stat(scope.Dir()); !os.IsNotExist(err) {
		t.Errorf("scope dir %s still exists after Close", scope.Dir())
	}
}

func TestScopeCloseIsIdempotent(t *testing.T) {
	scope, err := NewScope("jimaku-test")
	if err != nil {
		t.Fatalf("NewScope error: %v", err)
	}
	if err := scope.Close(); err != nil {
		t.Fatalf("first Close error: %v", err)
	}
	if err := scope.Close(); err != nil {
		t.Errorf("second Close error: %v", err)
	}
}

func TestScopeRejectsCreateAfterClose(t *testing.T) {
	scope, err := NewScope("jimaku-test")
	if err != nil {
		t.Fatalf("NewScope error: %v", err)
	}
	scope.Close()

	if _, err := scope.CreateFile("late.srt", []byte("x")); err == nil {
		t.Error("expected error creating asset in closed scope")
	}
}

func TestScopeInUsesRoot(t *testing.T) {
	root := t.TempDir()
	scope, err := NewScopeIn(root, "jimaku-test")
	if err != nil {
		t.Fatalf("NewScopeIn error: %v", err)
	}
	defer scope.Close()

	if filepath.Dir(scope.Dir()) != root {
		t.Errorf("scope dir %s not under root %s", scope.Dir(), root)
	}
}
