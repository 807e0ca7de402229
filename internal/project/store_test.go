package project

import (
	"os"
	"testing"

	"github.com/jimaku-dev/jimaku/internal/assets"
)

func TestStoreAddAndGet(t *testing.T) {
	store := NewStore()
	p := mustNew(t, testSegments())

	id := store.Add(&Session{Project: p, TargetLanguage: "ja"})
	if id == "" {
		t.Fatal("Add returned empty id")
	}

	sess, ok := store.Get(id)
	if !ok {
		t.Fatal("session not found after Add")
	}
	if sess.Project != p {
		t.Error("stored project does not match")
	}
}

func TestStoreSessionsAreIndependent(t *testing.T) {
	store := NewStore()

	// two sources sharing a filename must not collide
	a := store.Add(&Session{Project: mustNew(t, testSegments()), SourceName: "video.mp4"})
	b := store.Add(&Session{Project: mustNew(t, testSegments()), SourceName: "video.mp4"})
	if a == b {
		t.Fatal("expected distinct session ids")
	}

	sessA, _ := store.Get(a)
	if err := sessA.Project.SetTranslation(0, "only in a"); err != nil {
		t.Fatalf("SetTranslation error: %v", err)
	}

	sessB, _ := store.Get(b)
	line, _ := sessB.Project.Line(0)
	if line.Translation != "" {
		t.Error("edit in one session leaked into another")
	}
}

func TestStoreEvictReleasesAssets(t *testing.T) {
	store := NewStore()

	scope, err := assets.NewScope("jimaku-test")
	if err != nil {
		t.Fatalf("NewScope error: %v", err)
	}
	id := store.Add(&Session{Project: mustNew(t, testSegments()), Scope: scope})

	if err := store.Evict(id); err != nil {
		t.Fatalf("Evict error: %v", err)
	}
	if _, ok := store.Get(id); ok {
		t.Error("session still present after Evict")
	}
	if _, err := os.Stat(scope.Dir()); !os.IsNotExist(err) {
		t.Error("asset scope not removed on eviction")
	}
}

func TestStoreEvictUnknown(t *testing.T) {
	store := NewStore()
	if err := store.Evict("nope"); err == nil {
		t.Error("expected error evicting unknown session")
	}
}

func TestStoreClose(t *testing.T) {
	store := NewStore()

	scope, err := assets.NewScope("jimaku-test")
	if err != nil {
		t.Fatalf("NewScope error: %v", err)
	}
	id := store.Add(&Session{Project: mustNew(t, testSegments()), Scope: scope})

	store.Close()
	if _, ok := store.Get(id); ok {
		t.Error("session survived Close")
	}
	if _, err := os.Stat(scope.Dir()); !os.IsNotExist(err) {
		t.Error("asset scope not removed on Close")
	}
}
