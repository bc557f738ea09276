package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writePattern(t *testing.T, root, name, body string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, PatternBodyFile), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestStore_LoadAndOrder(t *testing.T) {
	root := t.TempDir()
	writePattern(t, root, "summarize", "# IDENTITY\n\nYou summarize content.")
	writePattern(t, root, "extract_wisdom", "# IDENTITY\n\nYou extract wisdom.")
	writePattern(t, root, "analyze_paper", "You analyze academic papers.")

	// A directory without a body file is not a pattern.
	if err := os.MkdirAll(filepath.Join(root, "not_a_pattern"), 0755); err != nil {
		t.Fatal(err)
	}
	// Hidden directories are skipped.
	writePattern(t, root, ".git", "not a pattern")

	s, err := NewStore(root)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	want := []string{"analyze_paper", "extract_wisdom", "summarize"}
	if diff := cmp.Diff(want, s.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	p, ok := s.Get("summarize")
	if !ok {
		t.Fatal("expected summarize to exist")
	}
	if p.Description != "IDENTITY" {
		t.Errorf("expected heading description, got %q", p.Description)
	}

	p, _ = s.Get("analyze_paper")
	if p.Description != "You analyze academic papers." {
		t.Errorf("expected first-line description, got %q", p.Description)
	}

	if s.Has("not_a_pattern") {
		t.Error("directory without system.md must not be a pattern")
	}
	if s.Has(".git") {
		t.Error("hidden directory must not be a pattern")
	}
}

func TestStore_Reload(t *testing.T) {
	root := t.TempDir()
	writePattern(t, root, "summarize", "body")

	s, err := NewStore(root)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 pattern, got %d", s.Len())
	}

	writePattern(t, root, "create_summary", "body")
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if !s.Has("create_summary") {
		t.Error("expected create_summary after reload")
	}
}

func TestNewStore_MissingRoot(t *testing.T) {
	if _, err := NewStore(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	root := t.TempDir()
	writePattern(t, root, "summarize", "body")

	s, err := NewStore(root)
	if err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan struct{}, 1)
	w, err := NewWatcher(s, 50*time.Millisecond, func() {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer w.Stop()

	writePattern(t, root, "extract_wisdom", "body")

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not trigger reload")
	}
	if !s.Has("extract_wisdom") {
		t.Error("store should contain extract_wisdom after reload")
	}
}
