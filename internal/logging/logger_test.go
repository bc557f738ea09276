package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitialize_NoConfigIsNoOp(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	ws := t.TempDir()
	if err := Initialize(ws); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ws, "logs")); !os.IsNotExist(err) {
		t.Error("logs directory should not be created without debug mode")
	}
	// Logging into the void must not panic.
	Suggest("dropped message %d", 1)
}

func TestInitialize_DebugModeWritesCategoryFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	ws := t.TempDir()
	cfg := "logging:\n  debug_mode: true\n  level: debug\n"
	if err := os.WriteFile(filepath.Join(ws, "config.yaml"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Initialize(ws); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	Suggest("validated %d patterns", 3)
	SuggestDebug("raw length %d", 42)
	Sync()

	data, err := os.ReadFile(filepath.Join(ws, "logs", "suggest.log"))
	if err != nil {
		t.Fatalf("expected suggest.log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "validated 3 patterns") {
		t.Errorf("info line missing, got: %s", out)
	}
	if !strings.Contains(out, "raw length 42") {
		t.Errorf("debug line missing, got: %s", out)
	}
}

func TestCategoryFilter(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	ws := t.TempDir()
	cfg := "logging:\n  debug_mode: true\n  level: info\n  categories:\n    llm: true\n    suggest: false\n"
	if err := os.WriteFile(filepath.Join(ws, "config.yaml"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Initialize(ws); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	LLM("stream started")
	Suggest("should be filtered")
	Sync()

	if _, err := os.Stat(filepath.Join(ws, "logs", "llm.log")); err != nil {
		t.Errorf("llm.log should exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ws, "logs", "suggest.log")); !os.IsNotExist(err) {
		t.Error("suggest.log should not exist when category disabled")
	}
}

func TestInitialize_EmptyWorkspace(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	if err := Initialize(""); err == nil {
		t.Error("expected error for empty workspace")
	}
}
