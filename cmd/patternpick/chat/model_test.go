package chat

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"patternpick/internal/catalog"
	"patternpick/internal/config"
	"patternpick/internal/suggest"

	tea "github.com/charmbracelet/bubbletea"
)

type stubClient struct{}

func (stubClient) CompleteWithStreaming(ctx context.Context, systemPrompt, userPrompt string) (<-chan string, <-chan error) {
	content := make(chan string)
	errs := make(chan error)
	close(content)
	close(errs)
	return content, errs
}

func testModel(t *testing.T) Model {
	t.Helper()
	root := t.TempDir()
	for _, name := range []string{"summarize", "extract_wisdom"} {
		dir := filepath.Join(root, name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		body := "# " + name + "\n\nDo the thing.\n"
		if err := os.WriteFile(filepath.Join(dir, catalog.PatternBodyFile), []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	store, err := catalog.NewStore(root)
	if err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	controller := suggest.NewController(stubClient{}, store, 0)

	m, err := NewModel(cfg, store, controller)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(m.Shutdown)

	sized, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return sized.(Model)
}

func TestSubmitEmptyInputIsNoop(t *testing.T) {
	m := testModel(t)
	updated, cmd := m.handleSubmit()
	if cmd != nil {
		t.Error("empty input produced a command")
	}
	if updated.(Model).controller.Busy() {
		t.Error("empty input started a request")
	}
}

func TestSuggestDoneSuccess(t *testing.T) {
	m := testModel(t)
	updated, _ := m.handleSuggestDone(suggestDoneMsg{patterns: []string{"summarize", "extract_wisdom"}})
	mm := updated.(Model)
	if len(mm.suggestions) != 2 {
		t.Errorf("suggestions = %v", mm.suggestions)
	}
	if mm.lastError != "" {
		t.Errorf("unexpected error %q", mm.lastError)
	}
}

func TestSuggestDoneFailureClearsSuggestions(t *testing.T) {
	m := testModel(t)
	m.suggestions = []string{"summarize"}
	updated, _ := m.handleSuggestDone(suggestDoneMsg{err: errors.New("upstream 502")})
	mm := updated.(Model)
	if len(mm.suggestions) != 0 {
		t.Errorf("failed request left suggestions: %v", mm.suggestions)
	}
	if !strings.Contains(mm.lastError, "upstream 502") {
		t.Errorf("lastError = %q", mm.lastError)
	}
}

func TestSuggestDoneSupersededKeepsState(t *testing.T) {
	m := testModel(t)
	m.suggestions = []string{"summarize"}
	updated, _ := m.handleSuggestDone(suggestDoneMsg{err: suggest.ErrSuperseded})
	mm := updated.(Model)
	if len(mm.suggestions) != 1 {
		t.Errorf("superseded result touched published suggestions: %v", mm.suggestions)
	}
	if mm.lastError != "" {
		t.Errorf("superseded result surfaced an error: %q", mm.lastError)
	}
}

func TestPickLoadsPattern(t *testing.T) {
	m := testModel(t)
	m.suggestions = []string{"summarize", "extract_wisdom"}

	updated, _ := m.handlePick(1)
	mm := updated.(Model)
	if mm.selectedIdx != 1 {
		t.Errorf("selectedIdx = %d", mm.selectedIdx)
	}
	if got := mm.controller.Selected(); got != "extract_wisdom" {
		t.Errorf("selected = %q", got)
	}

	// Out-of-range picks do nothing.
	updated, _ = mm.handlePick(7)
	if updated.(Model).controller.Selected() != "extract_wisdom" {
		t.Error("out-of-range pick changed the selection")
	}
}

func TestRepickDoesNotReloadPattern(t *testing.T) {
	m := testModel(t)
	m.suggestions = []string{"summarize", "extract_wisdom"}

	updated, _ := m.handlePick(0)
	mm := updated.(Model)
	if mm.statusLine != "loaded summarize" {
		t.Fatalf("first pick did not load: statusLine = %q", mm.statusLine)
	}

	// Re-picking the current pattern must leave the viewport and status
	// untouched: no re-render, no scroll reset.
	mm.statusLine = ""
	mm.viewport.SetContent("scrolled view marker")
	before := mm.viewport.View()

	again, _ := mm.handlePick(0)
	am := again.(Model)
	if am.statusLine != "" {
		t.Errorf("re-pick reloaded the pattern: statusLine = %q", am.statusLine)
	}
	if am.viewport.View() != before {
		t.Error("re-pick touched the viewport content")
	}
	if got := am.controller.Selected(); got != "summarize" {
		t.Errorf("selected = %q", got)
	}

	// Picking a different pattern still loads.
	next, _ := am.handlePick(1)
	nm := next.(Model)
	if nm.statusLine != "loaded extract_wisdom" {
		t.Errorf("new pick did not load: statusLine = %q", nm.statusLine)
	}
	if nm.viewport.View() == before {
		t.Error("new pick did not update the viewport")
	}
}

func TestDigitKey(t *testing.T) {
	if n, ok := digitKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}}); !ok || n != 3 {
		t.Errorf("digitKey('3') = %d, %v", n, ok)
	}
	if _, ok := digitKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'0'}}); ok {
		t.Error("digitKey accepted 0")
	}
	if _, ok := digitKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}); ok {
		t.Error("digitKey accepted a letter")
	}
}
