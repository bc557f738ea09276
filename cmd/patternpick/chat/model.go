// Package chat provides the interactive TUI for patternpick. The model is
// split across files:
//   - model.go: types, Init, Update loop
//   - process.go: suggestion request plumbing
//   - view.go: rendering
package chat

import (
	"context"
	"fmt"
	"strings"

	"patternpick/cmd/patternpick/ui"
	"patternpick/internal/catalog"
	"patternpick/internal/config"
	"patternpick/internal/logging"
	"patternpick/internal/suggest"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"
)

// ViewMode determines which component is focused.
type ViewMode int

const (
	ChatView ViewMode = iota
	PickerView
)

// patternItem is a list item for the full-catalog picker (ctrl+p).
type patternItem struct {
	name, desc string
}

func (i patternItem) Title() string       { return i.name }
func (i patternItem) Description() string { return i.desc }
func (i patternItem) FilterValue() string { return i.name + " " + i.desc }

// Model is the main model for the interactive interface.
type Model struct {
	// UI components
	textarea textarea.Model
	viewport viewport.Model
	spinner  spinner.Model
	list     list.Model
	styles   ui.Styles
	renderer *glamour.TermRenderer

	viewMode ViewMode
	width    int
	height   int
	ready    bool

	// Wiring
	cfg        *config.Config
	store      *catalog.Store
	controller *suggest.Controller

	sessionID string
	chunkChan chan string

	// Suggestion state mirrored from the controller for rendering
	suggestions []string
	selectedIdx int
	streamText  string
	lastError   string
	statusLine  string

	// Shutdown coordination
	rootCtx    context.Context
	rootCancel context.CancelFunc
}

// NewModel wires the chat interface. The catalog store must already be loaded.
func NewModel(cfg *config.Config, store *catalog.Store, controller *suggest.Controller) (*Model, error) {
	ta := textarea.New()
	ta.Placeholder = "Describe what you want to do, then press enter..."
	ta.Focus()
	ta.Prompt = "| "
	ta.CharLimit = 4000
	ta.SetHeight(3)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)

	styles := ui.NewStyles(themeFor(cfg.UI.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Status

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build markdown renderer: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		textarea:    ta,
		spinner:     sp,
		styles:      styles,
		renderer:    renderer,
		cfg:         cfg,
		store:       store,
		controller:  controller,
		sessionID:   uuid.New().String()[:8],
		chunkChan:   make(chan string, 64),
		suggestions: []string{},
		selectedIdx: -1,
		rootCtx:     ctx,
		rootCancel:  cancel,
	}
	m.rebuildPicker()

	controller.OnLoad(func(name string) {
		logging.UI("session %s: loading pattern %s", m.sessionID, name)
	})
	return m, nil
}

// Shutdown cancels background work. Safe to call more than once.
func (m *Model) Shutdown() {
	m.rootCancel()
}

func (m *Model) rebuildPicker() {
	names := m.store.Names()
	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		desc := ""
		if p, ok := m.store.Get(name); ok {
			desc = p.Description
		}
		items = append(items, patternItem{name: name, desc: desc})
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Patterns"
	l.SetShowStatusBar(false)
	m.list = l
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
		m.waitForChunk(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.textarea.SetWidth(msg.Width - 4)
		vpHeight := msg.Height - m.textarea.Height() - 7
		if vpHeight < 3 {
			vpHeight = 3
		}
		if m.viewport.Width == 0 {
			m.viewport = viewport.New(msg.Width-4, vpHeight)
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = vpHeight
		}
		m.list.SetSize(msg.Width-4, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		if m.viewMode == PickerView {
			return m.updatePicker(msg)
		}
		switch msg.Type {
		case tea.KeyCtrlC:
			m.Shutdown()
			return m, tea.Quit
		case tea.KeyCtrlP:
			m.rebuildPicker()
			m.list.SetSize(m.width-4, m.height-4)
			m.viewMode = PickerView
			return m, nil
		case tea.KeyEnter:
			return m.handleSubmit()
		}
		if n, ok := digitKey(msg); ok && m.textarea.Value() == "" {
			return m.handlePick(n - 1)
		}

	case chunkMsg:
		m.streamText += string(msg)
		m.statusLine = fmt.Sprintf("streaming... %d bytes", len(m.streamText))
		if m.cfg.UI.ShowStream {
			m.viewport.SetContent(m.streamText)
			m.viewport.GotoBottom()
		}
		return m, m.waitForChunk()

	case suggestDoneMsg:
		return m.handleSuggestDone(msg)

	case spinner.TickMsg:
		m.spinner, spCmd = m.spinner.Update(msg)
		return m, spCmd
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.viewMode = ChatView
		return m, nil
	case tea.KeyCtrlC:
		m.Shutdown()
		return m, tea.Quit
	case tea.KeyEnter:
		if item, ok := m.list.SelectedItem().(patternItem); ok {
			m.viewMode = ChatView
			return m.selectPattern(item.name)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textarea.Value())
	if input == "" {
		return m, nil
	}
	m.textarea.Reset()
	m.suggestions = []string{}
	m.selectedIdx = -1
	m.streamText = ""
	m.lastError = ""
	m.statusLine = "requesting suggestions..."
	logging.UI("session %s: suggestion request, %d bytes", m.sessionID, len(input))
	return m, tea.Batch(m.requestSuggestions(input), m.spinner.Tick)
}

// handlePick maps a pressed digit onto the current suggestion row.
func (m Model) handlePick(idx int) (tea.Model, tea.Cmd) {
	if idx < 0 || idx >= len(m.suggestions) {
		return m, nil
	}
	model, cmd := m.selectPattern(m.suggestions[idx])
	if mm, ok := model.(Model); ok {
		mm.selectedIdx = idx
		return mm, cmd
	}
	return model, cmd
}

func (m Model) selectPattern(name string) (tea.Model, tea.Cmd) {
	// The selection cell decides whether anything changed; re-picking the
	// current pattern must not reload the body or reset the scroll.
	if !m.controller.SetSelected(name) {
		return m, nil
	}
	pattern, ok := m.store.Get(name)
	if !ok {
		m.lastError = fmt.Sprintf("pattern %s vanished from the catalog", name)
		return m, nil
	}
	rendered, err := m.renderer.Render(pattern.Body)
	if err != nil {
		rendered = pattern.Body
	}
	m.viewport.SetContent(rendered)
	m.viewport.GotoTop()
	m.statusLine = fmt.Sprintf("loaded %s", name)
	return m, nil
}

func (m Model) handleSuggestDone(msg suggestDoneMsg) (tea.Model, tea.Cmd) {
	m.statusLine = ""
	switch {
	case msg.err == suggest.ErrSuperseded:
		// A newer request owns the state now.
		return m, nil
	case msg.err != nil:
		m.lastError = fmt.Sprintf("suggestion request failed: %v", msg.err)
		m.suggestions = []string{}
	default:
		m.suggestions = msg.patterns
		m.selectedIdx = -1
		if len(msg.patterns) == 0 {
			m.statusLine = "no matching patterns"
		}
	}
	return m, nil
}

func themeFor(name string) ui.Theme {
	switch strings.ToLower(name) {
	case "light":
		return ui.LightTheme()
	case "dark":
		return ui.DarkTheme()
	default:
		return ui.DetectTheme()
	}
}

func digitKey(msg tea.KeyMsg) (int, bool) {
	runes := msg.Runes
	if msg.Type != tea.KeyRunes || len(runes) != 1 {
		return 0, false
	}
	if runes[0] < '1' || runes[0] > '9' {
		return 0, false
	}
	return int(runes[0] - '0'), true
}
