package chat

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	if !m.ready {
		return "starting up..."
	}
	if m.viewMode == PickerView {
		return m.list.View()
	}

	var b strings.Builder

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("patternpick · %s · %d patterns", m.cfg.LLM.Model, m.store.Len())))
	b.WriteString("\n")

	b.WriteString(m.styles.Viewport.Render(m.viewport.View()))
	b.WriteString("\n")

	b.WriteString(m.renderSuggestions())
	b.WriteString("\n")

	b.WriteString(m.styles.InputBox.Render(m.textarea.View()))
	b.WriteString("\n")

	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderSuggestions() string {
	if m.controller.Busy() {
		return m.spinner.View() + " " + m.styles.Status.Render(m.statusLine)
	}
	if m.lastError != "" {
		return m.styles.ErrorText.Render(m.lastError)
	}
	if len(m.suggestions) == 0 {
		if m.statusLine != "" {
			return m.styles.Status.Render(m.statusLine)
		}
		return m.styles.Help.Render("suggestions appear here")
	}

	var b strings.Builder
	for i, name := range m.suggestions {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == m.selectedIdx {
			b.WriteString(m.styles.Selected.Render(label))
		} else {
			b.WriteString(m.styles.Suggestion.Render(label))
		}
	}
	return b.String()
}

func (m Model) renderFooter() string {
	help := "enter: suggest · 1-5: pick · ctrl+p: all patterns · ctrl+c: quit"
	return m.styles.Footer.Render(help)
}
