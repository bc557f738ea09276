package chat

import (
	tea "github.com/charmbracelet/bubbletea"
)

// chunkMsg carries one raw streamed chunk for the status line.
type chunkMsg string

// suggestDoneMsg reports the outcome of one suggestion request.
type suggestDoneMsg struct {
	patterns []string
	err      error
}

// requestSuggestions runs one full suggestion cycle in the background. Chunks
// are forwarded through chunkChan best-effort; a full channel drops the
// update rather than stalling the stream.
func (m Model) requestSuggestions(input string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.controller.Suggest(m.rootCtx, input, func(chunk string) {
			select {
			case m.chunkChan <- chunk:
			default:
			}
		})
		return suggestDoneMsg{patterns: result, err: err}
	}
}

// waitForChunk listens for the next streamed chunk.
func (m Model) waitForChunk() tea.Cmd {
	return func() tea.Msg {
		chunk, ok := <-m.chunkChan
		if !ok {
			return nil
		}
		return chunkMsg(chunk)
	}
}
