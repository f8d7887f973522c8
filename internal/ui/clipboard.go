package ui

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nitidus-mail/nitidus/internal/logging/events"
	"github.com/nitidus-mail/nitidus/internal/ui/command"
)

var clipboardWriteAll = clipboard.WriteAll

type clipboardResultMsg struct {
	length int
	err    error
}

func (m *Model) copyCmd(body string) tea.Cmd {
	return m.bus.Execute(command.Request{
		ID:    "clipboard",
		Label: "copy message",
		Run: func(ctx context.Context) tea.Msg {
			err := clipboardWriteAll(body)
			events.Clipboard.Copy(len(body), err)
			return clipboardResultMsg{length: len(body), err: err}
		},
	})
}

func (m *Model) handleClipboardResultMsg(msg tea.Msg) tea.Cmd {
	res, ok := msg.(clipboardResultMsg)
	if !ok {
		return nil
	}
	if res.err != nil {
		m.errMsg = "copy failed: " + res.err.Error()
		return nil
	}
	m.infoMsg = "copied message to clipboard"
	return nil
}
