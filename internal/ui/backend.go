package ui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nitidus-mail/nitidus/internal/backend"
	"github.com/nitidus-mail/nitidus/internal/logging/events"
	"github.com/nitidus-mail/nitidus/internal/mail"
	"github.com/nitidus-mail/nitidus/internal/ui/command"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

type envelopesLoadedMsg struct {
	folder    string
	envelopes []mail.Envelope
	err       error
}

type messageLoadedMsg struct {
	folder string
	id     string
	body   string
	err    error
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// listEnvelopesCmd reads the open folder once. It is used when no watcher
// streams envelopes.
func (m *Model) listEnvelopesCmd() tea.Cmd {
	if m.provider == nil {
		return nil
	}
	provider := m.provider
	folder := m.store.Folder()
	pageSize := m.pageSize
	return m.bus.Execute(command.Request{
		ID:    "envelopes:" + folder,
		Label: "list envelopes",
		Run: func(ctx context.Context) tea.Msg {
			envs, err := provider.ListEnvelopes(ctx, folder, pageSize, 0)
			return envelopesLoadedMsg{folder: folder, envelopes: envs, err: err}
		},
	})
}

func (m *Model) handleEnvelopesLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(envelopesLoadedMsg)
	if !ok {
		return nil
	}
	return m.applyBackendEvent(backend.Event{
		Kind:   backend.KindEnvelopes,
		Folder: loaded.folder,
		Data:   loaded.envelopes,
		Err:    loaded.err,
	})
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	res := m.dispatcher.Handle(evt)
	if evt.Err != nil {
		m.errMsg = evt.Err.Error()
		return nil
	}
	if res.EnvelopesUpdated {
		entries := m.store.Entries()
		m.mail.List().SetEnvelopes(entries)
		m.errMsg = ""
		m.infoMsg = fmt.Sprintf("%d messages in %s", len(entries), m.store.Folder())
		return m.syncSelection()
	}
	if res.FoldersUpdated {
		m.checkFolder()
	}
	return nil
}

// checkFolder reports an open folder that the provider no longer lists and
// clears that report once the folder is back.
func (m *Model) checkFolder() {
	folder := m.store.Folder()
	folders := m.store.Folders()
	if slices.Contains(folders, folder) {
		if m.folderErr != "" && m.errMsg == m.folderErr {
			m.errMsg = ""
		}
		m.folderErr = ""
		return
	}
	available := "none"
	if len(folders) > 0 {
		available = strings.Join(folders, ", ")
	}
	m.folderErr = fmt.Sprintf("folder %s not found (available: %s)", folder, available)
	m.errMsg = m.folderErr
}

// syncSelection starts loading the selected message when the selection
// changed since the last load.
func (m *Model) syncSelection() tea.Cmd {
	preview := m.mail.Preview()
	env, ok := m.mail.List().Selected()
	if !ok {
		if preview.ID() != "" {
			preview.Clear()
		}
		return nil
	}
	if env.ID == preview.ID() {
		return nil
	}
	preview.SetLoading(env.ID)
	return m.loadMessageCmd(m.store.Folder(), env.ID)
}

func (m *Model) loadMessageCmd(folder, id string) tea.Cmd {
	if m.provider == nil {
		return nil
	}
	provider := m.provider
	events.Mail.Load(folder, id)
	return m.bus.Execute(command.Request{
		ID:    "message:" + id,
		Label: "load message",
		Run: func(ctx context.Context) tea.Msg {
			msg, err := provider.Message(ctx, folder, id)
			if err != nil {
				return messageLoadedMsg{folder: folder, id: id, err: err}
			}
			return messageLoadedMsg{folder: folder, id: id, body: msg.Body()}
		},
	})
}

func (m *Model) handleMessageLoadedMsg(msg tea.Msg) tea.Cmd {
	loaded, ok := msg.(messageLoadedMsg)
	if !ok {
		return nil
	}
	preview := m.mail.Preview()
	if loaded.id != preview.ID() {
		return nil
	}
	if loaded.err != nil {
		events.Mail.Error("load", loaded.err)
		m.errMsg = fmt.Sprintf("load %s: %v", loaded.id, loaded.err)
		preview.SetError(loaded.id, loaded.err)
		return nil
	}
	m.errMsg = ""
	preview.SetMessage(loaded.id, loaded.body)
	return nil
}
