package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nitidus-mail/nitidus/internal/keys"
)

// Harness drives the UI model programmatically for integration tests.
// Commands run synchronously, so models built with a watcher block until it
// emits; tests send backend events themselves instead.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Init runs the model's initial command.
func (h *Harness) Init() {
	if h.model == nil {
		return
	}
	h.processCmd(h.model.Init())
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// Press sends one key message per event.
func (h *Harness) Press(evs ...keys.Event) {
	for _, ev := range evs {
		h.Send(toTea(ev))
	}
}

// Type sends s as a single runes message, the way pasted input arrives.
func (h *Harness) Type(s string) {
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return
	case tea.BatchMsg:
		for _, c := range msg {
			h.processCmd(c)
		}
	case tea.QuitMsg:
		return
	default:
		mdl, next := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		h.processCmd(next)
	}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

var teaKeys = map[keys.Code]tea.KeyType{
	keys.CodeUp:        tea.KeyUp,
	keys.CodeDown:      tea.KeyDown,
	keys.CodeLeft:      tea.KeyLeft,
	keys.CodeRight:     tea.KeyRight,
	keys.CodeTab:       tea.KeyTab,
	keys.CodeBackTab:   tea.KeyShiftTab,
	keys.CodeEnter:     tea.KeyEnter,
	keys.CodeEsc:       tea.KeyEsc,
	keys.CodeBackspace: tea.KeyBackspace,
	keys.CodeHome:      tea.KeyHome,
	keys.CodeEnd:       tea.KeyEnd,
	keys.CodePgUp:      tea.KeyPgUp,
	keys.CodePgDown:    tea.KeyPgDown,
	keys.CodeCtrlC:     tea.KeyCtrlC,
	keys.CodeF2:        tea.KeyF2,
}

func toTea(ev keys.Event) tea.KeyMsg {
	if ev.Code == keys.CodeRune {
		if ev.Rune == ' ' {
			return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}, Alt: ev.Alt}
		}
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{ev.Rune}, Alt: ev.Alt}
	}
	return tea.KeyMsg{Type: teaKeys[ev.Code], Alt: ev.Alt}
}
