package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/nitidus-mail/nitidus/internal/control"
)

const (
	titleRamp     = "▁▂▃▄▅▆▇█"
	titleRampBack = "█▇▆▅▄▃▂▁"
	titleText     = "   Nitidus   "
	hintSeparator = " • "
)

// View renders the title bar, the visible screen and the status line.
func (m *Model) View() string {
	if m.state == Finished {
		return ""
	}
	rows := make([]string, 0, 3)
	rows = append(rows, m.surface.Draw(m.titleView()))
	if body := m.bodyHeight(); body > 0 {
		area := control.Area{Width: m.width, Height: body}
		rows = append(rows, m.surface.Draw(m.root().Render(area)))
	}
	rows = append(rows, m.surface.Draw(m.statusView()))
	return strings.Join(rows, "\n")
}

func (m *Model) titleView() control.View {
	return control.View{
		Area: control.Area{Width: m.width, Height: 1},
		Lines: []control.Line{{
			Align: control.AlignCenter,
			Spans: []control.Span{
				{Text: titleRamp, Tone: control.ToneTitle},
				{Text: titleText, Tone: control.ToneTitle, Emphasis: control.Reverse},
				{Text: titleRampBack, Tone: control.ToneTitle},
			},
		}},
	}
}

func (m *Model) statusView() control.View {
	var span control.Span
	switch {
	case m.errMsg != "":
		span = control.Span{Text: m.errMsg, Tone: control.ToneError}
	case m.infoMsg != "":
		span = control.Span{Text: m.infoMsg, Tone: control.ToneInfo}
	default:
		span = control.Span{Text: m.hint(), Tone: control.ToneMuted}
	}
	return control.View{
		Area:  control.Area{Y: m.height - 1, Width: m.width, Height: 1},
		Lines: []control.Line{{Spans: []control.Span{span}}},
	}
}

func (m *Model) hint() string {
	bindings := []key.Binding{m.keys.Focus.Advance, m.keys.SwitchScreen, m.keys.Quit}
	if m.screen == ScreenMail {
		bindings = append(bindings, m.keys.Filter, m.keys.Yank)
	}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, hintSeparator)
}
