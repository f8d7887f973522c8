package mailbox

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/nitidus-mail/nitidus/internal/control"
	"github.com/nitidus-mail/nitidus/internal/keys"
)

const (
	previewTitle = "Message"
	tabWidth     = 4
)

var bodyCleaner = strings.NewReplacer("\r", "", "\t", strings.Repeat(" ", tabWidth))

// Preview shows the raw body of the selected message in a scrollable box.
type Preview struct {
	viewport viewport.Model
	id       string
	body     string
	err      string
	loading  bool
	focused  bool
	yank     bool
	keys     keys.KeyMap
}

func NewPreview(km keys.KeyMap) *Preview {
	return &Preview{
		viewport: viewport.New(0, 0),
		keys:     km,
	}
}

// SetSize sets the outer size of the box, border included.
func (p *Preview) SetSize(width, height int) {
	p.viewport.Width = max(width-2, 0)
	p.viewport.Height = max(height-2, 0)
	p.viewport.SetContent(p.body)
}

// SetLoading marks the message with id as being fetched.
func (p *Preview) SetLoading(id string) {
	p.id = id
	p.loading = true
	p.err = ""
}

// SetMessage shows body and scrolls back to the top.
func (p *Preview) SetMessage(id, body string) {
	p.id = id
	p.body = bodyCleaner.Replace(body)
	p.loading = false
	p.err = ""
	p.viewport.SetContent(p.body)
	p.viewport.GotoTop()
}

// SetError replaces the body with an error line.
func (p *Preview) SetError(id string, err error) {
	p.id = id
	p.loading = false
	p.err = ""
	if err != nil {
		p.err = err.Error()
	}
	p.body = ""
	p.viewport.SetContent("")
}

// Clear empties the preview.
func (p *Preview) Clear() {
	p.SetMessage("", "")
}

// ID returns the id of the message shown or being loaded.
func (p *Preview) ID() string { return p.id }

func (p *Preview) Body() string { return p.body }

func (p *Preview) Loading() bool { return p.loading }

// Offset returns the first visible body line.
func (p *Preview) Offset() int { return p.viewport.YOffset }

// TakeYank returns the body when a copy was requested since the last call.
func (p *Preview) TakeYank() (string, bool) {
	if !p.yank {
		return "", false
	}
	p.yank = false
	return p.body, true
}

func (p *Preview) Focused() bool { return p.focused }

func (p *Preview) Focus() { p.focused = true }

func (p *Preview) Blur() { p.focused = false }

// Rows is zero: the preview takes the rows left below the list.
func (p *Preview) Rows() int { return 0 }

// HandleKey scrolls the body. Scrolling past either end is not consumed so
// focus can move on.
func (p *Preview) HandleKey(ev keys.Event) control.Result {
	km := p.keys
	offset := p.viewport.YOffset
	switch {
	case keys.Matches(ev, km.Yank):
		if p.body == "" {
			return control.NotConsumed
		}
		p.yank = true
		return control.Consumed
	case keys.Matches(ev, km.ListUp):
		p.viewport.SetYOffset(offset - 1)
	case keys.Matches(ev, km.ListDown):
		p.viewport.SetYOffset(offset + 1)
	case keys.Matches(ev, km.PageUp):
		p.viewport.SetYOffset(offset - max(p.viewport.Height, 1))
	case keys.Matches(ev, km.PageDown):
		p.viewport.SetYOffset(offset + max(p.viewport.Height, 1))
	case keys.Matches(ev, km.ListTop):
		p.viewport.GotoTop()
	case keys.Matches(ev, km.ListBottom):
		p.viewport.GotoBottom()
	default:
		return control.NotConsumed
	}
	if p.viewport.YOffset == offset {
		return control.NotConsumed
	}
	return control.Consumed
}

func (p *Preview) Render(area control.Area) control.View {
	view := control.View{
		Area:   area,
		Title:  previewTitle,
		Border: control.BorderRounded,
		Active: p.focused,
	}
	inner := area.Inner()
	if inner.Empty() {
		return view
	}
	switch {
	case p.err != "":
		view.Lines = []control.Line{{Spans: []control.Span{{Text: p.err, Tone: control.ToneError}}}}
	case p.loading:
		view.Lines = []control.Line{{Spans: []control.Span{{Text: "Loading…", Tone: control.ToneMuted}}}}
	case p.body == "":
		return view
	default:
		rows := p.visibleLines(inner.Height)
		view.Lines = make([]control.Line, 0, len(rows))
		for _, row := range rows {
			view.Lines = append(view.Lines, control.Line{Spans: []control.Span{control.Plain(row)}})
		}
	}
	return view
}

// visibleLines returns the body lines from the scroll offset on, at most
// height of them.
func (p *Preview) visibleLines(height int) []string {
	lines := strings.Split(p.body, "\n")
	start := min(p.viewport.YOffset, len(lines))
	end := min(start+height, len(lines))
	return lines[start:end]
}
