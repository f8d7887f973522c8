package mailbox

import (
	"strings"

	"github.com/nitidus-mail/nitidus/internal/control"
	"github.com/nitidus-mail/nitidus/internal/format/table"
	"github.com/nitidus-mail/nitidus/internal/keys"
	"github.com/nitidus-mail/nitidus/internal/logging/events"
	"github.com/nitidus-mail/nitidus/internal/mail"
	uistate "github.com/nitidus-mail/nitidus/internal/ui/state"
)

const (
	// ListRows is the height of the message list including its border.
	ListRows = 15

	highlightSymbol = ">> "
	filterLabel     = "Filter"
	columnGap       = 1
)

var (
	columnPercents = []int{50, 30, 20}
	columnHeaders  = []string{"SUBJECT", "FROM", "DATE"}
	columnAlign    = []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft}
)

// List is the message list control. It owns the cursor over the folder's
// envelopes and an inline filter opened with "/".
type List struct {
	folder    string
	state     *uistate.List
	filter    *control.Text
	filtering bool
	focused   bool
	keys      keys.KeyMap
}

// NewList builds an empty list titled with the folder name.
func NewList(folder string, km keys.KeyMap) *List {
	if folder == "" {
		folder = mail.DefaultFolder
	}
	return &List{
		folder: folder,
		state:  uistate.NewList(nil),
		filter: control.NewText(filterLabel),
		keys:   km,
	}
}

func (l *List) Folder() string { return l.folder }

// SetEnvelopes replaces the listed envelopes. The cursor stays on the
// selected envelope when it is still present.
func (l *List) SetEnvelopes(envs []mail.Envelope) {
	l.state.UpdateItems(envs)
	l.state.EnsureVisible(l.visibleRows())
}

// Selected returns the envelope under the cursor.
func (l *List) Selected() (mail.Envelope, bool) {
	return l.state.Selected()
}

// State exposes the cursor and filter state.
func (l *List) State() *uistate.List {
	return l.state
}

// Filtering reports whether the inline filter is open.
func (l *List) Filtering() bool { return l.filtering }

func (l *List) Focused() bool { return l.focused }

func (l *List) Focus() {
	l.focused = true
	if l.filtering {
		l.filter.Focus()
	}
}

func (l *List) Blur() {
	l.focused = false
	l.filter.Blur()
}

func (l *List) Rows() int { return ListRows }

// Children exposes the filter field while it is open. A closed filter is
// not part of the focus chain, so the list is the leaf.
func (l *List) Children() []control.Control {
	if !l.filtering {
		return nil
	}
	return []control.Control{l.filter}
}

// HandleKey moves the cursor and edits the filter. Keys the list has no use
// for are returned unconsumed.
func (l *List) HandleKey(ev keys.Event) control.Result {
	if l.filtering {
		if res, handled := l.handleFilterKey(ev); handled {
			return res
		}
	}
	km := l.keys
	var moved bool
	switch {
	case keys.Matches(ev, km.ListUp):
		moved = l.state.Prev()
	case keys.Matches(ev, km.ListDown):
		moved = l.state.Next()
	case keys.Matches(ev, km.ListTop):
		moved = l.state.MoveHome()
	case keys.Matches(ev, km.ListBottom):
		moved = l.state.MoveEnd()
	case keys.Matches(ev, km.PageUp):
		moved = l.state.PageUp(l.visibleRows())
	case keys.Matches(ev, km.PageDown):
		moved = l.state.PageDown(l.visibleRows())
	case keys.Matches(ev, km.Filter):
		l.openFilter()
		return control.Consumed
	default:
		return control.NotConsumed
	}
	if !moved {
		return control.NotConsumed
	}
	l.state.EnsureVisible(l.visibleRows())
	events.List.Cursor(l.state.Cursor)
	return control.Consumed
}

func (l *List) handleFilterKey(ev keys.Event) (control.Result, bool) {
	switch {
	case keys.Matches(ev, l.keys.Accept):
		l.closeFilter(false)
		return control.Consumed, true
	case keys.Matches(ev, l.keys.Erase) && l.filter.Value() == "":
		l.closeFilter(true)
		return control.Consumed, true
	}
	if l.filter.HandleKey(ev) != control.Consumed {
		return control.NotConsumed, false
	}
	l.state.SetFilter(l.filter.Value())
	l.state.EnsureVisible(l.visibleRows())
	events.List.Filter(l.filter.Value(), len(l.state.Items))
	return control.Consumed, true
}

func (l *List) openFilter() {
	l.filtering = true
	if l.focused {
		l.filter.Focus()
	}
}

// closeFilter hides the filter line. Accepting keeps the narrowed list;
// erasing past the start clears the filter.
func (l *List) closeFilter(clear bool) {
	l.filtering = false
	l.filter.Blur()
	if clear {
		l.filter.SetValue("")
		l.state.SetFilter("")
	}
	l.state.EnsureVisible(l.visibleRows())
}

// visibleRows is the number of envelope rows inside the border, below the
// header and above the filter line.
func (l *List) visibleRows() int {
	rows := ListRows - 2 - 1
	if l.filtering {
		rows--
	}
	return rows
}

func (l *List) Render(area control.Area) control.View {
	view := control.View{
		Area:   area,
		Title:  l.folder,
		Border: control.BorderRounded,
		Active: l.focused,
	}
	inner := area.Inner()
	if inner.Empty() {
		return view
	}
	widths := table.Widths(inner.Width-len(highlightSymbol), columnGap, columnPercents...)
	view.Lines = append(view.Lines, l.headerLine(widths))

	rows := inner.Height - 1
	if l.filtering {
		rows--
	}
	offset := uistate.VisibleOffset(l.state.Cursor, l.state.ViewportOffset, len(l.state.Items), rows)
	for i := offset; i < len(l.state.Items) && i < offset+rows; i++ {
		view.Lines = append(view.Lines, l.envelopeLine(l.state.Items[i], i == l.state.Cursor, widths))
	}
	if l.filtering {
		for len(view.Lines) < inner.Height-1 {
			view.Lines = append(view.Lines, control.Line{})
		}
		filterArea := control.Area{X: inner.X, Y: inner.Y + inner.Height - 1, Width: inner.Width, Height: 1}
		view.Lines = append(view.Lines, l.filter.Render(filterArea).Lines...)
	}
	return view
}

func (l *List) headerLine(widths []int) control.Line {
	cells := table.Fit(columnHeaders, widths, columnAlign)
	spans := []control.Span{control.Plain(pad(len(highlightSymbol)))}
	for i, cell := range cells {
		if i > 0 {
			spans = append(spans, control.Plain(pad(columnGap)))
		}
		spans = append(spans, control.Styled(cell, control.Bold|control.Underline))
	}
	return control.Line{Spans: spans}
}

func (l *List) envelopeLine(env mail.Envelope, selected bool, widths []int) control.Line {
	date := ""
	if !env.Date.IsZero() {
		date = env.Date.Format(mail.DateLayout)
	}
	cells := table.Fit([]string{env.Subject, env.From, date}, widths, columnAlign)
	tones := []control.Tone{control.ToneSubject, control.ToneFrom, control.ToneDate}
	if !env.Seen() {
		tones = []control.Tone{control.ToneSubjectUnseen, control.ToneFromUnseen, control.ToneDateUnseen}
	}
	marker := pad(len(highlightSymbol))
	var emphasis control.Emphasis
	if selected && l.focused {
		marker = highlightSymbol
		emphasis = control.Bold
	}
	spans := []control.Span{control.Plain(marker)}
	for i, cell := range cells {
		if i > 0 {
			spans = append(spans, control.Plain(pad(columnGap)))
		}
		spans = append(spans, control.Span{Text: cell, Emphasis: emphasis, Tone: tones[i]})
	}
	return control.Line{Spans: spans}
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
