// Package render draws control views onto a terminal string. Every drawn view
// occupies exactly its area: rows are padded or truncated to the area width
// and missing rows are left blank.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/nitidus-mail/nitidus/internal/control"
	"github.com/nitidus-mail/nitidus/internal/theme"
)

const (
	tlc = "╭"
	trc = "╮"
	blc = "╰"
	brc = "╯"
	hz  = "─"
	vt  = "│"

	ellipsis = "…"
)

// Surface turns views into styled text.
type Surface struct {
	styles *theme.Styles
}

// New returns a surface using styles, or the default theme when nil.
func New(styles *theme.Styles) *Surface {
	if styles == nil {
		styles = theme.Default()
	}
	return &Surface{styles: styles}
}

// Draw renders v into a string of v.Area.Height rows.
func (s *Surface) Draw(v control.View) string {
	return strings.Join(s.rows(v), "\n")
}

func (s *Surface) rows(v control.View) []string {
	if v.Area.Empty() {
		return nil
	}
	inner := v.Area
	if v.Border != control.BorderNone {
		inner = v.Area.Inner()
	}
	body := make([]string, inner.Height)
	for i, line := range v.Lines {
		if i >= len(body) {
			break
		}
		body[i] = s.line(line, inner.Width)
	}
	for _, child := range v.Children {
		offY := child.Area.Y - inner.Y
		offX := child.Area.X - inner.X
		if offX < 0 {
			offX = 0
		}
		for j, row := range s.rows(child) {
			y := offY + j
			if y < 0 || y >= len(body) {
				continue
			}
			body[y] = strings.Repeat(" ", offX) + row
		}
	}
	for i := range body {
		body[i] = fit(body[i], inner.Width)
	}
	if v.Border == control.BorderNone {
		return body
	}
	return s.frame(v, body)
}

// frame wraps body in a rounded border with the title in the top edge.
func (s *Surface) frame(v control.View, body []string) []string {
	width := v.Area.Width
	if width < 2 || v.Area.Height < 2 {
		out := make([]string, v.Area.Height)
		for i := range out {
			out[i] = strings.Repeat(" ", width)
		}
		return out
	}
	border := s.styles.Border
	if v.Active {
		border = s.styles.BorderActive
	}
	innerW := width - 2

	var top string
	titleSeg := ""
	if v.Title != "" {
		titleSeg = " " + v.Title + " "
	}
	dashes := width - 3 - runewidth.StringWidth(titleSeg)
	if titleSeg != "" && dashes < 0 {
		titleSeg = runewidth.Truncate(titleSeg, width-3, ellipsis)
		dashes = width - 3 - runewidth.StringWidth(titleSeg)
	}
	if titleSeg == "" || dashes < 0 {
		top = border.Render(tlc + strings.Repeat(hz, innerW) + trc)
	} else {
		top = border.Render(tlc+hz) + s.styles.BorderTitle.Render(titleSeg) +
			border.Render(strings.Repeat(hz, dashes)+trc)
	}

	out := make([]string, 0, v.Area.Height)
	out = append(out, top)
	for _, row := range body {
		out = append(out, border.Render(vt)+row+border.Render(vt))
	}
	out = append(out, border.Render(blc+strings.Repeat(hz, innerW)+brc))
	return out
}

// line styles spans, truncating plain text before styling so escapes are
// never cut.
func (s *Surface) line(l control.Line, width int) string {
	if width <= 0 {
		return ""
	}
	total := 0
	for _, span := range l.Spans {
		total += runewidth.StringWidth(span.Text)
	}
	var b strings.Builder
	if l.Align == control.AlignCenter && total < width {
		b.WriteString(strings.Repeat(" ", (width-total)/2))
		width -= (width - total) / 2
	}
	remaining := width
	for _, span := range l.Spans {
		if remaining <= 0 {
			break
		}
		text := span.Text
		if w := runewidth.StringWidth(text); w > remaining {
			text = runewidth.Truncate(text, remaining, ellipsis)
		}
		if text == "" {
			continue
		}
		remaining -= runewidth.StringWidth(text)
		b.WriteString(s.style(span).Render(text))
	}
	return b.String()
}

func (s *Surface) style(span control.Span) lipgloss.Style {
	st := *s.tone(span.Tone)
	if span.Emphasis&control.Bold != 0 {
		st = st.Bold(true)
	}
	if span.Emphasis&control.Underline != 0 {
		st = st.Underline(true)
	}
	if span.Emphasis&control.Reverse != 0 {
		st = st.Reverse(true)
	}
	return st
}

func (s *Surface) tone(t control.Tone) *lipgloss.Style {
	switch t {
	case control.ToneMuted:
		return s.styles.Muted
	case control.ToneTitle:
		return s.styles.Title
	case control.ToneError:
		return s.styles.Error
	case control.ToneInfo:
		return s.styles.Info
	case control.ToneSubject:
		return s.styles.Subject
	case control.ToneFrom:
		return s.styles.From
	case control.ToneDate:
		return s.styles.Date
	case control.ToneSubjectUnseen:
		return s.styles.SubjectUnseen
	case control.ToneFromUnseen:
		return s.styles.FromUnseen
	case control.ToneDateUnseen:
		return s.styles.DateUnseen
	default:
		return s.styles.Text
	}
}

// fit pads or truncates an already styled row to exactly width columns.
func fit(row string, width int) string {
	w := lipgloss.Width(row)
	if w > width {
		if width <= 1 {
			row = truncate.String(row, uint(width))
		} else {
			row = truncate.StringWithTail(row, uint(width-1), ellipsis)
		}
		w = lipgloss.Width(row)
	}
	if w < width {
		row += strings.Repeat(" ", width-w)
	}
	return row
}
